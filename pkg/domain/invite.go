package domain

import (
	"time"

	"github.com/google/uuid"
)

// InviteCode is a shareable access code owned by a citizen.
// Code is stored uppercase; UsedCount only grows.
type InviteCode struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	UserID    uuid.UUID  `json:"user_id"`
	UsedCount int        `json:"used_count"`
	MaxUses   int        `json:"max_uses"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// InviteUsage is an append-only audit row written on each redemption.
type InviteUsage struct {
	ID            uuid.UUID `json:"id"`
	InviteCodeID  uuid.UUID `json:"invite_code_id"`
	InviterID     uuid.UUID `json:"inviter_id"`
	InvitedUserID uuid.UUID `json:"invited_user_id"`
	UsedAt        time.Time `json:"used_at"`
}

// InviteStats is recomputed on read from the owner's codes.
type InviteStats struct {
	TotalInvites int `json:"total_invites"`
	RewardPoints int `json:"reward_points"`
	Achievements int `json:"achievements"`
}

// InviteRewardPoints is credited to the inviter on every redemption.
const InviteRewardPoints = 50

// DefaultInviteMaxUses is the usage cap for newly issued codes.
const DefaultInviteMaxUses = 5

// InviteMilestone maps a cumulative invite count to an achievement key.
type InviteMilestone struct {
	Threshold int
	Key       string
}

// InviteMilestones are checked in ascending order after every redemption.
var InviteMilestones = []InviteMilestone{
	{1, KeyFirstInvite},
	{5, KeyAmbassador},
	{10, KeyInfluencer},
	{25, KeyLegend},
}

// Status labels the code for listings: "inactive", "used up", "expired" or "active".
func (c InviteCode) Status(now time.Time) string {
	switch {
	case !c.IsActive:
		return "inactive"
	case c.UsedCount >= c.MaxUses:
		return "used up"
	case c.ExpiresAt != nil && !now.Before(*c.ExpiresAt):
		return "expired"
	default:
		return "active"
	}
}
