package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rarity grades an achievement for display.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Achievement keys. Every grant path looks definitions up by key.
const (
	KeyFirstMessage = "first-message"
	KeyPhotographer = "photographer"
	KeyDecorator    = "decorator"
	KeyMusician     = "musician"
	KeyWriter       = "writer"
	KeySocial       = "social"
	KeyCollector    = "collector"
	KeyFirstInvite  = "first-invite"
	KeyAmbassador   = "ambassador"
	KeyInfluencer   = "influencer"
	KeyLegend       = "legend"
)

// CollectorThreshold is the number of distinct grants that earns KeyCollector.
const CollectorThreshold = 5

// Achievement is an achievement definition.
type Achievement struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Points      int       `json:"points"`
	Rarity      Rarity    `json:"rarity"`
	Icon        string    `json:"icon,omitempty"`
}

// UserAchievement is a grant: user UserID earned AchievementID.
// A (UserID, AchievementID) pair exists at most once and is never revoked.
type UserAchievement struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	AchievementID uuid.UUID `json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
}

// EarnedAchievement joins a grant with its definition for display.
type EarnedAchievement struct {
	Achievement
	EarnedAt time.Time `json:"earned_at"`
}

// Catalog is the built-in set of achievement definitions used to seed a store.
var Catalog = []Achievement{
	{Key: KeyFirstMessage, Name: "First Message", Description: "Sent your first private message", Points: 10, Rarity: RarityCommon, Icon: "💬"},
	{Key: KeyPhotographer, Name: "Photographer", Description: "Set a profile photo", Points: 10, Rarity: RarityCommon, Icon: "📷"},
	{Key: KeyDecorator, Name: "Decorator", Description: "Chose a house background", Points: 15, Rarity: RarityCommon, Icon: "🖼"},
	{Key: KeyMusician, Name: "Musician", Description: "Picked music for your house", Points: 15, Rarity: RarityCommon, Icon: "🎵"},
	{Key: KeyWriter, Name: "Writer", Description: "Wrote a bio of at least 20 characters", Points: 20, Rarity: RarityRare, Icon: "✍"},
	{Key: KeySocial, Name: "Social", Description: "Published your first post", Points: 20, Rarity: RarityCommon, Icon: "📣"},
	{Key: KeyCollector, Name: "Collector", Description: "Earned five achievements", Points: 100, Rarity: RarityEpic, Icon: "🏆"},
	{Key: KeyFirstInvite, Name: "First Invite", Description: "Someone joined with your invite", Points: 25, Rarity: RarityCommon, Icon: "✉"},
	{Key: KeyAmbassador, Name: "Ambassador", Description: "Five citizens joined with your invites", Points: 100, Rarity: RarityRare, Icon: "🎖"},
	{Key: KeyInfluencer, Name: "Influencer", Description: "Ten citizens joined with your invites", Points: 250, Rarity: RarityEpic, Icon: "🌟"},
	{Key: KeyLegend, Name: "Legend", Description: "Twenty-five citizens joined with your invites", Points: 500, Rarity: RarityLegendary, Icon: "👑"},
}

// ValidRarity returns true if r is one of the four rarities.
func ValidRarity(r Rarity) bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}
