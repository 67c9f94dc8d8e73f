// Package invite validates, redeems and issues invite codes.
package invite

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/notify"
	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

// Validation errors, in the order they are checked.
var (
	ErrCodeRequired  = errors.New("invite code is required")
	ErrCodeNotFound  = errors.New("invite code not found")
	ErrLookupFailed  = errors.New("invite code lookup failed")
	ErrCodeExpired   = errors.New("invite code has expired")
	ErrCodeExhausted = errors.New("invite code has no uses left")
	ErrSelfInvite    = errors.New("you cannot use your own invite code")
)

// ErrInvalidMaxUses is returned by Create for a negative usage cap.
var ErrInvalidMaxUses = errors.New("max uses must not be negative")

// createAttempts bounds retries when a generated code collides.
const createAttempts = 3

// Store is the persistence the invite service needs.
type Store interface {
	store.InviteStore
	AddPoints(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

// Granter grants milestone achievements.
type Granter interface {
	Grant(ctx context.Context, userID uuid.UUID, key string) bool
}

// Service implements the invite flows.
type Service struct {
	store  Store
	grants Granter
	notify notify.Notifier
	log    *slog.Logger
	now    func() time.Time
}

// New creates a Service. A nil notifier discards events; a nil logger uses slog.Default.
func New(s Store, g Granter, n notify.Notifier, logger *slog.Logger) *Service {
	if n == nil {
		n = notify.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: s, grants: g, notify: n, log: logger, now: time.Now}
}

// Redemption is the outcome of a successful Redeem.
type Redemption struct {
	Code *domain.InviteCode
	// RewardCredited is false when the inviter's points could not be credited.
	RewardCredited bool
	// Milestones lists milestone keys newly granted to the inviter.
	Milestones []string
}

// Normalize trims and uppercases a user-entered code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks that userID may redeem code. The first failing check wins:
// empty input, existence, expiry, usage cap, self-use.
func (s *Service) Validate(ctx context.Context, code string, userID uuid.UUID) (*domain.InviteCode, error) {
	code = Normalize(code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	c, err := s.store.ActiveInviteCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if c.ExpiresAt != nil && !s.now().Before(*c.ExpiresAt) {
		return nil, ErrCodeExpired
	}
	if c.UsedCount >= c.MaxUses {
		return nil, ErrCodeExhausted
	}
	if c.UserID == userID {
		return nil, ErrSelfInvite
	}
	return c, nil
}

// Redeem consumes one use of code for newUserID, rewards the inviter and
// grants any invite milestones the inviter has now reached.
func (s *Service) Redeem(ctx context.Context, code string, newUserID uuid.UUID) (*Redemption, error) {
	c, err := s.Validate(ctx, code, newUserID)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.IncrementInviteUse(ctx, c.ID)
	if errors.Is(err, store.ErrExhausted) {
		return nil, ErrCodeExhausted
	}
	if err != nil {
		return nil, fmt.Errorf("invite.Redeem: %w", err)
	}
	inviter := updated.UserID
	r := &Redemption{Code: updated}

	s.logUsage(ctx, updated, newUserID)

	if _, err := s.store.AddPoints(ctx, inviter, domain.InviteRewardPoints); err != nil {
		s.log.Warn("invite reward failed", "user_id", inviter, "code_id", updated.ID, "err", err)
	} else {
		r.RewardCredited = true
		s.notify.Notify(notify.Event{
			Kind:   notify.KindXP,
			UserID: inviter,
			Title:  "Invite redeemed",
			Points: domain.InviteRewardPoints,
		})
	}

	r.Milestones = s.checkMilestones(ctx, inviter)
	s.log.Info("invite redeemed", "code_id", updated.ID, "inviter_id", inviter, "user_id", newUserID)
	return r, nil
}

// logUsage appends the audit row. Its failure never affects the redemption.
func (s *Service) logUsage(ctx context.Context, c *domain.InviteCode, newUserID uuid.UUID) {
	err := s.store.LogInviteUsage(ctx, domain.InviteUsage{
		InviteCodeID:  c.ID,
		InviterID:     c.UserID,
		InvitedUserID: newUserID,
		UsedAt:        s.now().UTC(),
	})
	if err != nil {
		s.log.Warn("invite usage log failed", "code_id", c.ID, "user_id", newUserID, "err", err)
	}
}

func (s *Service) checkMilestones(ctx context.Context, inviter uuid.UUID) []string {
	total, err := s.totalInvites(ctx, inviter)
	if err != nil {
		s.log.Warn("invite milestone check failed", "user_id", inviter, "err", err)
		return nil
	}
	var granted []string
	for _, m := range domain.InviteMilestones {
		if total < m.Threshold {
			break
		}
		if s.grants.Grant(ctx, inviter, m.Key) {
			granted = append(granted, m.Key)
		}
	}
	return granted
}

func (s *Service) totalInvites(ctx context.Context, ownerID uuid.UUID) (int, error) {
	codes, err := s.store.InviteCodesByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, c := range codes {
		total += c.UsedCount
	}
	return total, nil
}

// Stats aggregates redemptions across every code userID owns.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (domain.InviteStats, error) {
	total, err := s.totalInvites(ctx, userID)
	if err != nil {
		return domain.InviteStats{}, fmt.Errorf("invite.Stats: %w", err)
	}
	return domain.InviteStats{
		TotalInvites: total,
		RewardPoints: total * domain.InviteRewardPoints,
		Achievements: total / 5,
	}, nil
}

// Create issues a new code for ownerID. maxUses 0 means DefaultInviteMaxUses;
// ttl 0 means the code never expires.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, maxUses int, ttl time.Duration) (*domain.InviteCode, error) {
	if maxUses < 0 {
		return nil, ErrInvalidMaxUses
	}
	if maxUses == 0 {
		maxUses = domain.DefaultInviteMaxUses
	}
	now := s.now().UTC()
	var expires *time.Time
	if ttl > 0 {
		t := now.Add(ttl)
		expires = &t
	}
	var lastErr error
	for range createAttempts {
		code, err := generateCode()
		if err != nil {
			return nil, fmt.Errorf("invite.Create: %w", err)
		}
		c, err := s.store.CreateInviteCode(ctx, domain.InviteCode{
			Code:      code,
			UserID:    ownerID,
			MaxUses:   maxUses,
			ExpiresAt: expires,
			IsActive:  true,
			CreatedAt: now,
		})
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, fmt.Errorf("invite.Create: %w", err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("invite.Create: %w", lastErr)
}

// Codes lists the codes ownerID has issued, newest first.
func (s *Service) Codes(ctx context.Context, ownerID uuid.UUID) ([]domain.InviteCode, error) {
	codes, err := s.store.InviteCodesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("invite.Codes: %w", err)
	}
	return codes, nil
}

// generateCode returns 8 uppercase characters from 5 random bytes.
func generateCode() (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return base32.StdEncoding.EncodeToString(b), nil
}
