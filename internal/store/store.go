// Package store defines the persistence contract the evaluators and the
// social service depend on. Adapters live in the remote and sqlstore
// subpackages.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert or update violates a unique constraint.
	ErrConflict = errors.New("conflict")
	// ErrExhausted is returned by IncrementInviteUse when the code has no uses left.
	ErrExhausted = errors.New("invite code exhausted")
)

// ProfileStore reads and updates profile rows.
type ProfileStore interface {
	// CreateProfile inserts the row written at signup completion.
	// It returns ErrConflict when the id or username is taken.
	CreateProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	Profile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ProfileByUsername(ctx context.Context, username string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, u domain.ProfileUpdate) (*domain.Profile, error)
	// AddPoints atomically adds delta to the profile's points and returns the new total.
	AddPoints(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

// AchievementStore reads definitions and reads/writes grants.
type AchievementStore interface {
	AchievementByKey(ctx context.Context, key string) (*domain.Achievement, error)
	HasGrant(ctx context.Context, userID, achievementID uuid.UUID) (bool, error)
	// InsertGrant returns ErrConflict when the pair already exists.
	InsertGrant(ctx context.Context, g domain.UserAchievement) error
	CountGrants(ctx context.Context, userID uuid.UUID) (int, error)
	EarnedAchievements(ctx context.Context, userID uuid.UUID) ([]domain.EarnedAchievement, error)
}

// InviteStore reads and writes invite codes and their usage log.
type InviteStore interface {
	// ActiveInviteCode looks up an active code. code must already be uppercase.
	ActiveInviteCode(ctx context.Context, code string) (*domain.InviteCode, error)
	// IncrementInviteUse adds one use if used_count < max_uses and returns
	// the updated row, or ErrExhausted.
	IncrementInviteUse(ctx context.Context, id uuid.UUID) (*domain.InviteCode, error)
	LogInviteUsage(ctx context.Context, u domain.InviteUsage) error
	InviteCodesByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.InviteCode, error)
	CreateInviteCode(ctx context.Context, c domain.InviteCode) (*domain.InviteCode, error)
}

// MessageStore reads and writes private messages.
type MessageStore interface {
	InsertMessage(ctx context.Context, m domain.Message) (*domain.Message, error)
	CountMessagesFrom(ctx context.Context, userID uuid.UUID) (int, error)
	// Conversation returns messages between a and b in both directions, oldest first.
	Conversation(ctx context.Context, a, b uuid.UUID, limit int) ([]domain.Message, error)
	// MarkRead flips is_read on unread messages from -> to and returns how many changed.
	MarkRead(ctx context.Context, from, to uuid.UUID) (int, error)
}

// GiftStore reads and writes gifts.
type GiftStore interface {
	InsertGift(ctx context.Context, g domain.Gift) (*domain.Gift, error)
	Gift(ctx context.Context, id uuid.UUID) (*domain.Gift, error)
	// GiftsTo lists gifts received by userID, newest first.
	GiftsTo(ctx context.Context, userID uuid.UUID) ([]domain.Gift, error)
	DeleteGift(ctx context.Context, id uuid.UUID) error
}

// BlockStore reads and writes block pairs.
type BlockStore interface {
	// InsertBlock returns ErrConflict when the pair already exists.
	InsertBlock(ctx context.Context, b domain.UserBlock) (*domain.UserBlock, error)
	// DeleteBlock returns ErrNotFound when the pair does not exist.
	DeleteBlock(ctx context.Context, blocker, blocked uuid.UUID) error
	IsBlocked(ctx context.Context, blocker, blocked uuid.UUID) (bool, error)
	BlocksBy(ctx context.Context, blocker uuid.UUID) ([]domain.UserBlock, error)
}

// PostStore reads and writes wall posts.
type PostStore interface {
	InsertPost(ctx context.Context, p domain.Post) (*domain.Post, error)
	CountPostsBy(ctx context.Context, authorID uuid.UUID) (int, error)
}

// Store is the full contract implemented by every adapter.
type Store interface {
	ProfileStore
	AchievementStore
	InviteStore
	MessageStore
	GiftStore
	BlockStore
	PostStore
}
