// Package remote implements store.Store against the hosted backend's
// PostgREST table API.
package remote

import (
	"errors"
	"fmt"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/client"
)

// Table names on the backend.
const (
	tableProfiles         = "profiles"
	tableAchievements     = "achievements"
	tableUserAchievements = "user_achievements"
	tableInviteCodes      = "invite_codes"
	tableInviteUsage      = "invite_usage"
	tableMessages         = "messages"
	tableGifts            = "gifts"
	tableUserBlocks       = "user_blocks"
	tablePosts            = "posts"
)

// Server-side functions that perform conditional increments in one statement.
const (
	rpcIncrementPoints  = "increment_points"
	rpcRedeemInviteCode = "redeem_invite_code"
)

// Store is a store.Store backed by the remote API.
type Store struct {
	c *client.Client
}

var _ store.Store = (*Store)(nil)

// New wraps an authenticated API client.
func New(c *client.Client) *Store {
	return &Store{c: c}
}

// translate keeps the provider error and tags it with the matching store sentinel.
func translate(err error) error {
	switch {
	case errors.Is(err, client.ErrNoRows):
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	case client.IsConflict(err):
		return fmt.Errorf("%w: %w", store.ErrConflict, err)
	}
	return err
}
