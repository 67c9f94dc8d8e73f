package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) ActiveInviteCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	var c domain.InviteCode
	err := s.c.From(tableInviteCodes).Select("*").
		Eq("code", code).
		Eq("is_active", true).
		Single(ctx, &c)
	if err != nil {
		return nil, fmt.Errorf("remote.ActiveInviteCode: %w", translate(err))
	}
	return &c, nil
}

// IncrementInviteUse calls redeem_invite_code, which runs
// UPDATE ... SET used_count = used_count + 1 WHERE id = $1 AND used_count < max_uses RETURNING *.
// An empty result means the code is exhausted or gone.
func (s *Store) IncrementInviteUse(ctx context.Context, id uuid.UUID) (*domain.InviteCode, error) {
	var rows []domain.InviteCode
	if err := s.c.RPC(ctx, rpcRedeemInviteCode, map[string]any{"p_code_id": id}, &rows); err != nil {
		return nil, fmt.Errorf("remote.IncrementInviteUse: %w", translate(err))
	}
	if len(rows) > 0 {
		return &rows[0], nil
	}
	n, err := s.c.From(tableInviteCodes).Eq("id", id).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("remote.IncrementInviteUse: %w", translate(err))
	}
	if n == 0 {
		return nil, fmt.Errorf("remote.IncrementInviteUse: %w", store.ErrNotFound)
	}
	return nil, fmt.Errorf("remote.IncrementInviteUse: %w", store.ErrExhausted)
}

func (s *Store) LogInviteUsage(ctx context.Context, u domain.InviteUsage) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.UsedAt.IsZero() {
		u.UsedAt = time.Now().UTC()
	}
	if err := s.c.From(tableInviteUsage).Insert(ctx, u, nil); err != nil {
		return fmt.Errorf("remote.LogInviteUsage: %w", translate(err))
	}
	return nil
}

func (s *Store) InviteCodesByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.InviteCode, error) {
	var codes []domain.InviteCode
	err := s.c.From(tableInviteCodes).Select("*").
		Eq("user_id", ownerID).
		Order("created_at", false).
		Get(ctx, &codes)
	if err != nil {
		return nil, fmt.Errorf("remote.InviteCodesByOwner: %w", translate(err))
	}
	return codes, nil
}

func (s *Store) CreateInviteCode(ctx context.Context, c domain.InviteCode) (*domain.InviteCode, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	var out domain.InviteCode
	if err := s.c.From(tableInviteCodes).Insert(ctx, c, &out); err != nil {
		return nil, fmt.Errorf("remote.CreateInviteCode: %w", translate(err))
	}
	return &out, nil
}
