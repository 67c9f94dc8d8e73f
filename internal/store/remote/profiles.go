package remote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) CreateProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.Points = 0
	var out domain.Profile
	if err := s.c.From(tableProfiles).Insert(ctx, p, &out); err != nil {
		return nil, fmt.Errorf("remote.CreateProfile: %w", translate(err))
	}
	return &out, nil
}

func (s *Store) Profile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	if err := s.c.From(tableProfiles).Select("*").Eq("id", id).Single(ctx, &p); err != nil {
		return nil, fmt.Errorf("remote.Profile: %w", translate(err))
	}
	return &p, nil
}

func (s *Store) ProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	var p domain.Profile
	err := s.c.From(tableProfiles).Select("*").
		Eq("username", strings.ToLower(strings.TrimSpace(username))).
		Single(ctx, &p)
	if err != nil {
		return nil, fmt.Errorf("remote.ProfileByUsername: %w", translate(err))
	}
	return &p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, u domain.ProfileUpdate) (*domain.Profile, error) {
	if u == (domain.ProfileUpdate{}) {
		return s.Profile(ctx, id)
	}
	var rows []domain.Profile
	if err := s.c.From(tableProfiles).Eq("id", id).Update(ctx, u, &rows); err != nil {
		return nil, fmt.Errorf("remote.UpdateProfile: %w", translate(err))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("remote.UpdateProfile: %w", store.ErrNotFound)
	}
	return &rows[0], nil
}

func (s *Store) AddPoints(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	if delta < 0 {
		return 0, fmt.Errorf("remote.AddPoints: negative delta %d", delta)
	}
	var total *int
	args := map[string]any{"p_user_id": id, "p_amount": delta}
	if err := s.c.RPC(ctx, rpcIncrementPoints, args, &total); err != nil {
		return 0, fmt.Errorf("remote.AddPoints: %w", translate(err))
	}
	// The function returns null when no profile row matched.
	if total == nil {
		return 0, fmt.Errorf("remote.AddPoints: %w", store.ErrNotFound)
	}
	return *total, nil
}
