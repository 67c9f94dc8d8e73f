package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) AchievementByKey(ctx context.Context, key string) (*domain.Achievement, error) {
	var a domain.Achievement
	if err := s.c.From(tableAchievements).Select("*").Eq("key", key).Single(ctx, &a); err != nil {
		return nil, fmt.Errorf("remote.AchievementByKey %s: %w", key, translate(err))
	}
	return &a, nil
}

func (s *Store) HasGrant(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	n, err := s.c.From(tableUserAchievements).
		Eq("user_id", userID).
		Eq("achievement_id", achievementID).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("remote.HasGrant: %w", translate(err))
	}
	return n > 0, nil
}

func (s *Store) InsertGrant(ctx context.Context, g domain.UserAchievement) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.EarnedAt.IsZero() {
		g.EarnedAt = time.Now().UTC()
	}
	if err := s.c.From(tableUserAchievements).Insert(ctx, g, nil); err != nil {
		return fmt.Errorf("remote.InsertGrant: %w", translate(err))
	}
	return nil
}

func (s *Store) CountGrants(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.c.From(tableUserAchievements).Eq("user_id", userID).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("remote.CountGrants: %w", translate(err))
	}
	return n, nil
}

// earnedRow is the shape of a grant with its definition embedded.
// The relation may be absent when row-level policies hide the definition.
type earnedRow struct {
	EarnedAt    time.Time           `json:"earned_at"`
	Achievement *domain.Achievement `json:"achievement"`
}

func (s *Store) EarnedAchievements(ctx context.Context, userID uuid.UUID) ([]domain.EarnedAchievement, error) {
	var rows []earnedRow
	err := s.c.From(tableUserAchievements).
		Select("earned_at,achievement:achievements(*)").
		Eq("user_id", userID).
		Order("earned_at", false).
		Get(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("remote.EarnedAchievements: %w", translate(err))
	}
	out := make([]domain.EarnedAchievement, 0, len(rows))
	for _, r := range rows {
		if r.Achievement == nil {
			continue
		}
		out = append(out, domain.EarnedAchievement{Achievement: *r.Achievement, EarnedAt: r.EarnedAt})
	}
	return out, nil
}
