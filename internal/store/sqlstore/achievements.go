package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) AchievementByKey(ctx context.Context, key string) (*domain.Achievement, error) {
	var rec achievementModel
	if err := s.db.WithContext(ctx).Where("key = ?", key).Take(&rec).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.AchievementByKey %s: %w", key, translate(err))
	}
	out := toDomainAchievement(rec)
	return &out, nil
}

func (s *Store) HasGrant(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&userAchievementModel{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("sqlstore.HasGrant: %w", translate(err))
	}
	return n > 0, nil
}

func (s *Store) InsertGrant(ctx context.Context, g domain.UserAchievement) error {
	rec := userAchievementModel{
		ID:            g.ID,
		UserID:        g.UserID,
		AchievementID: g.AchievementID,
		EarnedAt:      g.EarnedAt,
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("sqlstore.InsertGrant: %w", translate(err))
	}
	return nil
}

func (s *Store) CountGrants(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&userAchievementModel{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("sqlstore.CountGrants: %w", translate(err))
	}
	return int(n), nil
}

func (s *Store) EarnedAchievements(ctx context.Context, userID uuid.UUID) ([]domain.EarnedAchievement, error) {
	var rows []earnedRow
	err := s.db.WithContext(ctx).
		Table("user_achievements AS ua").
		Select("a.id, a.key, a.name, a.description, a.points, a.rarity, a.icon, ua.earned_at").
		Joins("JOIN achievements AS a ON a.id = ua.achievement_id").
		Where("ua.user_id = ?", userID).
		Order("ua.earned_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sqlstore.EarnedAchievements: %w", translate(err))
	}
	out := make([]domain.EarnedAchievement, len(rows))
	for i, r := range rows {
		out[i] = domain.EarnedAchievement{Achievement: toDomainAchievement(r.definition()), EarnedAt: r.EarnedAt}
	}
	return out, nil
}
