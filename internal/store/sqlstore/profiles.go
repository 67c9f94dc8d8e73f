package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) CreateProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	rec := fromDomainProfile(p)
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.Points = 0
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.CreateProfile: %w", translate(err))
	}
	out := toDomainProfile(rec)
	return &out, nil
}

func (s *Store) Profile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var rec profileModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.Profile: %w", translate(err))
	}
	out := toDomainProfile(rec)
	return &out, nil
}

func (s *Store) ProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	var rec profileModel
	err := s.db.WithContext(ctx).Where("username = ?", strings.ToLower(strings.TrimSpace(username))).Take(&rec).Error
	if err != nil {
		return nil, fmt.Errorf("sqlstore.ProfileByUsername: %w", translate(err))
	}
	out := toDomainProfile(rec)
	return &out, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, u domain.ProfileUpdate) (*domain.Profile, error) {
	updates := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("username", u.Username)
	set("display_name", u.DisplayName)
	set("bio", u.Bio)
	set("avatar_url", u.AvatarURL)
	set("house_theme", u.HouseTheme)
	set("house_background", u.HouseBackground)
	set("house_music", u.HouseMusic)
	set("city", u.City)
	set("country", u.Country)

	if len(updates) > 0 {
		res := s.db.WithContext(ctx).Model(&profileModel{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("sqlstore.UpdateProfile: %w", translate(res.Error))
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("sqlstore.UpdateProfile: %w", store.ErrNotFound)
		}
	}
	return s.Profile(ctx, id)
}

func (s *Store) AddPoints(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	if delta < 0 {
		return 0, fmt.Errorf("sqlstore.AddPoints: negative delta %d", delta)
	}
	var total int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&profileModel{}).Where("id = ?", id).
			Update("points", gorm.Expr("points + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return tx.Model(&profileModel{}).Where("id = ?", id).Select("points").Scan(&total).Error
	})
	if err != nil {
		return 0, fmt.Errorf("sqlstore.AddPoints: %w", translate(err))
	}
	return total, nil
}
