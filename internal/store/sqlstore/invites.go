package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) ActiveInviteCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	var rec inviteCodeModel
	err := s.db.WithContext(ctx).Where("code = ? AND is_active = ?", code, true).Take(&rec).Error
	if err != nil {
		return nil, fmt.Errorf("sqlstore.ActiveInviteCode: %w", translate(err))
	}
	out := toDomainInviteCode(rec)
	return &out, nil
}

func (s *Store) IncrementInviteUse(ctx context.Context, id uuid.UUID) (*domain.InviteCode, error) {
	var rec inviteCodeModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&inviteCodeModel{}).
			Where("id = ? AND used_count < max_uses", id).
			Update("used_count", gorm.Expr("used_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if err := tx.Where("id = ?", id).Take(&rec).Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return store.ErrExhausted
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrExhausted) {
			return nil, fmt.Errorf("sqlstore.IncrementInviteUse: %w", err)
		}
		return nil, fmt.Errorf("sqlstore.IncrementInviteUse: %w", translate(err))
	}
	out := toDomainInviteCode(rec)
	return &out, nil
}

func (s *Store) LogInviteUsage(ctx context.Context, u domain.InviteUsage) error {
	rec := inviteUsageModel{
		ID:            u.ID,
		InviteCodeID:  u.InviteCodeID,
		InviterID:     u.InviterID,
		InvitedUserID: u.InvitedUserID,
		UsedAt:        u.UsedAt,
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("sqlstore.LogInviteUsage: %w", translate(err))
	}
	return nil
}

func (s *Store) InviteCodesByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.InviteCode, error) {
	var recs []inviteCodeModel
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.InviteCodesByOwner: %w", translate(err))
	}
	out := make([]domain.InviteCode, len(recs))
	for i, r := range recs {
		out[i] = toDomainInviteCode(r)
	}
	return out, nil
}

func (s *Store) CreateInviteCode(ctx context.Context, c domain.InviteCode) (*domain.InviteCode, error) {
	rec := inviteCodeModel{
		ID:        c.ID,
		Code:      c.Code,
		UserID:    c.UserID,
		UsedCount: c.UsedCount,
		MaxUses:   c.MaxUses,
		ExpiresAt: c.ExpiresAt,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.CreateInviteCode: %w", translate(err))
	}
	out := toDomainInviteCode(rec)
	return &out, nil
}
