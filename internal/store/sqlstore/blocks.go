package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) InsertBlock(ctx context.Context, b domain.UserBlock) (*domain.UserBlock, error) {
	rec := userBlockModel{
		ID:        b.ID,
		BlockerID: b.BlockerID,
		BlockedID: b.BlockedID,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.InsertBlock: %w", translate(err))
	}
	out := toDomainBlock(rec)
	return &out, nil
}

func (s *Store) DeleteBlock(ctx context.Context, blocker, blocked uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("blocker_id = ? AND blocked_id = ?", blocker, blocked).Delete(&userBlockModel{})
	if res.Error != nil {
		return fmt.Errorf("sqlstore.DeleteBlock: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sqlstore.DeleteBlock: %w", store.ErrNotFound)
	}
	return nil
}

func (s *Store) IsBlocked(ctx context.Context, blocker, blocked uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&userBlockModel{}).
		Where("blocker_id = ? AND blocked_id = ?", blocker, blocked).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("sqlstore.IsBlocked: %w", translate(err))
	}
	return n > 0, nil
}

func (s *Store) BlocksBy(ctx context.Context, blocker uuid.UUID) ([]domain.UserBlock, error) {
	var recs []userBlockModel
	if err := s.db.WithContext(ctx).Where("blocker_id = ?", blocker).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.BlocksBy: %w", translate(err))
	}
	out := make([]domain.UserBlock, len(recs))
	for i, r := range recs {
		out[i] = toDomainBlock(r)
	}
	return out, nil
}
