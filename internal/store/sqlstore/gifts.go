package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) InsertGift(ctx context.Context, g domain.Gift) (*domain.Gift, error) {
	rec := giftModel{
		ID:         g.ID,
		FromUserID: g.FromUserID,
		ToUserID:   g.ToUserID,
		GiftType:   g.GiftType,
		Message:    g.Message,
		CreatedAt:  g.CreatedAt,
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.InsertGift: %w", translate(err))
	}
	out := toDomainGift(rec)
	return &out, nil
}

func (s *Store) Gift(ctx context.Context, id uuid.UUID) (*domain.Gift, error) {
	var rec giftModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.Gift: %w", translate(err))
	}
	out := toDomainGift(rec)
	return &out, nil
}

func (s *Store) GiftsTo(ctx context.Context, userID uuid.UUID) ([]domain.Gift, error) {
	var recs []giftModel
	if err := s.db.WithContext(ctx).Where("to_user_id = ?", userID).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.GiftsTo: %w", translate(err))
	}
	out := make([]domain.Gift, len(recs))
	for i, r := range recs {
		out[i] = toDomainGift(r)
	}
	return out, nil
}

func (s *Store) DeleteGift(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&giftModel{})
	if res.Error != nil {
		return fmt.Errorf("sqlstore.DeleteGift: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sqlstore.DeleteGift: %w", store.ErrNotFound)
	}
	return nil
}
