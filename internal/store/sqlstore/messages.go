package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) InsertMessage(ctx context.Context, m domain.Message) (*domain.Message, error) {
	rec := messageModel{
		ID:         m.ID,
		FromUserID: m.FromUserID,
		ToUserID:   m.ToUserID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.InsertMessage: %w", translate(err))
	}
	out := toDomainMessage(rec)
	return &out, nil
}

func (s *Store) CountMessagesFrom(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&messageModel{}).Where("from_user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("sqlstore.CountMessagesFrom: %w", translate(err))
	}
	return int(n), nil
}

func (s *Store) Conversation(ctx context.Context, a, b uuid.UUID, limit int) ([]domain.Message, error) {
	q := s.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []messageModel
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.Conversation: %w", translate(err))
	}
	out := make([]domain.Message, len(recs))
	for i, r := range recs {
		out[i] = toDomainMessage(r)
	}
	return out, nil
}

func (s *Store) MarkRead(ctx context.Context, from, to uuid.UUID) (int, error) {
	res := s.db.WithContext(ctx).Model(&messageModel{}).
		Where("from_user_id = ? AND to_user_id = ? AND is_read = ?", from, to, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("sqlstore.MarkRead: %w", translate(res.Error))
	}
	return int(res.RowsAffected), nil
}
