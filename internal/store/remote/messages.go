package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) InsertMessage(ctx context.Context, m domain.Message) (*domain.Message, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	m.IsRead = false
	var out domain.Message
	if err := s.c.From(tableMessages).Insert(ctx, m, &out); err != nil {
		return nil, fmt.Errorf("remote.InsertMessage: %w", translate(err))
	}
	return &out, nil
}

func (s *Store) CountMessagesFrom(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.c.From(tableMessages).Eq("from_user_id", userID).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("remote.CountMessagesFrom: %w", translate(err))
	}
	return n, nil
}

func (s *Store) Conversation(ctx context.Context, a, b uuid.UUID, limit int) ([]domain.Message, error) {
	q := s.c.From(tableMessages).Select("*").
		Or(fmt.Sprintf("and(from_user_id.eq.%s,to_user_id.eq.%s),and(from_user_id.eq.%s,to_user_id.eq.%s)", a, b, b, a)).
		Order("created_at", true)
	if limit > 0 {
		q = q.Limit(limit)
	}
	var msgs []domain.Message
	if err := q.Get(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("remote.Conversation: %w", translate(err))
	}
	return msgs, nil
}

func (s *Store) MarkRead(ctx context.Context, from, to uuid.UUID) (int, error) {
	var rows []domain.Message
	err := s.c.From(tableMessages).
		Eq("from_user_id", from).
		Eq("to_user_id", to).
		Eq("is_read", false).
		Update(ctx, map[string]bool{"is_read": true}, &rows)
	if err != nil {
		return 0, fmt.Errorf("remote.MarkRead: %w", translate(err))
	}
	return len(rows), nil
}
