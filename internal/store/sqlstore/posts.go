package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) InsertPost(ctx context.Context, p domain.Post) (*domain.Post, error) {
	rec := postModel{ID: p.ID, AuthorID: p.AuthorID, Content: p.Content, CreatedAt: p.CreatedAt}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.InsertPost: %w", translate(err))
	}
	out := toDomainPost(rec)
	return &out, nil
}

func (s *Store) CountPostsBy(ctx context.Context, authorID uuid.UUID) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&postModel{}).Where("author_id = ?", authorID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("sqlstore.CountPostsBy: %w", translate(err))
	}
	return int(n), nil
}
