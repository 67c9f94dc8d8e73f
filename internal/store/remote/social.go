package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/internal/store"
	"github.com/orkadia/orkadia/pkg/domain"
)

func (s *Store) InsertGift(ctx context.Context, g domain.Gift) (*domain.Gift, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	var out domain.Gift
	if err := s.c.From(tableGifts).Insert(ctx, g, &out); err != nil {
		return nil, fmt.Errorf("remote.InsertGift: %w", translate(err))
	}
	return &out, nil
}

func (s *Store) Gift(ctx context.Context, id uuid.UUID) (*domain.Gift, error) {
	var g domain.Gift
	if err := s.c.From(tableGifts).Select("*").Eq("id", id).Single(ctx, &g); err != nil {
		return nil, fmt.Errorf("remote.Gift: %w", translate(err))
	}
	return &g, nil
}

func (s *Store) GiftsTo(ctx context.Context, userID uuid.UUID) ([]domain.Gift, error) {
	var gifts []domain.Gift
	err := s.c.From(tableGifts).Select("*").
		Eq("to_user_id", userID).
		Order("created_at", false).
		Get(ctx, &gifts)
	if err != nil {
		return nil, fmt.Errorf("remote.GiftsTo: %w", translate(err))
	}
	return gifts, nil
}

func (s *Store) DeleteGift(ctx context.Context, id uuid.UUID) error {
	var rows []domain.Gift
	if err := s.c.From(tableGifts).Eq("id", id).Delete(ctx, &rows); err != nil {
		return fmt.Errorf("remote.DeleteGift: %w", translate(err))
	}
	if len(rows) == 0 {
		return fmt.Errorf("remote.DeleteGift: %w", store.ErrNotFound)
	}
	return nil
}

func (s *Store) InsertBlock(ctx context.Context, b domain.UserBlock) (*domain.UserBlock, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	var out domain.UserBlock
	if err := s.c.From(tableUserBlocks).Insert(ctx, b, &out); err != nil {
		return nil, fmt.Errorf("remote.InsertBlock: %w", translate(err))
	}
	return &out, nil
}

func (s *Store) DeleteBlock(ctx context.Context, blocker, blocked uuid.UUID) error {
	var rows []domain.UserBlock
	err := s.c.From(tableUserBlocks).
		Eq("blocker_id", blocker).
		Eq("blocked_id", blocked).
		Delete(ctx, &rows)
	if err != nil {
		return fmt.Errorf("remote.DeleteBlock: %w", translate(err))
	}
	if len(rows) == 0 {
		return fmt.Errorf("remote.DeleteBlock: %w", store.ErrNotFound)
	}
	return nil
}

func (s *Store) IsBlocked(ctx context.Context, blocker, blocked uuid.UUID) (bool, error) {
	n, err := s.c.From(tableUserBlocks).
		Eq("blocker_id", blocker).
		Eq("blocked_id", blocked).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("remote.IsBlocked: %w", translate(err))
	}
	return n > 0, nil
}

func (s *Store) BlocksBy(ctx context.Context, blocker uuid.UUID) ([]domain.UserBlock, error) {
	var blocks []domain.UserBlock
	err := s.c.From(tableUserBlocks).Select("*").
		Eq("blocker_id", blocker).
		Order("created_at", false).
		Get(ctx, &blocks)
	if err != nil {
		return nil, fmt.Errorf("remote.BlocksBy: %w", translate(err))
	}
	return blocks, nil
}

func (s *Store) InsertPost(ctx context.Context, p domain.Post) (*domain.Post, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	var out domain.Post
	if err := s.c.From(tablePosts).Insert(ctx, p, &out); err != nil {
		return nil, fmt.Errorf("remote.InsertPost: %w", translate(err))
	}
	return &out, nil
}

func (s *Store) CountPostsBy(ctx context.Context, authorID uuid.UUID) (int, error) {
	n, err := s.c.From(tablePosts).Eq("author_id", authorID).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("remote.CountPostsBy: %w", translate(err))
	}
	return n, nil
}
