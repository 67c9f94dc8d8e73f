package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

// OpenMemory opens a private in-memory sqlite database, migrated and seeded
// with domain.Catalog. Each call gets its own database.
func OpenMemory(ctx context.Context) (*Store, error) {
	dsn := fmt.Sprintf("file:orkadia-%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(ctx, "sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	if err := s.Seed(ctx, domain.Catalog); err != nil {
		return nil, err
	}
	return s, nil
}
