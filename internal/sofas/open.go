package sofas

import (
	"context"

	"configurator/internal/database"
)

// Open returns the repository selected by databaseURL, seeded with the
// legacy catalog, and a function releasing its resources.
func Open(ctx context.Context, databaseURL string, debug bool) (Repository, func() error, error) {
	if database.IsMemory(databaseURL) {
		return NewMemoryRepository(SeedSofas()), func() error { return nil }, nil
	}

	db, err := database.New(databaseURL, debug)
	if err != nil {
		return nil, nil, err
	}
	repo := NewGormRepository(db.DB)
	if err := repo.SeedIfEmpty(ctx, SeedSofas()); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, db.Close, nil
}
