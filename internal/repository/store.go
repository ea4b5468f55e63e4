package repository

import (
	"context"
	"fmt"

	"item-pairs/internal/models"
	"item-pairs/pkg/config"
	"item-pairs/pkg/postgres"

	"go.uber.org/zap"
)

// Store is a pair repository plus its lifecycle hooks.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, p *models.ItemPair) error
	Update(ctx context.Context, p *models.ItemPair, expectedVersion int64) error
	GetByID(ctx context.Context, pairID string) (*models.ItemPair, error)
	List(ctx context.Context, limit, offset int) ([]*models.ItemPair, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, pairID string) error
}

// OpenStore connects the backend named by cfg.Store.Backend and makes sure
// its schema exists. The returned func releases the backend.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	var (
		store   Store
		release func()
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		store, release = NewPairRepository(db, logger), db.Close
	case config.BackendSQLite:
		repo, err := OpenSQLitePairRepository(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		store = repo
		release = func() {
			if err := repo.Close(); err != nil {
				logger.Warn("Failed to close sqlite store", zap.Error(err))
			}
		}
	case config.BackendMemory:
		logger.Warn("Using in-memory pair store, records are lost on exit")
		store, release = NewMemoryPairRepository(), func() {}
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		release()
		return nil, nil, err
	}
	return store, release, nil
}
