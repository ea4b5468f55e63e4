package repository

import (
	"context"
	"sort"
	"sync"

	"item-pairs/internal/models"
)

// MemoryPairRepository keeps pairs in process memory. It honours the same
// conditional-write contract as the SQL repositories.
type MemoryPairRepository struct {
	mu    sync.RWMutex
	pairs map[string]*models.ItemPair
}

func NewMemoryPairRepository() *MemoryPairRepository {
	return &MemoryPairRepository{pairs: make(map[string]*models.ItemPair)}
}

func (r *MemoryPairRepository) EnsureSchema(context.Context) error { return nil }

func (r *MemoryPairRepository) Create(ctx context.Context, p *models.ItemPair) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pairs[p.PairID]; ok {
		return ErrPairConflict
	}
	r.pairs[p.PairID] = p.Clone()
	return nil
}

func (r *MemoryPairRepository) Update(ctx context.Context, p *models.ItemPair, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.pairs[p.PairID]
	if !ok || cur.Version != expectedVersion || cur.Status != models.PairStatusNegative {
		return ErrPairConflict
	}
	next := p.Clone()
	next.CreatedAt = cur.CreatedAt
	r.pairs[p.PairID] = next
	return nil
}

func (r *MemoryPairRepository) GetByID(ctx context.Context, pairID string) (*models.ItemPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pairs[pairID]
	if !ok {
		return nil, ErrPairNotFound
	}
	return p.Clone(), nil
}

func (r *MemoryPairRepository) List(ctx context.Context, limit, offset int) ([]*models.ItemPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	all := make([]*models.ItemPair, 0, len(r.pairs))
	for _, p := range r.pairs {
		all = append(all, p.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].PairID < all[j].PairID
	})

	if offset >= len(all) {
		return nil, nil
	}
	all = all[max(offset, 0):]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryPairRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pairs), nil
}

func (r *MemoryPairRepository) Delete(ctx context.Context, pairID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pairs[pairID]; !ok {
		return ErrPairNotFound
	}
	delete(r.pairs, pairID)
	return nil
}
