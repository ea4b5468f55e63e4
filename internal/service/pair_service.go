package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"item-pairs/internal/models"
	"item-pairs/internal/repository"
	"item-pairs/internal/similarity"

	"go.uber.org/zap"
)

var (
	ErrInvalidPairID = errors.New("invalid pair id")
	// ErrReconcileConflict is returned when every conditional write attempt
	// lost a race with another writer.
	ErrReconcileConflict = errors.New("pair kept changing during reconciliation")
)

// PairStore is the persistence contract the reconciliation engine relies on.
// Create must be insert-if-absent and Update must only succeed on a negative
// record still at expectedVersion; both report a lost race as
// repository.ErrPairConflict.
type PairStore interface {
	Create(ctx context.Context, p *models.ItemPair) error
	Update(ctx context.Context, p *models.ItemPair, expectedVersion int64) error
	GetByID(ctx context.Context, pairID string) (*models.ItemPair, error)
	List(ctx context.Context, limit, offset int) ([]*models.ItemPair, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, pairID string) error
}

type Estimator interface {
	Estimate(title1, title2 string) similarity.Result
}

type ReconcileResult struct {
	Pair     *models.ItemPair
	Estimate similarity.Result
	Action   Action
	Previous PairState
	Attempts int
}

type CompareResult struct {
	PairID         string
	Estimate       similarity.Result
	PairExists     bool
	ExistingStatus models.PairStatus
}

type PairService struct {
	store       PairStore
	estimator   Estimator
	maxAttempts int
	now         func() time.Time
	logger      *zap.Logger
}

func NewPairService(store PairStore, estimator Estimator, maxAttempts int, logger *zap.Logger) *PairService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &PairService{
		store:       store,
		estimator:   estimator,
		maxAttempts: maxAttempts,
		now:         time.Now,
		logger:      logger,
	}
}

// Compare judges a pair and reports whether it is already stored. It never writes.
func (s *PairService) Compare(ctx context.Context, a, b models.Item) (*CompareResult, error) {
	a, b = orderItems(a, b)
	res := &CompareResult{
		PairID:   models.PairID(a.ItemID, b.ItemID),
		Estimate: s.estimator.Estimate(a.Title, b.Title),
	}

	existing, err := s.lookup(ctx, res.PairID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		res.PairExists = true
		res.ExistingStatus = existing.Status
	}
	return res, nil
}

// Reconcile judges a pair once and stores the outcome following Decide.
// Every write is conditional on the state it was decided from; a lost race
// re-reads and decides again, up to maxAttempts times.
func (s *PairService) Reconcile(ctx context.Context, a, b models.Item, source string) (*ReconcileResult, error) {
	a, b = orderItems(a, b)
	pairID := models.PairID(a.ItemID, b.ItemID)
	est := s.estimator.Estimate(a.Title, b.Title)
	status := models.StatusFor(est.AreEqual, est.AreSimilar)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		existing, err := s.lookup(ctx, pairID)
		if err != nil {
			return nil, err
		}

		result := &ReconcileResult{
			Estimate: est,
			Action:   Decide(existing, status),
			Previous: StateOf(existing),
			Attempts: attempt,
		}

		switch result.Action {
		case ActionSkipped:
			result.Pair = existing
			return result, nil
		case ActionCreated:
			now := nextTimestamp(s.now(), time.Time{})
			result.Pair = &models.ItemPair{
				PairID:    pairID,
				Status:    status,
				Source:    source,
				CreatedAt: now,
				UpdatedAt: now,
				Version:   1,
			}
			applyJudgment(result.Pair, a, b, est)
			err = s.store.Create(ctx, result.Pair)
		case ActionUpdated:
			p := existing.Clone()
			applyJudgment(p, a, b, est)
			p.Status = status
			p.Source = source
			p.UpdatedAt = nextTimestamp(s.now(), existing.UpdatedAt)
			p.Version = existing.Version + 1
			result.Pair = p
			err = s.store.Update(ctx, p, existing.Version)
		}

		if err == nil {
			s.logger.Info("Pair reconciled",
				zap.String("pair_id", pairID),
				zap.String("action", string(result.Action)),
				zap.String("previous", string(result.Previous)),
				zap.String("status", string(result.Pair.Status)),
				zap.Float64("similarity_score", est.SimilarityScore),
				zap.String("strategy", string(est.Strategy)),
			)
			return result, nil
		}
		if !errors.Is(err, repository.ErrPairConflict) {
			return nil, fmt.Errorf("failed to store pair %s: %w", pairID, err)
		}
		s.logger.Debug("Conditional write lost a race",
			zap.String("pair_id", pairID),
			zap.String("action", string(result.Action)),
			zap.Int("attempt", attempt),
		)
	}
	return nil, fmt.Errorf("%w: %s after %d attempts", ErrReconcileConflict, pairID, s.maxAttempts)
}

func (s *PairService) Get(ctx context.Context, pairID string) (*models.ItemPair, error) {
	if _, _, err := models.ParsePairID(pairID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPairID, err)
	}
	return s.store.GetByID(ctx, pairID)
}

// List returns one page of pairs, newest first, with the total count.
func (s *PairService) List(ctx context.Context, limit, offset int) ([]*models.ItemPair, int, error) {
	pairs, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pairs: %w", err)
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pairs: %w", err)
	}
	return pairs, total, nil
}

// Delete forgets a pair, returning it to the absent state.
func (s *PairService) Delete(ctx context.Context, pairID string) error {
	if _, _, err := models.ParsePairID(pairID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPairID, err)
	}
	if err := s.store.Delete(ctx, pairID); err != nil {
		return err
	}
	s.logger.Info("Pair deleted", zap.String("pair_id", pairID))
	return nil
}

// lookup reads the stored pair. A failed read is treated as absent: the
// following insert-if-absent write settles whether the pair really exists.
func (s *PairService) lookup(ctx context.Context, pairID string) (*models.ItemPair, error) {
	existing, err := s.store.GetByID(ctx, pairID)
	switch {
	case err == nil:
		return existing, nil
	case errors.Is(err, repository.ErrPairNotFound):
		return nil, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		s.logger.Warn("Existence check failed, treating pair as absent",
			zap.String("pair_id", pairID),
			zap.Error(err),
		)
		return nil, nil
	}
}

// orderItems puts the lower id first so (A, B) and (B, A) store the same record.
func orderItems(a, b models.Item) (models.Item, models.Item) {
	a.Title, b.Title = cleanTitle(a.Title), cleanTitle(b.Title)
	if b.ItemID < a.ItemID {
		return b, a
	}
	return a, b
}

func applyJudgment(p *models.ItemPair, a, b models.Item, est similarity.Result) {
	p.ItemAID, p.ItemATitle = a.ItemID, a.Title
	p.ItemBID, p.ItemBTitle = b.ItemID, b.Title
	p.SimilarityScore = est.SimilarityScore
	p.AreEqual = est.AreEqual
	p.AreSimilar = est.AreSimilar
}
