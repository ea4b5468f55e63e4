package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"item-pairs/internal/dataset"
	"item-pairs/internal/repository"
	"item-pairs/internal/similarity"

	"go.uber.org/zap"
)

var ErrTrainingInProgress = errors.New("a training run is already in progress")

type ModelStore interface {
	Load() (*similarity.Model, error)
	Save(m *similarity.Model) error
}

type TrainRequest struct {
	Training   []similarity.TrainingSample
	Validation []similarity.TrainingSample
	// Params overrides the service defaults when set.
	Params *similarity.TrainParams
}

type TrainReport struct {
	ModelID           string                 `json:"model_id"`
	TrainedAt         time.Time              `json:"trained_at"`
	TrainingSamples   int                    `json:"training_samples"`
	ValidationSamples int                    `json:"validation_samples"`
	VocabularySize    int                    `json:"vocabulary_size"`
	Trees             int                    `json:"trees"`
	Validation        *similarity.Evaluation `json:"validation,omitempty"`
	Duration          time.Duration          `json:"-"`
}

// TrainingService owns the model lifecycle: training, persisting and
// publishing to the detector. Estimation never waits on it.
type TrainingService struct {
	detector  *similarity.Detector
	models    ModelStore
	params    similarity.TrainParams
	bootstrap bool
	mu        sync.Mutex
	logger    *zap.Logger
}

func NewTrainingService(
	detector *similarity.Detector,
	models ModelStore,
	params similarity.TrainParams,
	bootstrap bool,
	logger *zap.Logger,
) *TrainingService {
	return &TrainingService{
		detector:  detector,
		models:    models,
		params:    params,
		bootstrap: bootstrap,
		logger:    logger,
	}
}

// Train fits a model, saves it and only then publishes it. Any failure
// leaves the current model in place.
func (s *TrainingService) Train(ctx context.Context, req TrainRequest) (*TrainReport, error) {
	if !s.mu.TryLock() {
		return nil, ErrTrainingInProgress
	}
	defer s.mu.Unlock()
	return s.train(ctx, req)
}

func (s *TrainingService) train(ctx context.Context, req TrainRequest) (*TrainReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	params := s.params
	if req.Params != nil {
		params = *req.Params
	}

	start := time.Now()
	model, err := similarity.Train(req.Training, req.Validation, params)
	if err != nil {
		s.logger.Warn("Training rejected", zap.Int("samples", len(req.Training)), zap.Error(err))
		return nil, err
	}

	report := &TrainReport{
		ModelID:           model.ID,
		TrainedAt:         model.TrainedAt,
		TrainingSamples:   len(req.Training),
		ValidationSamples: len(req.Validation),
		VocabularySize:    model.Vectorizer.Size(),
		Trees:             len(model.Booster.Trees),
		Duration:          time.Since(start),
	}
	if len(req.Validation) > 0 {
		ev, err := similarity.EvaluateModel(model, req.Validation)
		if err != nil {
			return nil, err
		}
		report.Validation = &ev
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.models.Save(model); err != nil {
		return nil, fmt.Errorf("failed to persist model: %w", err)
	}
	if err := s.detector.Swap(model); err != nil {
		return nil, fmt.Errorf("failed to publish model: %w", err)
	}

	s.logger.Info("Model trained",
		zap.String("model_id", report.ModelID),
		zap.Int("training_samples", report.TrainingSamples),
		zap.Int("validation_samples", report.ValidationSamples),
		zap.Int("vocabulary_size", report.VocabularySize),
		zap.Int("trees", report.Trees),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// Bootstrap publishes the stored model and is also the reload path. With no
// stored model it trains on the synthetic set when enabled. A stored model
// that cannot be read drops any published model, leaving the fallback
// estimator; the file is not overwritten.
func (s *TrainingService) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.models.Load()
	switch {
	case err == nil:
		return s.detector.Swap(model)
	case !errors.Is(err, repository.ErrModelNotFound):
		s.logger.Error("Stored model is unusable, using fallback estimator", zap.Error(err))
		s.detector.Clear()
		return nil
	case !s.bootstrap:
		s.logger.Info("No stored model, using fallback estimator")
		return nil
	}

	s.logger.Info("No stored model, training on synthetic samples")
	if _, err := s.train(ctx, TrainRequest{Training: dataset.SyntheticSamples()}); err != nil {
		return fmt.Errorf("bootstrap training failed: %w", err)
	}
	return nil
}

func (s *TrainingService) Status() similarity.ModelStatus {
	return s.detector.Status()
}
