package similarity

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// SimilarityThreshold is the minimum score for a pair to count as similar.
const SimilarityThreshold = 0.7

// fallbackConfidence is reported for every non-identical fallback estimate.
const fallbackConfidence = 0.8

type Strategy string

const (
	StrategyTrained  Strategy = "trained"
	StrategyFallback Strategy = "fallback"
)

// Result is one similarity judgement.
type Result struct {
	SimilarityScore float64  `json:"similarity_score"`
	AreEqual        bool     `json:"are_equal"`
	AreSimilar      bool     `json:"are_similar"`
	Confidence      float64  `json:"confidence"`
	Strategy        Strategy `json:"strategy"`
}

func identical(s Strategy) Result {
	return Result{SimilarityScore: 1, AreEqual: true, AreSimilar: true, Confidence: 1, Strategy: s}
}

// FallbackEstimator scores pairs by TF-IDF cosine over the two titles alone.
type FallbackEstimator struct{}

func (FallbackEstimator) Estimate(title1, title2 string) Result {
	a, b := Normalize(title1), Normalize(title2)
	if a == b {
		return identical(StrategyFallback)
	}
	score := pairCosine(a, b)
	return Result{
		SimilarityScore: score,
		AreSimilar:      score >= SimilarityThreshold,
		Confidence:      fallbackConfidence,
		Strategy:        StrategyFallback,
	}
}

// TrainedEstimator scores pairs with a fitted Model.
type TrainedEstimator struct {
	model *Model
}

// NewTrainedEstimator validates m before accepting it.
func NewTrainedEstimator(m *Model) (*TrainedEstimator, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &TrainedEstimator{model: m}, nil
}

func (e *TrainedEstimator) Model() *Model { return e.model }

func (e *TrainedEstimator) Estimate(title1, title2 string) (res Result, err error) {
	a, b := Normalize(title1), Normalize(title2)
	if a == b {
		return identical(StrategyTrained), nil
	}

	defer func() {
		if r := recover(); r != nil {
			res, err = Result{}, fmt.Errorf("%w: scoring panicked: %v", ErrInvalidModel, r)
		}
	}()

	x, err := e.model.Scaler.Transform(ExtractFeatures(a, b, e.model.Vectorizer))
	if err != nil {
		return Result{}, err
	}
	p := e.model.Booster.Probability(x)
	if math.IsNaN(p) {
		return Result{}, fmt.Errorf("%w: probability is NaN", ErrInvalidModel)
	}
	score := clamp01(p)
	return Result{
		SimilarityScore: score,
		AreSimilar:      score >= SimilarityThreshold,
		Confidence:      math.Max(score, 1-score),
		Strategy:        StrategyTrained,
	}, nil
}

// ModelStatus describes the estimator currently in use.
type ModelStatus struct {
	Trained         bool      `json:"trained"`
	Strategy        Strategy  `json:"strategy"`
	ModelID         string    `json:"model_id,omitempty"`
	TrainedAt       time.Time `json:"trained_at,omitempty"`
	TrainingSamples int       `json:"training_samples,omitempty"`
	VocabularySize  int       `json:"vocabulary_size,omitempty"`
	Trees           int       `json:"trees,omitempty"`
	Features        []string  `json:"features"`
}

// Detector picks the trained estimator when one is published and degrades
// to the fallback otherwise. It is safe for concurrent use.
type Detector struct {
	trained  atomic.Pointer[TrainedEstimator]
	fallback FallbackEstimator
	logger   *zap.Logger
}

func NewDetector(logger *zap.Logger) *Detector {
	return &Detector{logger: logger}
}

// Estimate never fails: scoring errors are logged and answered by the fallback.
func (d *Detector) Estimate(title1, title2 string) Result {
	if te := d.trained.Load(); te != nil {
		res, err := te.Estimate(title1, title2)
		if err == nil {
			return res
		}
		d.logger.Warn("Trained estimator failed, using fallback",
			zap.String("model_id", te.model.ID),
			zap.Error(err),
		)
	}
	return d.fallback.Estimate(title1, title2)
}

// Swap validates m and publishes it for all subsequent estimates.
func (d *Detector) Swap(m *Model) error {
	te, err := NewTrainedEstimator(m)
	if err != nil {
		return err
	}
	d.trained.Store(te)
	d.logger.Info("Similarity model published",
		zap.String("model_id", m.ID),
		zap.Int("vocabulary_size", m.Vectorizer.Size()),
		zap.Int("trees", len(m.Booster.Trees)),
	)
	return nil
}

// Clear drops the trained model.
func (d *Detector) Clear() {
	d.trained.Store(nil)
}

func (d *Detector) Status() ModelStatus {
	te := d.trained.Load()
	if te == nil {
		return ModelStatus{Strategy: StrategyFallback, Features: FeatureNames}
	}
	m := te.model
	return ModelStatus{
		Trained:         true,
		Strategy:        StrategyTrained,
		ModelID:         m.ID,
		TrainedAt:       m.TrainedAt,
		TrainingSamples: m.TrainingSamples,
		VocabularySize:  m.Vectorizer.Size(),
		Trees:           len(m.Booster.Trees),
		Features:        m.FeatureNames,
	}
}
