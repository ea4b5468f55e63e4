package similarity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

var (
	ErrInvalidModel    = errors.New("invalid similarity model")
	ErrFeatureMismatch = errors.New("feature vector mismatch")
	ErrNoSamples       = errors.New("no training samples")
)

// ModelFormatVersion is bumped whenever the serialized layout changes.
const ModelFormatVersion = 1

// Model is the fitted artifact consumed by TrainedEstimator. It is never
// mutated after Train or DecodeModel returns it.
type Model struct {
	FormatVersion   int         `json:"format_version"`
	ID              string      `json:"id"`
	TrainedAt       time.Time   `json:"trained_at"`
	TrainingSamples int         `json:"training_samples"`
	FeatureNames    []string    `json:"feature_names"`
	Vectorizer      *Vectorizer `json:"vectorizer"`
	Scaler          *Scaler     `json:"scaler"`
	Booster         *Booster    `json:"booster"`
}

// Validate checks that every part of the model fits together.
func (m *Model) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrInvalidModel)
	}
	if m.FormatVersion != ModelFormatVersion {
		return fmt.Errorf("%w: format version %d, want %d", ErrInvalidModel, m.FormatVersion, ModelFormatVersion)
	}
	if len(m.FeatureNames) != NumFeatures {
		return fmt.Errorf("%w: model has %d features, want %d", ErrFeatureMismatch, len(m.FeatureNames), NumFeatures)
	}
	for i, name := range m.FeatureNames {
		if name != FeatureNames[i] {
			return fmt.Errorf("%w: feature %d is %q, want %q", ErrFeatureMismatch, i, name, FeatureNames[i])
		}
	}

	if m.Vectorizer == nil || m.Vectorizer.Size() == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidModel, ErrEmptyVocabulary)
	}
	if len(m.Vectorizer.IDF) != m.Vectorizer.Size() {
		return fmt.Errorf("%w: %d idf weights for %d terms", ErrInvalidModel, len(m.Vectorizer.IDF), m.Vectorizer.Size())
	}
	for term, idx := range m.Vectorizer.Vocabulary {
		if idx < 0 || idx >= len(m.Vectorizer.IDF) {
			return fmt.Errorf("%w: term %q has index %d", ErrInvalidModel, term, idx)
		}
	}
	if !allFinite(m.Vectorizer.IDF) {
		return fmt.Errorf("%w: idf weights are not finite", ErrInvalidModel)
	}

	if m.Scaler == nil || len(m.Scaler.Mean) != NumFeatures || len(m.Scaler.Scale) != NumFeatures {
		return fmt.Errorf("%w: scaler does not cover %d features", ErrInvalidModel, NumFeatures)
	}
	if !allFinite(m.Scaler.Mean) || !allFinite(m.Scaler.Scale) {
		return fmt.Errorf("%w: scaler parameters are not finite", ErrInvalidModel)
	}
	for j, s := range m.Scaler.Scale {
		if s == 0 {
			return fmt.Errorf("%w: scaler column %d has zero scale", ErrInvalidModel, j)
		}
	}

	if m.Booster == nil {
		return fmt.Errorf("%w: missing classifier", ErrInvalidModel)
	}
	return m.Booster.validate(NumFeatures)
}

// Encode writes the model as JSON. Float64 values round-trip exactly.
func (m *Model) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	return enc.Encode(m)
}

// DecodeModel reads and validates a model written by Encode.
func DecodeModel(r io.Reader) (*Model, error) {
	var m Model
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
