package similarity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidLabel = errors.New("label must be 0 or 1")

// TrainingSample is a labeled title pair.
type TrainingSample struct {
	ItemATitle string `json:"item_a_title"`
	ItemBTitle string `json:"item_b_title"`
	IsSimilar  int    `json:"is_similar"`
}

// Train fits vectorizer, scaler and booster on train. validation may be
// empty; when given it drives early stopping.
func Train(train, validation []TrainingSample, params TrainParams) (*Model, error) {
	if len(train) == 0 {
		return nil, ErrNoSamples
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := checkLabels(train); err != nil {
		return nil, err
	}
	if err := checkLabels(validation); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}

	titles := make([]string, 0, 2*len(train))
	for _, s := range train {
		for _, t := range [...]string{s.ItemATitle, s.ItemBTitle} {
			if n := Normalize(t); n != "" {
				titles = append(titles, n)
			}
		}
	}
	if len(titles) == 0 {
		return nil, ErrEmptyVocabulary
	}
	vec, err := FitVectorizer(titles, params.MaxFeatures)
	if err != nil {
		return nil, err
	}

	x, y := featureRows(train, vec)
	scaler, err := FitScaler(x)
	if err != nil {
		return nil, err
	}
	if err := scaleRows(scaler, x); err != nil {
		return nil, err
	}

	var vx [][]float64
	var vy []float64
	if len(validation) > 0 {
		vx, vy = featureRows(validation, vec)
		if err := scaleRows(scaler, vx); err != nil {
			return nil, err
		}
	}

	m := &Model{
		FormatVersion:   ModelFormatVersion,
		ID:              uuid.New().String(),
		TrainedAt:       time.Now().UTC(),
		TrainingSamples: len(train),
		FeatureNames:    append([]string(nil), FeatureNames...),
		Vectorizer:      vec,
		Scaler:          scaler,
		Booster:         fitBooster(x, y, vx, vy, params.boost()),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func checkLabels(samples []TrainingSample) error {
	for i, s := range samples {
		if s.IsSimilar != 0 && s.IsSimilar != 1 {
			return fmt.Errorf("%w: sample %d has %d", ErrInvalidLabel, i, s.IsSimilar)
		}
	}
	return nil
}

func featureRows(samples []TrainingSample, vec *Vectorizer) ([][]float64, []float64) {
	x := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = ExtractFeatures(s.ItemATitle, s.ItemBTitle, vec)
		y[i] = float64(s.IsSimilar)
	}
	return x, y
}

func scaleRows(s *Scaler, rows [][]float64) error {
	for i, r := range rows {
		scaled, err := s.Transform(r)
		if err != nil {
			return err
		}
		rows[i] = scaled
	}
	return nil
}
