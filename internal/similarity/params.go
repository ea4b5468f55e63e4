package similarity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TrainParams are the boosting and vectorizer hyper-parameters.
type TrainParams struct {
	NEstimators         int     `yaml:"n_estimators" json:"n_estimators"`
	MaxDepth            int     `yaml:"max_depth" json:"max_depth"`
	LearningRate        float64 `yaml:"learning_rate" json:"learning_rate"`
	Lambda              float64 `yaml:"lambda" json:"lambda"`
	MinChildWeight      float64 `yaml:"min_child_weight" json:"min_child_weight"`
	EarlyStoppingRounds int     `yaml:"early_stopping_rounds" json:"early_stopping_rounds"`
	MaxFeatures         int     `yaml:"max_features" json:"max_features"`
}

func DefaultTrainParams() TrainParams {
	return TrainParams{
		NEstimators:         100,
		MaxDepth:            6,
		LearningRate:        0.1,
		Lambda:              1,
		MinChildWeight:      1,
		EarlyStoppingRounds: 10,
		MaxFeatures:         1000,
	}
}

// LoadTrainParams reads a YAML file on top of the defaults, so a file only
// needs the keys it changes.
func LoadTrainParams(path string) (TrainParams, error) {
	p := DefaultTrainParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read train params: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse train params: %w", err)
	}
	return p, p.Validate()
}

func (p TrainParams) Validate() error {
	switch {
	case p.NEstimators < 1:
		return fmt.Errorf("n_estimators must be positive, got %d", p.NEstimators)
	case p.MaxDepth < 1:
		return fmt.Errorf("max_depth must be positive, got %d", p.MaxDepth)
	case p.LearningRate <= 0 || p.LearningRate > 1:
		return fmt.Errorf("learning_rate must be in (0, 1], got %g", p.LearningRate)
	case p.Lambda < 0:
		return fmt.Errorf("lambda must not be negative, got %g", p.Lambda)
	case p.MinChildWeight < 0:
		return fmt.Errorf("min_child_weight must not be negative, got %g", p.MinChildWeight)
	case p.EarlyStoppingRounds < 0:
		return fmt.Errorf("early_stopping_rounds must not be negative, got %d", p.EarlyStoppingRounds)
	case p.MaxFeatures < 0:
		return fmt.Errorf("max_features must not be negative, got %d", p.MaxFeatures)
	}
	return nil
}

func (p TrainParams) boost() boostParams {
	return boostParams{
		rounds:         p.NEstimators,
		maxDepth:       p.MaxDepth,
		learningRate:   p.LearningRate,
		lambda:         p.Lambda,
		minChildWeight: p.MinChildWeight,
		earlyStopping:  p.EarlyStoppingRounds,
	}
}
