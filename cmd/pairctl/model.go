package main

import (
	"context"

	"item-pairs/internal/repository"
	"item-pairs/internal/service"
	"item-pairs/internal/similarity"
	"item-pairs/pkg/config"

	"go.uber.org/zap"
)

type modelEnv struct {
	repo     *repository.ModelFileRepository
	detector *similarity.Detector
	training *service.TrainingService
}

// openModel wires the model lifecycle the same way the server does.
// paramsPath overrides MODEL_PARAMS_PATH when set.
func openModel(cfg *config.Config, paramsPath string, logger *zap.Logger) (*modelEnv, error) {
	if paramsPath == "" {
		paramsPath = cfg.Model.ParamsPath
	}
	params := similarity.DefaultTrainParams()
	if paramsPath != "" {
		var err error
		if params, err = similarity.LoadTrainParams(paramsPath); err != nil {
			return nil, err
		}
	}

	repo := repository.NewModelFileRepository(cfg.Model.Path, logger.Named("models"))
	detector := similarity.NewDetector(logger.Named("similarity"))
	return &modelEnv{
		repo:     repo,
		detector: detector,
		training: service.NewTrainingService(detector, repo, params, cfg.Model.Bootstrap, logger.Named("training")),
	}, nil
}

func (m *modelEnv) bootstrap(ctx context.Context) error {
	return m.training.Bootstrap(ctx)
}
