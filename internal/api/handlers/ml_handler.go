package handlers

import (
	"errors"

	"item-pairs/internal/dto"
	"item-pairs/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MLHandler struct {
	trainingService *service.TrainingService
	modelPath       string
	logger          *zap.Logger
}

func NewMLHandler(trainingService *service.TrainingService, modelPath string, logger *zap.Logger) *MLHandler {
	return &MLHandler{
		trainingService: trainingService,
		modelPath:       modelPath,
		logger:          logger,
	}
}

// TrainModel godoc
// @Summary Train the similarity model
// @Description Fit a new model from labeled title pairs, persist it and publish it. The current model stays live if training fails.
// @Tags ml
// @Accept json
// @Produce json
// @Param request body dto.TrainRequest true "Labeled training pairs"
// @Success 200 {object} dto.TrainResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /ml/train [post]
func (h *MLHandler) TrainModel(c *fiber.Ctx) error {
	var req dto.TrainRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	train, validation, err := req.Samples()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.trainingService.Train(c.UserContext(), service.TrainRequest{
		Training:   train,
		Validation: validation,
	})
	if err != nil {
		status := statusFor(err)
		switch {
		case errors.Is(err, service.ErrTrainingInProgress):
			return errorJSON(c, status, err.Error())
		case status == fiber.StatusBadRequest:
			return errorJSON(c, status, "Training data rejected: "+err.Error())
		}
		h.logger.Error("Failed to train model", zap.Error(err))
		return errorJSON(c, status, "Failed to train model")
	}

	return c.JSON(dto.NewTrainResponse(report))
}

// ModelStatus godoc
// @Summary Similarity model status
// @Tags ml
// @Produce json
// @Success 200 {object} dto.ModelStatusResponse
// @Router /ml/status [get]
func (h *MLHandler) ModelStatus(c *fiber.Ctx) error {
	return c.JSON(dto.NewModelStatusResponse(h.trainingService.Status(), h.modelPath))
}
