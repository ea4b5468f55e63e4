package handlers

import (
	"time"

	"item-pairs/internal/dto"
	"item-pairs/internal/service"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	trainingService *service.TrainingService
	storeBackend    string
}

func NewHealthHandler(trainingService *service.TrainingService, storeBackend string) *HealthHandler {
	return &HealthHandler{
		trainingService: trainingService,
		storeBackend:    storeBackend,
	}
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:       "ok",
		Message:      "Item pair similarity service is running",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		StoreBackend: h.storeBackend,
		Strategy:     h.trainingService.Status().Strategy,
	})
}
