package handlers

import (
	"errors"

	"item-pairs/internal/dto"
	"item-pairs/internal/repository"
	"item-pairs/internal/service"
	"item-pairs/internal/similarity"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrInvalidItem),
		errors.Is(err, dto.ErrInvalidTrainingData),
		errors.Is(err, service.ErrInvalidPairID),
		errors.Is(err, similarity.ErrNoSamples),
		errors.Is(err, similarity.ErrEmptyVocabulary),
		errors.Is(err, similarity.ErrInvalidLabel):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrPairNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrTrainingInProgress),
		errors.Is(err, service.ErrReconcileConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}
