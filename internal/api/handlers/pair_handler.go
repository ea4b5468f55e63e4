package handlers

import (
	"strconv"

	"item-pairs/internal/dto"
	"item-pairs/internal/service"
	"item-pairs/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

type PairHandler struct {
	pairService *service.PairService
	logger      *zap.Logger
}

func NewPairHandler(pairService *service.PairService, logger *zap.Logger) *PairHandler {
	return &PairHandler{
		pairService: pairService,
		logger:      logger,
	}
}

// ComparePair godoc
// @Summary Compare two items
// @Description Score the similarity of two item titles and report whether the pair is already stored. Nothing is written.
// @Tags items
// @Accept json
// @Produce json
// @Param request body dto.PairRequest true "Items to compare"
// @Success 200 {object} dto.CompareResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /items/compare [post]
func (h *PairHandler) ComparePair(c *fiber.Ctx) error {
	var req dto.PairRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	a, b, err := req.Items()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.pairService.Compare(c.UserContext(), a, b)
	if err != nil {
		h.logger.Error("Failed to compare items",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		return errorJSON(c, statusFor(err), "Failed to compare items")
	}

	return c.JSON(dto.NewCompareResponse(res))
}

// ReconcilePair godoc
// @Summary Evaluate and store an item pair
// @Description Score the pair and store the judgment. Negative pairs are refreshed and may be upgraded; positive pairs are never rewritten.
// @Tags items
// @Accept json
// @Produce json
// @Param request body dto.PairRequest true "Items to reconcile"
// @Success 200 {object} dto.ReconcileResponse "Pair already positive"
// @Success 201 {object} dto.ReconcileResponse "Pair created or updated"
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /items/pairs [post]
func (h *PairHandler) ReconcilePair(c *fiber.Ctx) error {
	var req dto.PairRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	a, b, err := req.Items()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.pairService.Reconcile(c.UserContext(), a, b, "api")
	if err != nil {
		h.logger.Error("Failed to reconcile pair",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Int64("item_a_id", a.ItemID),
			zap.Int64("item_b_id", b.ItemID),
			zap.Error(err),
		)
		return errorJSON(c, statusFor(err), "Failed to store item pair")
	}

	status := fiber.StatusCreated
	if res.Action == service.ActionSkipped {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.NewReconcileResponse(res))
}

// ListPairs godoc
// @Summary List item pairs
// @Description List stored pairs, newest first
// @Tags items
// @Produce json
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Number of pairs to skip"
// @Success 200 {object} dto.PairListResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /items/pairs [get]
func (h *PairHandler) ListPairs(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil || limit < 1 {
		return errorJSON(c, fiber.StatusBadRequest, "limit must be a positive integer")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		return errorJSON(c, fiber.StatusBadRequest, "offset must be a non-negative integer")
	}

	pairs, total, err := h.pairService.List(c.UserContext(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list pairs", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to list item pairs")
	}

	return c.JSON(dto.NewPairListResponse(pairs, total, limit, offset))
}

// GetPair godoc
// @Summary Get an item pair
// @Tags items
// @Produce json
// @Param pair_id path string true "Canonical pair id, e.g. 1_2"
// @Success 200 {object} dto.PairResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /items/pairs/{pair_id} [get]
func (h *PairHandler) GetPair(c *fiber.Ctx) error {
	pairID := c.Params("pair_id")
	pair, err := h.pairService.Get(c.UserContext(), pairID)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to get pair", zap.String("pair_id", pairID), zap.Error(err))
			return errorJSON(c, status, "Failed to get item pair")
		}
		return errorJSON(c, status, err.Error())
	}

	return c.JSON(dto.NewPairResponse(pair))
}

// DeletePair godoc
// @Summary Delete an item pair
// @Description Forget a pair so that the next evaluation creates it afresh
// @Tags items
// @Produce json
// @Param pair_id path string true "Canonical pair id, e.g. 1_2"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /items/pairs/{pair_id} [delete]
func (h *PairHandler) DeletePair(c *fiber.Ctx) error {
	pairID := c.Params("pair_id")
	if err := h.pairService.Delete(c.UserContext(), pairID); err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Failed to delete pair", zap.String("pair_id", pairID), zap.Error(err))
			return errorJSON(c, status, "Failed to delete item pair")
		}
		return errorJSON(c, status, err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "Item pair deleted",
		"pair_id": pairID,
	})
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
