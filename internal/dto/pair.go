package dto

import (
	"errors"
	"fmt"
	"time"

	"item-pairs/internal/models"
	"item-pairs/internal/service"
	"item-pairs/internal/similarity"
)

var ErrInvalidItem = errors.New("invalid item")

// ItemRequest uses pointers so a missing field can be told apart from a zero value.
type ItemRequest struct {
	ItemID *int64  `json:"item_id" example:"1"`
	Title  *string `json:"title" example:"Telefono Samsung Galaxy"`
}

type PairRequest struct {
	ItemA *ItemRequest `json:"item_a"`
	ItemB *ItemRequest `json:"item_b"`
}

// Items validates the request and returns the two items.
func (r *PairRequest) Items() (models.Item, models.Item, error) {
	a, err := r.ItemA.item("item_a")
	if err != nil {
		return models.Item{}, models.Item{}, err
	}
	b, err := r.ItemB.item("item_b")
	if err != nil {
		return models.Item{}, models.Item{}, err
	}
	return a, b, nil
}

func (r *ItemRequest) item(field string) (models.Item, error) {
	switch {
	case r == nil:
		return models.Item{}, fmt.Errorf("%w: %s is required", ErrInvalidItem, field)
	case r.ItemID == nil:
		return models.Item{}, fmt.Errorf("%w: %s.item_id is required", ErrInvalidItem, field)
	case r.Title == nil:
		return models.Item{}, fmt.Errorf("%w: %s.title is required", ErrInvalidItem, field)
	}
	return models.Item{ItemID: *r.ItemID, Title: *r.Title}, nil
}

type CompareResponse struct {
	Message         string              `json:"message"`
	PairID          string              `json:"pair_id"`
	SimilarityScore float64             `json:"similarity_score"`
	AreEqual        bool                `json:"are_equal"`
	AreSimilar      bool                `json:"are_similar"`
	Confidence      float64             `json:"confidence"`
	Strategy        similarity.Strategy `json:"strategy"`
	PairExists      bool                `json:"pair_exists"`
	ExistingStatus  string              `json:"existing_status,omitempty"`
}

func NewCompareResponse(res *service.CompareResult) CompareResponse {
	return CompareResponse{
		Message:         "Comparison completed",
		PairID:          res.PairID,
		SimilarityScore: res.Estimate.SimilarityScore,
		AreEqual:        res.Estimate.AreEqual,
		AreSimilar:      res.Estimate.AreSimilar,
		Confidence:      res.Estimate.Confidence,
		Strategy:        res.Estimate.Strategy,
		PairExists:      res.PairExists,
		ExistingStatus:  string(res.ExistingStatus),
	}
}

type PairResponse struct {
	PairID          string  `json:"pair_id"`
	ItemAID         int64   `json:"item_a_id"`
	ItemATitle      string  `json:"item_a_title"`
	ItemBID         int64   `json:"item_b_id"`
	ItemBTitle      string  `json:"item_b_title"`
	SimilarityScore float64 `json:"similarity_score"`
	AreEqual        bool    `json:"are_equal"`
	AreSimilar      bool    `json:"are_similar"`
	Status          string  `json:"status"`
	Source          string  `json:"source,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func NewPairResponse(p *models.ItemPair) PairResponse {
	return PairResponse{
		PairID:          p.PairID,
		ItemAID:         p.ItemAID,
		ItemATitle:      p.ItemATitle,
		ItemBID:         p.ItemBID,
		ItemBTitle:      p.ItemBTitle,
		SimilarityScore: p.SimilarityScore,
		AreEqual:        p.AreEqual,
		AreSimilar:      p.AreSimilar,
		Status:          string(p.Status),
		Source:          p.Source,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type ReconcileResponse struct {
	PairResponse
	Message       string              `json:"message"`
	Action        string              `json:"action"`
	PreviousState string              `json:"previous_state"`
	Confidence    float64             `json:"confidence"`
	Strategy      similarity.Strategy `json:"strategy"`
}

func NewReconcileResponse(res *service.ReconcileResult) ReconcileResponse {
	msg := "Pair created"
	switch res.Action {
	case service.ActionUpdated:
		msg = "Pair updated"
	case service.ActionSkipped:
		msg = "Pair already positive, left unchanged"
	}
	return ReconcileResponse{
		PairResponse:  NewPairResponse(res.Pair),
		Message:       msg,
		Action:        string(res.Action),
		PreviousState: string(res.Previous),
		Confidence:    res.Estimate.Confidence,
		Strategy:      res.Estimate.Strategy,
	}
}

type PairListResponse struct {
	Message string         `json:"message"`
	Pairs   []PairResponse `json:"pairs"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

func NewPairListResponse(pairs []*models.ItemPair, total, limit, offset int) PairListResponse {
	resp := PairListResponse{
		Message: fmt.Sprintf("Found %d item pairs", total),
		Pairs:   make([]PairResponse, 0, len(pairs)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for _, p := range pairs {
		resp.Pairs = append(resp.Pairs, NewPairResponse(p))
	}
	return resp
}
