package dto

import (
	"errors"
	"fmt"
	"time"

	"item-pairs/internal/service"
	"item-pairs/internal/similarity"
)

var ErrInvalidTrainingData = errors.New("invalid training data")

type TrainingSampleRequest struct {
	ItemATitle *string `json:"item_a_title" example:"Mouse inalambrico Logitech"`
	ItemBTitle *string `json:"item_b_title" example:"Mouse wireless Logitech"`
	IsSimilar  *int    `json:"is_similar" example:"1"`
}

type TrainRequest struct {
	TrainingData   []TrainingSampleRequest `json:"training_data"`
	ValidationData []TrainingSampleRequest `json:"validation_data,omitempty"`
}

// Samples validates both lists. Training data must be non-empty and every
// sample must carry both titles and a 0/1 label.
func (r *TrainRequest) Samples() (train, validation []similarity.TrainingSample, err error) {
	if len(r.TrainingData) == 0 {
		return nil, nil, fmt.Errorf("%w: training_data must be a non-empty list", ErrInvalidTrainingData)
	}
	if train, err = toSamples("training_data", r.TrainingData); err != nil {
		return nil, nil, err
	}
	if validation, err = toSamples("validation_data", r.ValidationData); err != nil {
		return nil, nil, err
	}
	return train, validation, nil
}

func toSamples(field string, in []TrainingSampleRequest) ([]similarity.TrainingSample, error) {
	out := make([]similarity.TrainingSample, 0, len(in))
	for i, s := range in {
		if s.ItemATitle == nil || s.ItemBTitle == nil || s.IsSimilar == nil {
			return nil, fmt.Errorf("%w: %s[%d] must contain item_a_title, item_b_title and is_similar", ErrInvalidTrainingData, field, i)
		}
		if *s.IsSimilar != 0 && *s.IsSimilar != 1 {
			return nil, fmt.Errorf("%w: %s[%d].is_similar must be 0 or 1", ErrInvalidTrainingData, field, i)
		}
		out = append(out, similarity.TrainingSample{
			ItemATitle: *s.ItemATitle,
			ItemBTitle: *s.ItemBTitle,
			IsSimilar:  *s.IsSimilar,
		})
	}
	return out, nil
}

type TrainResponse struct {
	Message           string                 `json:"message"`
	ModelID           string                 `json:"model_id"`
	TrainedAt         string                 `json:"trained_at"`
	TrainingSamples   int                    `json:"training_samples"`
	ValidationSamples int                    `json:"validation_samples"`
	VocabularySize    int                    `json:"vocabulary_size"`
	Trees             int                    `json:"trees"`
	Validation        *similarity.Evaluation `json:"validation,omitempty"`
}

func NewTrainResponse(r *service.TrainReport) TrainResponse {
	return TrainResponse{
		Message:           fmt.Sprintf("Model trained with %d pairs", r.TrainingSamples),
		ModelID:           r.ModelID,
		TrainedAt:         r.TrainedAt.UTC().Format(time.RFC3339Nano),
		TrainingSamples:   r.TrainingSamples,
		ValidationSamples: r.ValidationSamples,
		VocabularySize:    r.VocabularySize,
		Trees:             r.Trees,
		Validation:        r.Validation,
	}
}

type ModelStatusResponse struct {
	ModelTrained    bool                `json:"model_trained"`
	Strategy        similarity.Strategy `json:"strategy"`
	ModelPath       string              `json:"model_path"`
	ModelID         string              `json:"model_id,omitempty"`
	TrainedAt       string              `json:"trained_at,omitempty"`
	TrainingSamples int                 `json:"training_samples,omitempty"`
	VocabularySize  int                 `json:"vocabulary_size,omitempty"`
	Trees           int                 `json:"trees,omitempty"`
	Features        []string            `json:"features"`
	Threshold       float64             `json:"similarity_threshold"`
}

func NewModelStatusResponse(st similarity.ModelStatus, modelPath string) ModelStatusResponse {
	resp := ModelStatusResponse{
		ModelTrained:    st.Trained,
		Strategy:        st.Strategy,
		ModelPath:       modelPath,
		ModelID:         st.ModelID,
		TrainingSamples: st.TrainingSamples,
		VocabularySize:  st.VocabularySize,
		Trees:           st.Trees,
		Features:        st.Features,
		Threshold:       similarity.SimilarityThreshold,
	}
	if !st.TrainedAt.IsZero() {
		resp.TrainedAt = st.TrainedAt.UTC().Format(time.RFC3339Nano)
	}
	return resp
}

type HealthResponse struct {
	Status       string              `json:"status"`
	Message      string              `json:"message"`
	Timestamp    string              `json:"timestamp"`
	StoreBackend string              `json:"store_backend"`
	Strategy     similarity.Strategy `json:"strategy"`
}
