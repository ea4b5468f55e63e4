package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"item-pairs/internal/similarity"

	"go.uber.org/zap"
)

var ErrModelNotFound = errors.New("similarity model not found")

// ModelFileRepository persists the similarity model as a JSON file.
type ModelFileRepository struct {
	path   string
	logger *zap.Logger
}

func NewModelFileRepository(path string, logger *zap.Logger) *ModelFileRepository {
	return &ModelFileRepository{
		path:   path,
		logger: logger,
	}
}

func (r *ModelFileRepository) Path() string { return r.path }

// Load reads and validates the stored model.
func (r *ModelFileRepository) Load() (*similarity.Model, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	m, err := similarity.DecodeModel(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", r.path, err)
	}
	return m, nil
}

// Save replaces the stored model atomically: readers see either the old
// file or the complete new one.
func (r *ModelFileRepository) Save(m *similarity.Model) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp model file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := m.Encode(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close model: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace model: %w", err)
	}

	r.logger.Info("Similarity model saved",
		zap.String("path", r.path),
		zap.String("model_id", m.ID),
	)
	return nil
}
