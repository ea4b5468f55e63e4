package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"item-pairs/internal/dataset"
	"item-pairs/internal/similarity"
)

func TestModelFileRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "similarity_model.json")
	repo := NewModelFileRepository(path, zap.NewNop())

	_, err := repo.Load()
	assert.ErrorIs(t, err, ErrModelNotFound)

	m, err := similarity.Train(dataset.SyntheticSamples(), nil, similarity.DefaultTrainParams())
	require.NoError(t, err)
	require.NoError(t, repo.Save(m))

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, m.ID, loaded.ID)
	assert.Equal(t, m.Vectorizer, loaded.Vectorizer)

	second, err := similarity.Train(dataset.SyntheticSamples()[:12], nil, similarity.DefaultTrainParams())
	require.NoError(t, err)
	require.NoError(t, repo.Save(second))
	loaded, err = repo.Load()
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestModelFileRepositoryCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"format_version": 1, "trees": [`), 0o644))

	_, err := NewModelFileRepository(path, zap.NewNop()).Load()
	assert.ErrorIs(t, err, similarity.ErrInvalidModel)
	assert.NotErrorIs(t, err, ErrModelNotFound)
}
