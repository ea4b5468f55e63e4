package similarity_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"item-pairs/internal/dataset"
	"item-pairs/internal/similarity"
)

func trainSynthetic(t *testing.T) *similarity.Model {
	t.Helper()
	m, err := similarity.Train(dataset.SyntheticSamples(), nil, similarity.DefaultTrainParams())
	require.NoError(t, err)
	return m
}

func TestTrainSynthetic(t *testing.T) {
	m := trainSynthetic(t)

	assert.Equal(t, similarity.ModelFormatVersion, m.FormatVersion)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, 16, m.TrainingSamples)
	assert.Equal(t, similarity.FeatureNames, m.FeatureNames)
	assert.Equal(t, 67, m.Vectorizer.Size())
	assert.Len(t, m.Booster.Trees, 100)
	assert.NoError(t, m.Validate())
}

func TestTrainEarlyStoppingTruncates(t *testing.T) {
	samples := dataset.SyntheticSamples()

	m, err := similarity.Train(samples[:12], samples[12:], similarity.DefaultTrainParams())
	require.NoError(t, err)

	assert.Less(t, len(m.Booster.Trees), 100)
	assert.NotEmpty(t, m.Booster.Trees)
}

func TestTrainErrors(t *testing.T) {
	params := similarity.DefaultTrainParams()

	_, err := similarity.Train(nil, nil, params)
	assert.ErrorIs(t, err, similarity.ErrNoSamples)

	_, err = similarity.Train([]similarity.TrainingSample{{ItemATitle: " ", ItemBTitle: "", IsSimilar: 1}}, nil, params)
	assert.ErrorIs(t, err, similarity.ErrEmptyVocabulary)

	_, err = similarity.Train([]similarity.TrainingSample{{ItemATitle: "aa", ItemBTitle: "bb", IsSimilar: 2}}, nil, params)
	assert.ErrorIs(t, err, similarity.ErrInvalidLabel)

	bad := params
	bad.NEstimators = 0
	_, err = similarity.Train(dataset.SyntheticSamples(), nil, bad)
	assert.Error(t, err)
}

func TestTrainOnlyShortTokens(t *testing.T) {
	// Non-empty titles whose tokens are all single runes still yield no vocabulary.
	_, err := similarity.Train([]similarity.TrainingSample{{ItemATitle: "a", ItemBTitle: "b c", IsSimilar: 0}}, nil, similarity.DefaultTrainParams())
	assert.ErrorIs(t, err, similarity.ErrEmptyVocabulary)
}

func TestModelRoundTrip(t *testing.T) {
	m := trainSynthetic(t)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))
	decoded, err := similarity.DecodeModel(&buf)
	require.NoError(t, err)

	orig, err := similarity.NewTrainedEstimator(m)
	require.NoError(t, err)
	loaded, err := similarity.NewTrainedEstimator(decoded)
	require.NoError(t, err)

	for _, s := range dataset.SyntheticSamples() {
		want, err := orig.Estimate(s.ItemATitle, s.ItemBTitle)
		require.NoError(t, err)
		got, err := loaded.Estimate(s.ItemATitle, s.ItemBTitle)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, m.ID, decoded.ID)
	assert.True(t, m.TrainedAt.Equal(decoded.TrainedAt))
}

func TestDecodeModelRejects(t *testing.T) {
	_, err := similarity.DecodeModel(strings.NewReader("not json"))
	assert.ErrorIs(t, err, similarity.ErrInvalidModel)

	m := trainSynthetic(t)
	m.FormatVersion = 99
	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))
	_, err = similarity.DecodeModel(&buf)
	assert.ErrorIs(t, err, similarity.ErrInvalidModel)

	m = trainSynthetic(t)
	m.FeatureNames = []string{"tfidf_similarity"}
	buf.Reset()
	require.NoError(t, m.Encode(&buf))
	_, err = similarity.DecodeModel(&buf)
	assert.ErrorIs(t, err, similarity.ErrFeatureMismatch)
}

func TestLoadTrainParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("n_estimators: 20\nlearning_rate: 0.3\n"), 0o644))

	p, err := similarity.LoadTrainParams(path)
	require.NoError(t, err)
	assert.Equal(t, 20, p.NEstimators)
	assert.Equal(t, 0.3, p.LearningRate)
	assert.Equal(t, 6, p.MaxDepth)
	assert.Equal(t, 1000, p.MaxFeatures)

	require.NoError(t, os.WriteFile(path, []byte("max_depth: 0\n"), 0o644))
	_, err = similarity.LoadTrainParams(path)
	assert.Error(t, err)

	_, err = similarity.LoadTrainParams(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
