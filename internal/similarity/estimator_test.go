package similarity_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"item-pairs/internal/dataset"
	"item-pairs/internal/similarity"
)

const (
	galaxy       = "Telefono Samsung Galaxy"
	galaxyMobile = "Telefono celular Samsung Galaxy"
	laptop       = "Laptop HP 15 pulgadas"
)

func TestFallbackEstimator(t *testing.T) {
	var fb similarity.FallbackEstimator

	res := fb.Estimate(galaxy, galaxyMobile)
	assert.InDelta(t, 0.5194, res.SimilarityScore, 1e-4)
	assert.False(t, res.AreSimilar)
	assert.False(t, res.AreEqual)
	assert.Equal(t, 0.8, res.Confidence)
	assert.Equal(t, similarity.StrategyFallback, res.Strategy)

	res = fb.Estimate(galaxy, laptop)
	assert.Equal(t, 0.0, res.SimilarityScore)
	assert.False(t, res.AreSimilar)

	res = fb.Estimate("a", "b")
	assert.Equal(t, 0.0, res.SimilarityScore)

	res = fb.Estimate("  Telefono movil ", "telefono MOVIL")
	assert.Equal(t, 1.0, res.SimilarityScore)
	assert.True(t, res.AreEqual)
	assert.True(t, res.AreSimilar)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestTrainedEstimatorScenarios(t *testing.T) {
	te, err := similarity.NewTrainedEstimator(trainSynthetic(t))
	require.NoError(t, err)

	res, err := te.Estimate(galaxy, galaxyMobile)
	require.NoError(t, err)
	assert.InDelta(t, 0.86, res.SimilarityScore, 0.05)
	assert.True(t, res.AreSimilar)
	assert.False(t, res.AreEqual)
	assert.Equal(t, similarity.StrategyTrained, res.Strategy)
	assert.InDelta(t, res.SimilarityScore, res.Confidence, 1e-12)

	res, err = te.Estimate(galaxy, laptop)
	require.NoError(t, err)
	assert.InDelta(t, 0.14, res.SimilarityScore, 0.05)
	assert.False(t, res.AreSimilar)
	assert.InDelta(t, 1-res.SimilarityScore, res.Confidence, 1e-12)

	res, err = te.Estimate("Telefono movil", "  telefono MOVIL")
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.SimilarityScore)
	assert.True(t, res.AreEqual)
	assert.True(t, res.AreSimilar)
}

func TestTrainedEstimatorSymmetricRange(t *testing.T) {
	te, err := similarity.NewTrainedEstimator(trainSynthetic(t))
	require.NoError(t, err)

	pairs := [][2]string{{galaxy, galaxyMobile}, {"", "x"}, {"Mouse gamer", "Teclado gamer"}, {"aaa bbb", "ccc"}}
	for _, p := range pairs {
		ab, err := te.Estimate(p[0], p[1])
		require.NoError(t, err)
		ba, err := te.Estimate(p[1], p[0])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ab.SimilarityScore, 0.0)
		assert.LessOrEqual(t, ab.SimilarityScore, 1.0)
		assert.InDelta(t, ab.SimilarityScore, ba.SimilarityScore, 1e-9)
	}
}

func TestNewTrainedEstimatorRejectsInvalid(t *testing.T) {
	_, err := similarity.NewTrainedEstimator(nil)
	assert.ErrorIs(t, err, similarity.ErrInvalidModel)

	m := trainSynthetic(t)
	m.Booster.Trees = nil
	_, err = similarity.NewTrainedEstimator(m)
	assert.ErrorIs(t, err, similarity.ErrInvalidModel)
}

func TestDetectorStrategySelection(t *testing.T) {
	d := similarity.NewDetector(zap.NewNop())

	assert.Equal(t, similarity.StrategyFallback, d.Estimate(galaxy, galaxyMobile).Strategy)
	assert.False(t, d.Status().Trained)

	m := trainSynthetic(t)
	require.NoError(t, d.Swap(m))
	res := d.Estimate(galaxy, galaxyMobile)
	assert.Equal(t, similarity.StrategyTrained, res.Strategy)
	assert.True(t, res.AreSimilar)

	st := d.Status()
	assert.True(t, st.Trained)
	assert.Equal(t, m.ID, st.ModelID)
	assert.Equal(t, 67, st.VocabularySize)
	assert.Equal(t, 100, st.Trees)

	d.Clear()
	assert.Equal(t, similarity.StrategyFallback, d.Estimate(galaxy, galaxyMobile).Strategy)
}

func TestDetectorSwapKeepsPreviousOnInvalid(t *testing.T) {
	d := similarity.NewDetector(zap.NewNop())
	m := trainSynthetic(t)
	require.NoError(t, d.Swap(m))

	broken := trainSynthetic(t)
	broken.Scaler = nil
	assert.ErrorIs(t, d.Swap(broken), similarity.ErrInvalidModel)
	assert.Equal(t, m.ID, d.Status().ModelID)
}

func TestDetectorDegradesOnScoringError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := similarity.NewDetector(zap.New(core))

	m := trainSynthetic(t)
	require.NoError(t, d.Swap(m))
	// Corrupt the published model in place; scoring must fail and fall back.
	m.Scaler.Mean = m.Scaler.Mean[:2]

	res := d.Estimate(galaxy, galaxyMobile)
	assert.Equal(t, similarity.StrategyFallback, res.Strategy)
	assert.InDelta(t, 0.5194, res.SimilarityScore, 1e-4)
	assert.Equal(t, 1, logs.FilterMessage("Trained estimator failed, using fallback").Len())
}

func TestDetectorRecoversPanics(t *testing.T) {
	d := similarity.NewDetector(zap.NewNop())
	m := trainSynthetic(t)
	require.NoError(t, d.Swap(m))
	root := &m.Booster.Trees[0].Nodes[0]
	root.Left, root.Right = 1<<20, 1<<20

	var res similarity.Result
	assert.NotPanics(t, func() { res = d.Estimate(galaxy, laptop) })
	assert.Equal(t, similarity.StrategyFallback, res.Strategy)
}

func TestDetectorConcurrentSwap(t *testing.T) {
	d := similarity.NewDetector(zap.NewNop())
	m := trainSynthetic(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if i == 0 && j%10 == 0 {
					assert.NoError(t, d.Swap(m))
				}
				res := d.Estimate(galaxy, laptop)
				assert.False(t, res.AreSimilar)
			}
		}(i)
	}
	wg.Wait()
}

func TestEvaluate(t *testing.T) {
	d := similarity.NewDetector(zap.NewNop())
	require.NoError(t, d.Swap(trainSynthetic(t)))

	ev := similarity.Evaluate(d, dataset.SyntheticSamples())
	assert.Equal(t, 16, ev.Total)
	assert.Equal(t, ev.TruePositive+ev.TrueNegative, ev.Correct)
	assert.Equal(t, 16, ev.TruePositive+ev.FalsePositive+ev.TrueNegative+ev.FalseNegative)
	assert.GreaterOrEqual(t, ev.Accuracy, 0.9)

	assert.Equal(t, similarity.Evaluation{}, similarity.Evaluate(d, nil))
}
