package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoostParams() boostParams {
	return DefaultTrainParams().boost()
}

// separable returns 16 one-feature rows labeled 1 from x = 8 upwards.
func separable() ([][]float64, []float64) {
	x := make([][]float64, 16)
	y := make([]float64, 16)
	for i := range x {
		x[i] = []float64{float64(i)}
		if i >= 8 {
			y[i] = 1
		}
	}
	return x, y
}

func TestFitBoosterSeparable(t *testing.T) {
	x, y := separable()

	b := fitBooster(x, y, nil, nil, testBoostParams())
	require.Len(t, b.Trees, 100)
	require.NoError(t, b.validate(1))

	assert.Less(t, b.Probability([]float64{0}), 0.5)
	assert.Less(t, b.Probability([]float64{7}), 0.5)
	assert.Greater(t, b.Probability([]float64{8}), 0.5)
	assert.Greater(t, b.Probability([]float64{15}), 0.5)

	root := b.Trees[0].Nodes[0]
	assert.False(t, root.leaf())
	assert.Equal(t, 0, root.Feature)
	assert.Equal(t, 7.5, root.Threshold)
}

func TestFitBoosterConstantFeatureIsLeaf(t *testing.T) {
	x := [][]float64{{1}, {1}, {1}}
	y := []float64{1, 1, 0}

	b := fitBooster(x, y, nil, nil, testBoostParams())
	for _, tree := range b.Trees {
		require.Len(t, tree.Nodes, 1)
		assert.True(t, tree.Nodes[0].leaf())
	}
	// Leaves move the margin toward the majority label.
	assert.Greater(t, b.Probability([]float64{1}), 0.5)
}

func TestFitBoosterEarlyStopping(t *testing.T) {
	x, y := separable()
	// Validation labels contradict training, so the first round is best.
	vx := [][]float64{{0}, {15}}
	vy := []float64{1, 0}

	b := fitBooster(x, y, vx, vy, testBoostParams())
	assert.Len(t, b.Trees, 1)
}

func TestBoosterValidate(t *testing.T) {
	b := &Booster{}
	assert.ErrorIs(t, b.validate(1), ErrInvalidModel)

	b = &Booster{Trees: []Tree{{Nodes: []TreeNode{{Feature: 3, Left: 1, Right: 2}, {Left: -1}, {Left: -1}}}}}
	assert.ErrorIs(t, b.validate(2), ErrInvalidModel)

	b = &Booster{Trees: []Tree{{Nodes: []TreeNode{{Feature: 0, Left: 0, Right: 1}, {Left: -1}}}}}
	assert.ErrorIs(t, b.validate(1), ErrInvalidModel)
}
