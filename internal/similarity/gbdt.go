package similarity

import (
	"fmt"
	"math"
	"sort"
)

// TreeNode is one node of a regression tree stored in a flat slice.
// Leaves have Left == -1 and carry Value, already scaled by the learning rate.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

func (n TreeNode) leaf() bool { return n.Left < 0 }

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (t *Tree) predict(x []float64) float64 {
	i := 0
	for !t.Nodes[i].leaf() {
		n := t.Nodes[i]
		if x[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// Booster is a binary logistic gradient-boosted tree ensemble.
type Booster struct {
	// BaseMargin is the log-odds every prediction starts from.
	BaseMargin float64 `json:"base_margin"`
	Trees      []Tree  `json:"trees"`
}

// Probability returns P(similar | x).
func (b *Booster) Probability(x []float64) float64 {
	m := b.BaseMargin
	for i := range b.Trees {
		m += b.Trees[i].predict(x)
	}
	return sigmoid(m)
}

func (b *Booster) validate(width int) error {
	if len(b.Trees) == 0 {
		return fmt.Errorf("%w: booster has no trees", ErrInvalidModel)
	}
	if math.IsNaN(b.BaseMargin) || math.IsInf(b.BaseMargin, 0) {
		return fmt.Errorf("%w: base margin is not finite", ErrInvalidModel)
	}
	for ti, t := range b.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d is empty", ErrInvalidModel, ti)
		}
		for ni, n := range t.Nodes {
			if n.leaf() {
				if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
					return fmt.Errorf("%w: tree %d node %d has a non-finite value", ErrInvalidModel, ti, ni)
				}
				continue
			}
			// Children always follow their parent.
			if n.Left <= ni || n.Right <= ni || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return fmt.Errorf("%w: tree %d node %d has bad children", ErrInvalidModel, ti, ni)
			}
			if n.Feature < 0 || n.Feature >= width {
				return fmt.Errorf("%w: tree %d node %d splits on feature %d", ErrInvalidModel, ti, ni, n.Feature)
			}
		}
	}
	return nil
}

func sigmoid(m float64) float64 {
	return 1 / (1 + math.Exp(-m))
}

// boostParams is the subset of TrainParams the tree learner needs.
type boostParams struct {
	rounds         int
	maxDepth       int
	learningRate   float64
	lambda         float64
	minChildWeight float64
	earlyStopping  int
}

type treeBuilder struct {
	x      [][]float64
	g, h   []float64
	params boostParams
	nodes  []TreeNode
}

// fitBooster trains on scaled rows x with 0/1 labels y. When validation rows
// are given, training stops after earlyStopping rounds without a logloss
// improvement and the ensemble is cut back to the best round.
func fitBooster(x [][]float64, y []float64, vx [][]float64, vy []float64, p boostParams) *Booster {
	b := &Booster{BaseMargin: 0}
	n := len(x)
	margin := make([]float64, n)
	vmargin := make([]float64, len(vx))
	g := make([]float64, n)
	h := make([]float64, n)

	bestRound, bestLoss := -1, math.Inf(1)
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	for round := 0; round < p.rounds; round++ {
		for i := range x {
			prob := sigmoid(margin[i])
			g[i] = prob - y[i]
			h[i] = math.Max(prob*(1-prob), 1e-16)
		}
		tb := &treeBuilder{x: x, g: g, h: h, params: p}
		tb.build(append([]int(nil), all...), 0)
		tree := Tree{Nodes: tb.nodes}
		b.Trees = append(b.Trees, tree)

		for i := range x {
			margin[i] += tree.predict(x[i])
		}
		if len(vx) == 0 {
			continue
		}
		for i := range vx {
			vmargin[i] += tree.predict(vx[i])
		}
		loss := logLoss(vmargin, vy)
		if loss < bestLoss-1e-12 {
			bestLoss, bestRound = loss, round
		} else if p.earlyStopping > 0 && round-bestRound >= p.earlyStopping {
			break
		}
	}
	if len(vx) > 0 && bestRound >= 0 {
		b.Trees = b.Trees[:bestRound+1]
	}
	return b
}

func (tb *treeBuilder) build(idx []int, depth int) int {
	var G, H float64
	for _, i := range idx {
		G += tb.g[i]
		H += tb.h[i]
	}
	self := len(tb.nodes)
	tb.nodes = append(tb.nodes, TreeNode{Left: -1, Right: -1})

	feature, threshold, ok := -1, 0.0, false
	if depth < tb.params.maxDepth && len(idx) >= 2 {
		feature, threshold, ok = tb.bestSplit(idx, G, H)
	}
	if !ok {
		tb.nodes[self].Value = -G / (H + tb.params.lambda) * tb.params.learningRate
		return self
	}

	var left, right []int
	for _, i := range idx {
		if tb.x[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	l := tb.build(left, depth+1)
	r := tb.build(right, depth+1)
	tb.nodes[self] = TreeNode{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return self
}

// bestSplit runs the exact greedy search over every feature. Ties keep the
// lowest feature index.
func (tb *treeBuilder) bestSplit(idx []int, G, H float64) (int, float64, bool) {
	lambda := tb.params.lambda
	parent := G * G / (H + lambda)
	bestGain, bestFeature, bestThreshold := 0.0, -1, 0.0

	order := make([]int, len(idx))
	width := len(tb.x[idx[0]])
	for f := 0; f < width; f++ {
		copy(order, idx)
		sort.SliceStable(order, func(a, b int) bool { return tb.x[order[a]][f] < tb.x[order[b]][f] })

		var GL, HL float64
		for k := 0; k+1 < len(order); k++ {
			GL += tb.g[order[k]]
			HL += tb.h[order[k]]
			cur, next := tb.x[order[k]][f], tb.x[order[k+1]][f]
			if cur == next {
				continue
			}
			GR, HR := G-GL, H-HL
			if HL < tb.params.minChildWeight || HR < tb.params.minChildWeight {
				continue
			}
			gain := 0.5 * (GL*GL/(HL+lambda) + GR*GR/(HR+lambda) - parent)
			if gain > bestGain+1e-12 {
				bestGain, bestFeature, bestThreshold = gain, f, (cur+next)/2
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func logLoss(margin, y []float64) float64 {
	const eps = 1e-15
	var sum float64
	for i, m := range margin {
		p := math.Min(math.Max(sigmoid(m), eps), 1-eps)
		sum -= y[i]*math.Log(p) + (1-y[i])*math.Log(1-p)
	}
	return sum / float64(len(margin))
}
