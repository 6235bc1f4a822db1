package mindrisk

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// TreeNode is one node of a fitted decision tree. Leaves carry Value; split
// nodes send rows with x[Feature] <= Threshold to Left.
type TreeNode struct {
	Leaf      bool
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     []float64
}

// DecisionTree is a binary tree stored as a flat node slice rooted at 0.
type DecisionTree struct {
	Nodes []TreeNode
}

// Apply returns the leaf payload reached by x.
func (t *DecisionTree) Apply(x mat.Vector) []float64 {
	i := 0
	for {
		node := &t.Nodes[i]
		if node.Leaf {
			return node.Value
		}
		if x.AtVec(node.Feature) <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *DecisionTree) Depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		node := t.Nodes[i]
		if node.Leaf {
			return 0
		}
		l, r := walk(node.Left), walk(node.Right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	if len(t.Nodes) == 0 {
		return 0
	}
	return walk(0)
}

// splitCriterion scores candidate splits of one node. reset loads the node's
// rows with everything on the right; move shifts one row to the left.
type splitCriterion interface {
	reset(rows []int)
	move(row int)
	impurity() float64
	childImpurity() float64
}

// giniCriterion measures class impurity for classification trees.
type giniCriterion struct {
	targets     []int
	total, left []float64
	nTotal      float64
	nLeft       float64
}

func newGiniCriterion(targets []int, k int) *giniCriterion {
	return &giniCriterion{
		targets: targets,
		total:   make([]float64, k),
		left:    make([]float64, k),
	}
}

func (g *giniCriterion) reset(rows []int) {
	for c := range g.total {
		g.total[c], g.left[c] = 0, 0
	}
	for _, r := range rows {
		g.total[g.targets[r]]++
	}
	g.nTotal, g.nLeft = float64(len(rows)), 0
}

func (g *giniCriterion) move(row int) {
	g.left[g.targets[row]]++
	g.nLeft++
}

func gini(counts []float64, n float64, minus []float64) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for c, v := range counts {
		if minus != nil {
			v -= minus[c]
		}
		p := v / n
		sum += p * p
	}
	return 1 - sum
}

func (g *giniCriterion) impurity() float64 {
	return gini(g.total, g.nTotal, nil)
}

func (g *giniCriterion) childImpurity() float64 {
	nRight := g.nTotal - g.nLeft
	return (g.nLeft*gini(g.left, g.nLeft, nil) + nRight*gini(g.total, nRight, g.left)) / g.nTotal
}

// mseCriterion measures variance for regression trees.
type mseCriterion struct {
	y                []float64
	sum, sq, n       float64
	sumL, sqL, nLeft float64
}

func (m *mseCriterion) reset(rows []int) {
	m.sum, m.sq, m.n = 0, 0, float64(len(rows))
	m.sumL, m.sqL, m.nLeft = 0, 0, 0
	for _, r := range rows {
		m.sum += m.y[r]
		m.sq += m.y[r] * m.y[r]
	}
}

func (m *mseCriterion) move(row int) {
	m.sumL += m.y[row]
	m.sqL += m.y[row] * m.y[row]
	m.nLeft++
}

func variance(sum, sq, n float64) float64 {
	if n == 0 {
		return 0
	}
	mean := sum / n
	return sq/n - mean*mean
}

func (m *mseCriterion) impurity() float64 {
	return variance(m.sum, m.sq, m.n)
}

func (m *mseCriterion) childImpurity() float64 {
	nRight := m.n - m.nLeft
	l := variance(m.sumL, m.sqL, m.nLeft)
	r := variance(m.sum-m.sumL, m.sq-m.sqL, nRight)
	return (m.nLeft*l + nRight*r) / m.n
}

// treeGrower grows one CART tree depth-first.
type treeGrower struct {
	cols            [][]float64 // column-major training matrix
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int // features examined per split; 0 means all
	rng             *rand.Rand
	criterion       splitCriterion
	leaf            func(rows []int) []float64
}

const splitEpsilon = 1e-12

func (g *treeGrower) grow(rows []int) *DecisionTree {
	tree := &DecisionTree{}
	g.build(tree, rows, 0)
	return tree
}

func (g *treeGrower) build(tree *DecisionTree, rows []int, depth int) int {
	idx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, TreeNode{})

	g.criterion.reset(rows)
	parent := g.criterion.impurity()
	maxDepth := g.maxDepth
	if maxDepth <= 0 {
		maxDepth = math.MaxInt32
	}
	if depth >= maxDepth || len(rows) < g.minSamplesSplit ||
		len(rows) < 2*g.minSamplesLeaf || parent <= splitEpsilon {
		tree.Nodes[idx] = TreeNode{Leaf: true, Value: g.leaf(rows)}
		return idx
	}

	feature, threshold, ok := g.bestSplit(rows, parent)
	if !ok {
		tree.Nodes[idx] = TreeNode{Leaf: true, Value: g.leaf(rows)}
		return idx
	}

	var left, right []int
	for _, r := range rows {
		if g.cols[feature][r] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	l := g.build(tree, left, depth+1)
	r := g.build(tree, right, depth+1)
	tree.Nodes[idx] = TreeNode{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return idx
}

// bestSplit visits features in random order until maxFeatures non-constant
// ones have been scored, and returns the split with the lowest weighted child
// impurity that improves on the parent.
func (g *treeGrower) bestSplit(rows []int, parent float64) (int, float64, bool) {
	nFeatures := len(g.cols)
	limit := g.maxFeatures
	if limit <= 0 || limit > nFeatures {
		limit = nFeatures
	}

	bestScore := parent - splitEpsilon
	bestFeature, bestThreshold, found := -1, 0.0, false
	sorted := make([]int, len(rows))
	visited := 0

	for _, f := range g.rng.Perm(nFeatures) {
		if visited >= limit {
			break
		}
		col := g.cols[f]
		lo, hi := col[rows[0]], col[rows[0]]
		for _, r := range rows[1:] {
			lo = math.Min(lo, col[r])
			hi = math.Max(hi, col[r])
		}
		if hi-lo <= splitEpsilon {
			continue
		}
		visited++

		copy(sorted, rows)
		sort.SliceStable(sorted, func(a, b int) bool { return col[sorted[a]] < col[sorted[b]] })

		g.criterion.reset(sorted)
		for pos := 0; pos < len(sorted)-1; pos++ {
			g.criterion.move(sorted[pos])
			v, next := col[sorted[pos]], col[sorted[pos+1]]
			if next-v <= splitEpsilon {
				continue
			}
			nLeft := pos + 1
			if nLeft < g.minSamplesLeaf || len(sorted)-nLeft < g.minSamplesLeaf {
				continue
			}
			if score := g.criterion.childImpurity(); score < bestScore {
				bestScore = score
				bestFeature, bestThreshold, found = f, (v+next)/2, true
			}
		}
	}
	return bestFeature, bestThreshold, found
}
