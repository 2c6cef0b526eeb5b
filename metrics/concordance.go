// Package metrics provides evaluation statistics for claim-frequency models.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/insurekit/claimfreq/pkg/errors"
)

// SomersD computes the Gini concordance statistic Dxy between a ranked
// prediction and the actual outcome.
//
// Over all pairs of observations with differing actual outcomes, Dxy is
// 2*P(concordant) - 1 where a pair is concordant when the higher-predicted
// observation has the higher actual outcome and prediction ties count half.
// Pairs tied on the actual outcome are excluded. The result lies in [-1, 1].
//
// When no comparable pair exists (all actual outcomes tied, or fewer than two
// observations) the statistic is undefined; an UndefinedMetricWarning is
// raised and 0 is returned.
func SomersD(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("SomersD", "nil input vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("SomersD", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("SomersD", n, yPred.Len(), 0)
	}

	// Comparable pairs: all pairs minus those tied on the actual outcome.
	actualTies := make(map[float64]int, n)
	for i := 0; i < n; i++ {
		actualTies[yTrue.AtVec(i)]++
	}
	pairs := int64(n) * int64(n-1) / 2
	for _, c := range actualTies {
		pairs -= int64(c) * int64(c-1) / 2
	}
	if pairs == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("somers_d", "no pairs with differing actual outcomes", 0))
		return 0, nil
	}

	// Rank-compress the actual outcomes for the Fenwick tree.
	ranks := denseRanks(vecSlice(yTrue))

	// Sweep observations in increasing prediction order. For each block of
	// tied predictions, pairs against earlier blocks are concordant when the
	// actual rank is also smaller, discordant when larger; pairs inside a
	// block are prediction ties and contribute neither.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return yPred.AtVec(order[a]) < yPred.AtVec(order[b])
	})

	tree := newFenwick(n)
	var concordant, discordant int64
	for start := 0; start < n; {
		end := start
		for end < n && yPred.AtVec(order[end]) == yPred.AtVec(order[start]) {
			end++
		}
		for k := start; k < end; k++ {
			r := ranks[order[k]]
			below := tree.prefixSum(r - 1)
			equal := tree.prefixSum(r) - below
			concordant += below
			discordant += int64(start) - below - equal
		}
		for k := start; k < end; k++ {
			tree.add(ranks[order[k]], 1)
		}
		start = end
	}

	return float64(concordant-discordant) / float64(pairs), nil
}

// denseRanks maps values to their 1-based dense rank, equal values sharing a
// rank.
func denseRanks(values []float64) []int {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	rank := make(map[float64]int, len(values))
	r := 0
	for _, v := range sorted {
		if _, ok := rank[v]; !ok {
			r++
			rank[v] = r
		}
	}
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = rank[v]
	}
	return out
}

func vecSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// fenwick is a 1-based binary indexed tree over rank counts.
type fenwick struct {
	tree []int64
}

func newFenwick(n int) *fenwick {
	return &fenwick{tree: make([]int64, n+1)}
}

func (f *fenwick) add(i int, delta int64) {
	for ; i < len(f.tree); i += i & (-i) {
		f.tree[i] += delta
	}
}

func (f *fenwick) prefixSum(i int) int64 {
	var s int64
	if i >= len(f.tree) {
		i = len(f.tree) - 1
	}
	for ; i > 0; i -= i & (-i) {
		s += f.tree[i]
	}
	return s
}
