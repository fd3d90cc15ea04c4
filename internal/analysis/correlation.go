package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// pearsonChunk computes the Pearson correlation between each column of the
// chunk and y. Constant columns produce NaN coefficients; those are mapped
// to 0 rather than propagated.
func pearsonChunk(cols [][]float64, y []float64) []float64 {
	out := make([]float64, len(cols))
	for i, col := range cols {
		r := stat.Correlation(col, y, nil)
		if math.IsNaN(r) {
			r = 0
		}
		out[i] = r
	}
	return out
}

// spearmanChunk computes the rank correlation between each column of the
// chunk and y. Zero-variance columns are short-circuited to 0: their rank
// correlation is undefined and the rank transform would only manufacture a
// NaN. Results land at the position of their original column.
func spearmanChunk(cols [][]float64, y []float64) []float64 {
	out := make([]float64, len(cols))
	yRanks := computeRanks(y)
	for i, col := range cols {
		variance, _ := stats.PopulationVariance(col)
		if variance == 0 {
			continue
		}
		r := stat.Correlation(computeRanks(col), yRanks, nil)
		if math.IsNaN(r) {
			r = 0
		}
		out[i] = r
	}
	return out
}

// kendallColumns computes Kendall's tau between each column and y, one
// column at a time. Alternative estimator; not on the default facade path.
func kendallColumns(cols [][]float64, y []float64) []float64 {
	out := make([]float64, len(cols))
	for i, col := range cols {
		tau := stat.Kendall(col, y, nil)
		if math.IsNaN(tau) {
			tau = 0
		}
		out[i] = tau
	}
	return out
}

// computeRanks converts values to ranks, averaging over tie groups.
func computeRanks(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return []float64{}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return data[idx[a]] < data[idx[b]]
	})

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && data[idx[j]] == data[idx[i]] {
			j++
		}
		avgRank := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			ranks[idx[k]] = avgRank
		}
		i = j
	}
	return ranks
}
