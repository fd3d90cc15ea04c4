package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"gsakit/domain/core"
	"gsakit/domain/gsa"
)

// SeparateOutputValues deinterleaves a model output vector produced from a
// Saltelli design into its A, B and per-parameter AB blocks. Within each
// period of gsa.BlockPeriod(numParams) rows, position 0 belongs to A,
// the last position to B, and position j (1..numParams) to the j-th AB
// matrix. AB is returned column-major: AB[j] holds the draws for
// parameter j.
//
// The output length must be an exact multiple of the block period. Getting
// the period wrong silently produces plausible-looking but wrong indices,
// so a mismatch fails loudly instead of being truncated away.
func SeparateOutputValues(y []float64, numParams int) (a, b []float64, ab [][]float64, err error) {
	if numParams <= 0 {
		return nil, nil, nil, core.ErrInvalidParams
	}
	period := gsa.BlockPeriod(numParams)
	if len(y) == 0 || len(y)%period != 0 {
		return nil, nil, nil, fmt.Errorf("%w: len(y)=%d, period=%d", core.ErrBlockPeriod, len(y), period)
	}

	iterations := len(y) / period
	a = make([]float64, iterations)
	b = make([]float64, iterations)
	ab = make([][]float64, numParams)
	for j := range ab {
		ab[j] = make([]float64, iterations)
	}

	for i := 0; i < iterations; i++ {
		base := i * period
		a[i] = y[base]
		b[i] = y[base+period-1]
		for j := 0; j < numParams; j++ {
			ab[j][i] = y[base+j+1]
		}
	}
	return a, b, ab, nil
}

// SobolFirstOrder estimates the first-order index for each parameter:
// mean(B*(AB-A)) normalized by the pooled variance of A and B. The
// normalization by sample variance is a deliberate departure from the
// un-normalized Saltelli 2010 estimator. Indices are not clamped; small
// negative values from finite-sample noise are expected.
func SobolFirstOrder(a []float64, ab [][]float64, b []float64) []float64 {
	variance := pooledVariance(a, b)
	iterations := float64(len(a))
	out := make([]float64, len(ab))
	for j, abCol := range ab {
		var sum float64
		for i := range a {
			sum += b[i] * (abCol[i] - a[i])
		}
		out[j] = sum / iterations / variance
	}
	return out
}

// SobolTotalOrder estimates the total-order index for each parameter:
// 0.5*mean((A-AB)^2) normalized by the pooled variance of A and B.
// Non-negative by construction but not clamped above 1.
func SobolTotalOrder(a []float64, ab [][]float64, b []float64) []float64 {
	variance := pooledVariance(a, b)
	iterations := float64(len(a))
	out := make([]float64, len(ab))
	for j, abCol := range ab {
		var sum float64
		for i := range a {
			d := a[i] - abCol[i]
			sum += d * d
		}
		out[j] = 0.5 * sum / iterations / variance
	}
	return out
}

// pooledVariance is the population variance of A and B concatenated, the
// shared normalizer for both estimators.
func pooledVariance(a, b []float64) float64 {
	pooled := make([]float64, 0, len(a)+len(b))
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)
	variance, _ := stats.PopulationVariance(pooled)
	return variance
}
