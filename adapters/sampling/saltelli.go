// Package sampling generates sampling matrices in the standard-uniform
// cube. The Saltelli design produces the interleaved A/AB/B row layout the
// Sobol estimators deinterleave.
package sampling

import (
	"math/rand"

	"gsakit/domain/core"
	"gsakit/domain/gsa"
)

// Saltelli generates the radial Saltelli design: per iteration it draws
// two independent uniform points a and b and emits numParams+2 rows in
// block order a, ab_1..ab_numParams, b, where ab_j is a with its j-th
// coordinate taken from b.
type Saltelli struct {
	rng *rand.Rand
}

// NewSaltelli creates a Saltelli sampler with a fixed seed for
// reproducible designs.
func NewSaltelli(seed int64) *Saltelli {
	return &Saltelli{rng: rand.New(rand.NewSource(seed))}
}

// Sample returns iterations*(numParams+2) rows of numParams columns in
// interleaved block order.
func (s *Saltelli) Sample(iterations, numParams int) ([][]float64, error) {
	if numParams <= 0 {
		return nil, core.ErrInvalidParams
	}
	if iterations <= 0 {
		return nil, core.ErrInvalidArgument
	}

	period := gsa.BlockPeriod(numParams)
	out := make([][]float64, 0, iterations*period)
	a := make([]float64, numParams)
	b := make([]float64, numParams)
	for i := 0; i < iterations; i++ {
		for j := range a {
			a[j] = s.rng.Float64()
			b[j] = s.rng.Float64()
		}
		out = append(out, clone(a))
		for j := 0; j < numParams; j++ {
			ab := clone(a)
			ab[j] = b[j]
			out = append(out, ab)
		}
		out = append(out, clone(b))
	}
	return out, nil
}

// Random generates plain independent standard-uniform samples, one row per
// iteration. Used by the correlation-coefficient path.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a uniform sampler with a fixed seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Sample returns iterations rows of numParams independent uniform draws.
func (r *Random) Sample(iterations, numParams int) ([][]float64, error) {
	if numParams <= 0 {
		return nil, core.ErrInvalidParams
	}
	if iterations <= 0 {
		return nil, core.ErrInvalidArgument
	}

	out := make([][]float64, iterations)
	for i := range out {
		row := make([]float64, numParams)
		for j := range row {
			row[j] = r.rng.Float64()
		}
		out[i] = row
	}
	return out, nil
}

func clone(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
