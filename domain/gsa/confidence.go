package gsa

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gsakit/domain/core"
)

// Iteration counts below this floor are never returned; very tight
// first-stage estimates are unreliable at tiny sample sizes.
const minIterations = 10

// Default target correlations per estimator. 0.95 is the hardest Pearson
// value to estimate; 0.8 is the conventional Spearman target.
const (
	defaultThetaPearson  = 0.95
	defaultThetaSpearman = 0.8
)

// ConfidenceRecord holds every constant produced while deriving the
// iteration count for one estimator, so callers can audit the derivation.
type ConfidenceRecord struct {
	B          float64 `json:"b"`
	C          float64 `json:"c"`
	Theta      float64 `json:"theta"`
	N0         float64 `json:"n0"`
	L1         float64 `json:"l1"`
	L2         float64 `json:"l2"`
	LowerLimit float64 `json:"lower_limit"`
	UpperLimit float64 `json:"upper_limit"`
	W0         float64 `json:"w0"`
	Iterations int     `json:"iterations"`
}

// ZAlpha2 returns the two-sided standard-normal quantile for the given
// confidence level, e.g. 0.99 -> ~2.576.
func ZAlpha2(confidenceLevel float64) (float64, error) {
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return 0, core.ErrInvalidConfidence
	}
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	return norm.Quantile(0.5 + confidenceLevel/2), nil
}

// RequiredIterations computes, per estimator, the minimum sample count for
// estimating a correlation coefficient theta within intervalWidth at the
// given confidence level. theta = 0 selects each estimator's default
// target.
//
// The derivation is the two-stage approximation of Bonett & Wright (2000),
// "Sample size requirements for estimating Pearson, Kendall and Spearman
// correlations": a first-stage linear approximation n0, then a correction
// through the Fisher transform interval realized at n0. Both stages are
// required; the first stage alone under- or over-shoots for large |theta|.
// Iteration counts agree with Table 1 of the paper to within one iteration.
func RequiredIterations(theta, intervalWidth, confidenceLevel float64) (map[Method]ConfidenceRecord, error) {
	if intervalWidth <= 0 {
		return nil, core.ErrInvalidWidth
	}
	z, err := ZAlpha2(confidenceLevel)
	if err != nil {
		return nil, err
	}

	thetaPearson := theta
	if thetaPearson == 0 {
		thetaPearson = defaultThetaPearson
	}
	thetaSpearman := theta
	if thetaSpearman == 0 {
		thetaSpearman = defaultThetaSpearman
	}

	records := map[Method]ConfidenceRecord{
		Pearson:  {B: 3, C: 1, Theta: thetaPearson},
		Spearman: {B: 3, C: math.Sqrt(1 + thetaSpearman*thetaSpearman/2), Theta: thetaSpearman},
	}

	for method, rec := range records {
		b, c, th := rec.B, rec.C, rec.Theta

		// First stage approximation
		n0 := math.Round(4*c*c*math.Pow(1-th*th, 2)*math.Pow(z/intervalWidth, 2) + b)
		rec.N0 = math.Max(n0, minIterations)

		half := c * z / math.Sqrt(rec.N0-b)
		rec.L1 = math.Atanh(th) - half
		rec.L2 = math.Atanh(th) + half
		rec.LowerLimit = math.Tanh(rec.L1)
		rec.UpperLimit = math.Tanh(rec.L2)
		if rec.UpperLimit <= rec.LowerLimit {
			return nil, core.ErrDegenerateInterval
		}
		rec.W0 = rec.UpperLimit - rec.LowerLimit

		// Second stage approximation
		n := math.Round((rec.N0-b)*math.Pow(rec.W0/intervalWidth, 2) + b)
		rec.Iterations = int(math.Max(n, minIterations))

		records[method] = rec
	}
	return records, nil
}
