package app

import (
	"context"

	"gsakit/domain/core"
	"gsakit/domain/gsa"
	"gsakit/internal"
	"gsakit/internal/analysis"
	"gsakit/internal/config"
	"gsakit/ports"
)

// AnalysisConfig is the immutable per-call configuration bundle. The engine
// only reads it; derived values are returned in a separate result, never
// written back.
type AnalysisConfig struct {
	NumParams int
	Workers   int
	Samples   ports.SampleSourcePort
	Output    ports.OutputSourcePort
}

// NewAnalysisConfig binds the data sources for one call, taking the worker
// count from the environment-backed settings.
func NewAnalysisConfig(settings *config.Config, numParams int, samples ports.SampleSourcePort, output ports.OutputSourcePort) AnalysisConfig {
	return AnalysisConfig{
		NumParams: numParams,
		Workers:   settings.Analysis.Workers,
		Samples:   samples,
		Output:    output,
	}
}

// Validate checks the fields the correlation path needs, before any
// computation starts.
func (c AnalysisConfig) Validate() error {
	if c.NumParams <= 0 {
		return core.ErrInvalidParams
	}
	if c.Workers <= 0 {
		return core.NewMissingConfigError("worker count")
	}
	if c.Samples == nil {
		return core.NewMissingConfigError("sampling-matrix source")
	}
	if c.Output == nil {
		return core.NewMissingConfigError("output-vector source")
	}
	return nil
}

// AnalysisService computes sensitivity indices from an AnalysisConfig.
type AnalysisService struct {
	log *internal.Logger
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(log *internal.Logger) *AnalysisService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &AnalysisService{log: log}
}

// CorrelationCoefficients estimates the Pearson and Spearman correlation
// between every sampling-matrix column and the output vector, running the
// parallel driver once per method. selectedRows may be a strict subset of
// the available rows for convergence and sub-sampling studies; nil selects
// all rows.
func (s *AnalysisService) CorrelationCoefficients(ctx context.Context, cfg AnalysisConfig, selectedRows []int) (gsa.IndexSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	y, err := cfg.Output.Values()
	if err != nil {
		return nil, err
	}

	s.log.Debug("correlation run: %d params, %d workers, %d rows", cfg.NumParams, cfg.Workers, len(y))

	result := gsa.IndexSet{}
	for _, method := range []gsa.Method{gsa.Pearson, gsa.Spearman} {
		values, err := analysis.CorrelateParallel(ctx, cfg.Samples, y, cfg.NumParams, cfg.Workers, method, selectedRows)
		if err != nil {
			return nil, err
		}
		result[method.String()] = values
	}
	return result, nil
}

// SobolIndices estimates first-order and total-order Sobol indices from an
// output vector carrying the interleaved Saltelli block structure. High
// first-order values mark important parameters; low total-order values
// mark parameters safe to fix. Confidence intervals are not computed
// (reserved).
func (s *AnalysisService) SobolIndices(ctx context.Context, cfg AnalysisConfig) (gsa.IndexSet, error) {
	if cfg.NumParams <= 0 {
		return nil, core.ErrInvalidParams
	}
	if cfg.Output == nil {
		return nil, core.NewMissingConfigError("output-vector source")
	}

	y, err := cfg.Output.Values()
	if err != nil {
		return nil, err
	}

	a, b, ab, err := analysis.SeparateOutputValues(y, cfg.NumParams)
	if err != nil {
		return nil, err
	}

	s.log.Debug("sobol run: %d params, %d iterations per block", cfg.NumParams, len(a))

	return gsa.IndexSet{
		gsa.SobolFirstOrder.String(): analysis.SobolFirstOrder(a, ab, b),
		gsa.SobolTotalOrder.String(): analysis.SobolTotalOrder(a, ab, b),
	}, nil
}

// Interpreter selects which index family an analysis computes.
type Interpreter string

const (
	InterpreterCorrelation Interpreter = "correlation_coefficients"
	InterpreterSobol       Interpreter = "sobol_indices"
)

// Iterations-per-parameter rule of thumb for methods without a
// statistically derived sample size.
const heuristicIterationsPerParam = 10

// DefaultIterations suggests a Monte Carlo iteration count for the given
// interpreter. For correlation coefficients the count comes from the
// Bonett-Wright derivation (the larger of the Pearson and Spearman
// requirements at the given confidence level and width). For everything
// else it is numParams*10 - a documented heuristic, not a derived optimum.
func DefaultIterations(interp Interpreter, numParams int, intervalWidth, confidenceLevel float64) (int, error) {
	if numParams <= 0 {
		return 0, core.ErrInvalidParams
	}
	if interp == InterpreterCorrelation {
		records, err := gsa.RequiredIterations(0, intervalWidth, confidenceLevel)
		if err != nil {
			return 0, err
		}
		max := 0
		for _, rec := range records {
			if rec.Iterations > max {
				max = rec.Iterations
			}
		}
		return max, nil
	}
	return numParams * heuristicIterationsPerParam, nil
}
