package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gsakit/domain/core"
	"gsakit/domain/gsa"
	"gsakit/ports"
)

// columnRange is one worker's contiguous slice of the parameter space.
type columnRange struct {
	start, end int
}

// correlateChunks applies the method's chunk estimator across consecutive
// column chunks of one worker's range, concatenating sub-results in column
// order. This is the unit of work dispatched to a single worker.
func correlateChunks(cols [][]float64, y []float64, method gsa.Method) []float64 {
	numParams := len(cols)
	chunkSize := method.ChunkSize(numParams)
	out := make([]float64, 0, numParams)
	for start := 0; start < numParams; start += chunkSize {
		end := start + chunkSize
		if end > numParams {
			end = numParams
		}
		out = append(out, correlateChunk(cols[start:end], y, method)...)
	}
	return out
}

func correlateChunk(cols [][]float64, y []float64, method gsa.Method) []float64 {
	switch method {
	case gsa.Pearson:
		return pearsonChunk(cols, y)
	case gsa.Spearman:
		return spearmanChunk(cols, y)
	case gsa.Kendall:
		return kendallColumns(cols, y)
	}
	return nil
}

// CorrelateParallel computes the correlation between every sampling-matrix
// column and y, fanning the parameter space out over workers.
//
// The column range [0, numParams) is partitioned into contiguous per-worker
// ranges of jobsPerWorker*chunkSize columns, so the total chunk count is
// balanced across workers. Each worker reads only its own rows-by-columns
// slice from the source and runs the chunk estimator sequentially over it.
// Results are reassembled in worker-index order, which preserves global
// column order. When workers exceed the available ranges, only nonempty
// ranges are dispatched.
//
// selectedRows == nil selects all rows; a strict subset restricts both the
// matrix read and y. Any worker error aborts the whole call: no partial
// results are ever returned.
func CorrelateParallel(ctx context.Context, src ports.SampleSourcePort, y []float64, numParams, workers int, method gsa.Method, selectedRows []int) ([]float64, error) {
	if numParams <= 0 {
		return nil, core.ErrInvalidParams
	}
	if workers < 1 {
		workers = 1
	}

	ySel := y
	if selectedRows != nil {
		ySel = make([]float64, len(selectedRows))
		for i, row := range selectedRows {
			if row < 0 || row >= len(y) {
				return nil, core.NewShapeError("selected row", row, len(y))
			}
			ySel[i] = y[row]
		}
	}

	chunkSize := method.ChunkSize(numParams)
	numChunks := ceilDiv(numParams, chunkSize)
	jobsPerWorker := ceilDiv(numChunks, workers)
	span := jobsPerWorker * chunkSize

	var ranges []columnRange
	for start := 0; start < numParams; start += span {
		end := start + span
		if end > numParams {
			end = numParams
		}
		ranges = append(ranges, columnRange{start: start, end: end})
	}

	results := make([][]float64, len(ranges))
	g, _ := errgroup.WithContext(ctx)
	for i, rng := range ranges {
		g.Go(func() error {
			cols, err := src.ReadColumns(rng.start, rng.end, selectedRows)
			if err != nil {
				return core.NewWorkerError(i, err)
			}
			for _, col := range cols {
				if len(col) != len(ySel) {
					return core.NewWorkerError(i, core.NewShapeError("column length", len(col), len(ySel)))
				}
			}
			results[i] = correlateChunks(cols, ySel, method)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]float64, 0, numParams)
	for _, res := range results {
		out = append(out, res...)
	}
	return out, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
