package gsa

// Method identifies a correlation-coefficient estimator. The set is closed:
// every switch over Method handles all three variants.
type Method int

const (
	Pearson Method = iota
	Spearman
	Kendall
)

// String returns the estimator name used as a result key
func (m Method) String() string {
	switch m {
	case Pearson:
		return "pearson"
	case Spearman:
		return "spearman"
	case Kendall:
		return "kendall"
	}
	return "unknown"
}

// Empirically tuned column counts per estimator call. Pearson amortizes
// well over wide chunks; the rank transform in Spearman does not. Kendall
// is evaluated one column at a time.
const (
	chunkSizePearson  = 500
	chunkSizeSpearman = 100
	chunkSizeKendall  = 1
)

// ChunkSize returns the number of columns processed per estimator call,
// capped at the total parameter count.
func (m Method) ChunkSize(numParams int) int {
	var optimal int
	switch m {
	case Pearson:
		optimal = chunkSizePearson
	case Spearman:
		optimal = chunkSizeSpearman
	case Kendall:
		optimal = chunkSizeKendall
	}
	if optimal > numParams {
		return numParams
	}
	return optimal
}

// SobolEstimator identifies a variance-based index estimator.
type SobolEstimator int

const (
	SobolFirstOrder SobolEstimator = iota
	SobolTotalOrder
)

func (e SobolEstimator) String() string {
	switch e {
	case SobolFirstOrder:
		return "saltelli_first"
	case SobolTotalOrder:
		return "saltelli_total"
	}
	return "unknown"
}

// Correlation result keys for IndexSet; variance-based keys come from
// SobolEstimator.String.
const (
	IndexPearson  = "pearson"
	IndexSpearman = "spearman"
	IndexKendall  = "kendall"
)

// IndexSet maps an index name to one sensitivity value per parameter,
// in sampling-matrix column order.
type IndexSet map[string][]float64

// BlockPeriod is the row period of the interleaved Saltelli design: within
// each period, position 0 is a draw from matrix A, position BlockPeriod-1
// a draw from matrix B, and position j (1..numParams) a draw from the j-th
// AB matrix (A with column j taken from B).
func BlockPeriod(numParams int) int {
	return numParams + 2
}
