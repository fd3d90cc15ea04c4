package ports

// SampleSourcePort provides read access to the rescaled sampling matrix.
// Implementations must support concurrent readers: the parallel correlation
// driver issues one ReadColumns call per worker against the same source.
type SampleSourcePort interface {
	// ReadColumns returns one slice per column in [start, end), each
	// containing the values of the requested rows in order. rows == nil
	// selects all rows. Implementations must not materialize rows or
	// columns outside the requested slice.
	ReadColumns(start, end int, rows []int) ([][]float64, error)

	// Rows and Cols report the full matrix shape.
	Rows() int
	Cols() int
}

// OutputSourcePort provides the model output vector, one value per
// sampling-matrix row.
type OutputSourcePort interface {
	Values() ([]float64, error)
}

// SamplerPort generates a sampling matrix in the standard-uniform cube.
// For Saltelli-type designs the row order carries the interleaved A/AB/B
// block structure the Sobol estimators rely on.
type SamplerPort interface {
	Sample(iterations, numParams int) ([][]float64, error)
}
