package ports

// ModelPort is the black box under analysis. Model execution itself is an
// external collaborator; the engine only consumes its outputs.
type ModelPort interface {
	// NumParams reports the number of model input parameters.
	NumParams() int

	// Rescale maps standard-uniform samples into the model's parameter
	// domain, row for row.
	Rescale(x [][]float64) [][]float64

	// Run evaluates the model for every row of the rescaled matrix and
	// returns one output value per row.
	Run(x [][]float64) ([]float64, error)
}
