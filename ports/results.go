package ports

import (
	"context"

	"gsakit/domain/core"
	"gsakit/domain/gsa"
)

// RunRecord is a persisted sensitivity-analysis run. Persistence is the
// caller's responsibility; the engine only returns in-memory IndexSets.
type RunRecord struct {
	ID        core.RunID     `json:"id" db:"id"`
	NumParams int            `json:"num_params" db:"num_params"`
	Indices   gsa.IndexSet   `json:"indices"`
	CreatedAt core.Timestamp `json:"created_at" db:"created_at"`
}

// NewRunRecord stamps a completed analysis with a fresh time-ordered run
// ID and the current time, ready for SaveRun.
func NewRunRecord(numParams int, indices gsa.IndexSet) RunRecord {
	return RunRecord{
		ID:        core.RunID(core.NewID()),
		NumParams: numParams,
		Indices:   indices,
		CreatedAt: core.Now(),
	}
}

// ResultRepositoryPort stores and retrieves completed runs.
type ResultRepositoryPort interface {
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id core.RunID) (*RunRecord, error)
}
