// Package postgres persists sensitivity-analysis runs. The engine itself
// never writes results anywhere; this adapter exists for callers that want
// the ports.ResultRepositoryPort contract backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gsakit/domain/core"
	"gsakit/domain/gsa"
	"gsakit/ports"
)

// ResultRepositoryImpl implements ResultRepositoryPort for PostgreSQL
type ResultRepositoryImpl struct {
	db *sqlx.DB
}

// NewResultRepository creates a new PostgreSQL result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepositoryPort {
	return &ResultRepositoryImpl{db: db}
}

// Connect opens and pings a PostgreSQL connection
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// SaveRun stores a run and its per-parameter indices. The index map is
// stored as JSONB so new estimators never require a migration.
func (r *ResultRepositoryImpl) SaveRun(ctx context.Context, run ports.RunRecord) error {
	indicesJSON, err := json.Marshal(run.Indices)
	if err != nil {
		return fmt.Errorf("failed to encode indices: %w", err)
	}

	createdAt := run.CreatedAt.Time()
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO gsa_runs (id, num_params, indices, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			num_params = EXCLUDED.num_params,
			indices = EXCLUDED.indices`,
		run.ID.String(), run.NumParams, indicesJSON, createdAt)
	return err
}

// GetRun retrieves a run by ID
func (r *ResultRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	var (
		numParams   int
		indicesJSON []byte
		createdAt   time.Time
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT num_params, indices, created_at
		FROM gsa_runs WHERE id = $1`, id.String()).
		Scan(&numParams, &indicesJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	indices := gsa.IndexSet{}
	if err := json.Unmarshal(indicesJSON, &indices); err != nil {
		return nil, fmt.Errorf("failed to decode indices: %w", err)
	}

	return &ports.RunRecord{
		ID:        id,
		NumParams: numParams,
		Indices:   indices,
		CreatedAt: core.Timestamp(createdAt),
	}, nil
}
