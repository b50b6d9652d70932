package repositories

import (
	"database/sql"
	"fmt"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
)

// RunRepository persists analysis run history.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a run record with generated ID and sequence
func (r *RunRepository) Create(run *models.Run) error {
	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	run.ID = shared.GenerateID()
	run.Sequence = sequence

	query := `
		INSERT INTO runs (id, sequence, steam_id, currency, status, results, total_cost, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		run.ID,
		run.Sequence,
		run.SteamID,
		run.Currency,
		run.Status,
		run.Results,
		run.TotalCost,
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// Get retrieves a run by ID
func (r *RunRepository) Get(id string) (*models.Run, error) {
	query := `
		SELECT id, sequence, steam_id, currency, status, results, total_cost, started_at, finished_at
		FROM runs
		WHERE id = ?
	`

	run := &models.Run{}
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.Sequence,
		&run.SteamID,
		&run.Currency,
		&run.Status,
		&run.Results,
		&run.TotalCost,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// List returns the most recent runs, newest first. A limit of 0 returns
// everything.
func (r *RunRepository) List(limit int) ([]*models.Run, error) {
	query := `
		SELECT id, sequence, steam_id, currency, status, results, total_cost, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		err := rows.Scan(
			&run.ID,
			&run.Sequence,
			&run.SteamID,
			&run.Currency,
			&run.Status,
			&run.Results,
			&run.TotalCost,
			&run.StartedAt,
			&run.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
