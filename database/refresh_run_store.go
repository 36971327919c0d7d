// database/refresh_run_store.go
package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/gewnthar/mareas/backend/models"
)

// RefreshRunStore records each scheduled refresh so operators can see when
// zones were last updated and why a run failed.
type RefreshRunStore struct {
	db *sql.DB
}

func NewRefreshRunStore(db *sql.DB) *RefreshRunStore {
	return &RefreshRunStore{db: db}
}

// StartRun inserts a run in the running state.
func (s *RefreshRunStore) StartRun(ctx context.Context, run models.RefreshRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_runs (id, started_at, zones_total, zones_processed, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.ZonesTotal, run.ZonesProcessed, run.Status, run.ErrorMessage,
	)
	if err != nil {
		log.Printf("ERROR Database: Failed to record start of refresh run %s: %v", run.ID, err)
		return &StoreError{Op: "start refresh run", Key: run.ID, Err: err}
	}
	return nil
}

// FinishRun stores the outcome of a run.
func (s *RefreshRunStore) FinishRun(ctx context.Context, run models.RefreshRun) error {
	var finished sql.NullTime
	if run.FinishedAt != nil {
		finished = sql.NullTime{Time: run.FinishedAt.UTC(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE refresh_runs
		SET finished_at = ?, zones_total = ?, zones_processed = ?, status = ?, error_message = ?
		WHERE id = ?`,
		finished, run.ZonesTotal, run.ZonesProcessed, run.Status, run.ErrorMessage, run.ID,
	)
	if err != nil {
		log.Printf("ERROR Database: Failed to record outcome of refresh run %s: %v", run.ID, err)
		return &StoreError{Op: "finish refresh run", Key: run.ID, Err: err}
	}
	return nil
}

// ListRecentRuns returns up to limit runs, newest first.
func (s *RefreshRunStore) ListRecentRuns(ctx context.Context, limit int) ([]models.RefreshRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, zones_total, zones_processed, status, error_message
		FROM refresh_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, &StoreError{Op: "list refresh runs", Err: err}
	}
	defer rows.Close()

	var runs []models.RefreshRun
	for rows.Next() {
		var r models.RefreshRun
		var finished sql.NullTime
		var errMsg sql.NullString

		if err := rows.Scan(&r.ID, &r.StartedAt, &finished, &r.ZonesTotal, &r.ZonesProcessed, &r.Status, &errMsg); err != nil {
			log.Printf("ERROR Database: Failed to scan refresh_runs row: %v", err)
			return nil, &StoreError{Op: "scan refresh run", Err: err}
		}
		if finished.Valid {
			t := finished.Time.UTC()
			r.FinishedAt = &t
		}
		if errMsg.Valid {
			r.ErrorMessage = errMsg.String
		}
		r.StartedAt = r.StartedAt.UTC()
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "iterate refresh runs", Err: err}
	}
	return runs, nil
}
