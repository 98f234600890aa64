package mockapi

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tunewell/finetune-go/pkg/finetune"
)

// Store persists mock fine-tune jobs and their events in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and initializes the
// schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS fine_tunes (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			training_file TEXT NOT NULL,
			status TEXT NOT NULL,
			fine_tuned_model TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fine_tune_events (
			id TEXT PRIMARY KEY,
			fine_tune_id TEXT NOT NULL,
			level TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (fine_tune_id) REFERENCES fine_tunes(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_fine_tune ON fine_tune_events(fine_tune_id, created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateFineTune inserts a new pending job and its initial event.
func (s *Store) CreateFineTune(ctx context.Context, model, trainingFile string) (*finetune.FineTune, error) {
	now := time.Now().Unix()
	id := "ft-" + uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO fine_tunes (id, model, training_file, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, model, trainingFile, finetune.StatusPending, now, now,
	); err != nil {
		return nil, fmt.Errorf("insert fine-tune: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO fine_tune_events (id, fine_tune_id, level, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		"ftevent-"+uuid.NewString(), id, "info", "Created fine-tune: "+id, now,
	); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return s.GetFineTune(ctx, id)
}

// GetFineTune returns a job by ID, or nil when absent.
func (s *Store) GetFineTune(ctx context.Context, id string) (*finetune.FineTune, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, model, training_file, status, COALESCE(fine_tuned_model, ''), created_at, updated_at FROM fine_tunes WHERE id = ?`, id)

	var ft finetune.FineTune
	var trainingFile string
	err := row.Scan(&ft.ID, &ft.Model, &trainingFile, &ft.Status, &ft.FineTunedModel, &ft.CreatedAt, &ft.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan fine-tune: %w", err)
	}
	ft.Object = "fine-tune"
	ft.TrainingFiles = []finetune.File{{ID: trainingFile, Object: "file", Purpose: "fine-tune"}}
	return &ft, nil
}

// ListFineTunes returns all jobs ordered by creation time.
func (s *Store) ListFineTunes(ctx context.Context) ([]finetune.FineTune, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, model, training_file, status, COALESCE(fine_tuned_model, ''), created_at, updated_at FROM fine_tunes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query fine-tunes: %w", err)
	}
	defer rows.Close()

	var out []finetune.FineTune
	for rows.Next() {
		var ft finetune.FineTune
		var trainingFile string
		if err := rows.Scan(&ft.ID, &ft.Model, &trainingFile, &ft.Status, &ft.FineTunedModel, &ft.CreatedAt, &ft.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fine-tune: %w", err)
		}
		ft.Object = "fine-tune"
		ft.TrainingFiles = []finetune.File{{ID: trainingFile, Object: "file", Purpose: "fine-tune"}}
		out = append(out, ft)
	}
	return out, rows.Err()
}

// CancelFineTune flips a job to cancelled and appends a cancel event.
// Returns nil when the job does not exist.
func (s *Store) CancelFineTune(ctx context.Context, id string) (*finetune.FineTune, error) {
	now := time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE fine_tunes SET status = ?, updated_at = ? WHERE id = ?`,
		finetune.StatusCancelled, now, id)
	if err != nil {
		return nil, fmt.Errorf("update fine-tune: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO fine_tune_events (id, fine_tune_id, level, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		"ftevent-"+uuid.NewString(), id, "info", "Fine-tune cancelled", now,
	); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return s.GetFineTune(ctx, id)
}

// ListEvents returns the events for a job ordered by creation time.
func (s *Store) ListEvents(ctx context.Context, fineTuneID string) ([]finetune.FineTuneEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, message, created_at FROM fine_tune_events WHERE fine_tune_id = ? ORDER BY created_at`, fineTuneID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []finetune.FineTuneEvent
	for rows.Next() {
		var ev finetune.FineTuneEvent
		if err := rows.Scan(&ev.Level, &ev.Message, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Object = "fine-tune-event"
		out = append(out, ev)
	}
	return out, rows.Err()
}
