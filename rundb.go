package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type runDB struct {
	db *sql.DB
}

func openRunDB(stateRoot string) (*runDB, error) {
	if err := os.MkdirAll(stateRoot, dirPerms); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %v", err)
	}

	dbPath := filepath.Join(stateRoot, runDBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &runDB{db: db}, nil
}

func (r *runDB) close() error {
	return r.db.Close()
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
	    PRAGMA foreign_keys=ON;

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			command TEXT NOT NULL,
			base_dir TEXT NOT NULL,
			affected INTEGER NOT NULL,
			error TEXT,
			started DATETIME NOT NULL,
			finished DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_runs_base_dir ON runs(base_dir);

		CREATE TABLE IF NOT EXISTS run_paths (
			id INTEGER PRIMARY KEY,
			run_id INTEGER NOT NULL,
			path TEXT NOT NULL,
			FOREIGN KEY(run_id) REFERENCES runs(id)
		);

		CREATE INDEX IF NOT EXISTS idx_run_paths_run_id ON run_paths(run_id);
	`)

	return err
}

func (r *runDB) saveRun(run CompletedRun, paths []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.Exec(`
		INSERT INTO runs (
			command,
			base_dir,
			affected,
			error,
			started,
			finished
		) VALUES (?, ?, ?, ?, ?, ?)`,
		run.Command,
		run.BaseDir,
		run.Affected,
		run.Error,
		run.Started,
		run.Finished,
	)
	if err != nil {
		return err
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for _, path := range paths {
		_, err := tx.Exec(`
			INSERT INTO run_paths (
				run_id,
				path
			) VALUES (?, ?)`,
			runID,
			path,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *runDB) lastRun(baseDir string) (*CompletedRun, error) {
	var run CompletedRun
	err := r.db.QueryRow(`
		SELECT
			command,
			base_dir,
			affected,
			error,
			started,
			finished
		FROM runs
		WHERE base_dir = ?
		ORDER BY id DESC LIMIT 1`,
		baseDir,
	).Scan(
		&run.Command,
		&run.BaseDir,
		&run.Affected,
		&run.Error,
		&run.Started,
		&run.Finished,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func (r *runDB) recentRuns(baseDir string, limit int) ([]CompletedRun, error) {
	rows, err := r.db.Query(`
		SELECT
			command,
			base_dir,
			affected,
			error,
			started,
			finished
		FROM runs
		WHERE base_dir = ?
		ORDER BY id DESC
		LIMIT ?`,
		baseDir,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []CompletedRun
	for rows.Next() {
		var run CompletedRun
		err := rows.Scan(
			&run.Command,
			&run.BaseDir,
			&run.Affected,
			&run.Error,
			&run.Started,
			&run.Finished,
		)
		if err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}
