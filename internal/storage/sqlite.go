// Package storage keeps a history of simulation runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"decay-ca/internal/telemetry"
	"decay-ca/pkg/sims/life"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation run.
type Run struct {
	ID          int64
	Name        string
	Rule        string
	Width       int
	Height      int
	Pattern     string
	Seed        int64
	Generations int
	FinalAlive  int
	PeakAlive   int
	MeanAlive   float64
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path, creating parent
// directories and running migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			rule TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			pattern TEXT NOT NULL,
			seed INTEGER NOT NULL,
			generations INTEGER NOT NULL,
			final_alive INTEGER NOT NULL,
			peak_alive INTEGER NOT NULL,
			mean_alive REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_rule ON runs(rule);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (name, rule, width, height, pattern, seed, generations, final_alive, peak_alive, mean_alive)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.Rule, r.Width, r.Height, r.Pattern, r.Seed, r.Generations, r.FinalAlive, r.PeakAlive, r.MeanAlive,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first. An empty rule matches all.
func (s *Store) RecentRuns(rule string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, name, rule, width, height, pattern, seed, generations, final_alive, peak_alive, mean_alive, created_at
		 FROM runs
		 WHERE ? = '' OR rule = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		rule, rule, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Name, &r.Rule, &r.Width, &r.Height, &r.Pattern, &r.Seed,
			&r.Generations, &r.FinalAlive, &r.PeakAlive, &r.MeanAlive, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RecordOf builds a Run row from a finished board and its telemetry summary.
func RecordOf(sim *life.Life, seed int64, sum telemetry.Summary) Run {
	cfg := sim.Config()
	size := sim.Size()
	return Run{
		Name:        sim.Name(),
		Rule:        sim.Rule().String(),
		Width:       size.W,
		Height:      size.H,
		Pattern:     cfg.Pattern,
		Seed:        seed,
		Generations: int(sim.Generation()),
		FinalAlive:  sum.FinalAlive,
		PeakAlive:   sum.PeakAlive,
		MeanAlive:   sum.MeanAlive,
	}
}
