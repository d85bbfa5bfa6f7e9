package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// SQLiteRecorder journals scan runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ops tooling can read the journal while the scanner writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			started_at     INTEGER NOT NULL,
			finished_at    INTEGER NOT NULL,
			skipped        INTEGER NOT NULL DEFAULT 0,
			group_count    INTEGER,
			symbol_count   INTEGER,
			failed_count   INTEGER,
			no_data_count  INTEGER,
			no_trend_count INTEGER,
			patterns_found INTEGER,
			alerts_total   INTEGER,
			activated      INTEGER,
			near           INTEGER,
			delivered      INTEGER,
			delivery_error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_runs_started ON scan_runs(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts one journal row for a completed (or skipped) cycle.
func (r *SQLiteRecorder) RecordRun(s *model.ScanSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	skipped := 0
	if s.Skipped {
		skipped = 1
	}
	delivered := 0
	if s.Delivered {
		delivered = 1
	}

	_, err := r.db.Exec(`INSERT INTO scan_runs
		(run_id, started_at, finished_at, skipped,
		 group_count, symbol_count, failed_count, no_data_count, no_trend_count,
		 patterns_found, alerts_total, activated, near,
		 delivered, delivery_error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.RunID, s.StartedAt.Unix(), s.FinishedAt.Unix(), skipped,
		s.Groups, s.Symbols, s.Failed, s.NoData, s.NoTrend,
		s.PatternsFound, len(s.Alerts), s.ActivatedCount(), s.NearCount(),
		delivered, strings.Join(s.DeliveryErrs, "; "),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
