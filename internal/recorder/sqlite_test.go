package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scans.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	now := time.Now()
	s := &model.ScanSummary{
		RunID:         "test-run",
		StartedAt:     now.Add(-time.Minute),
		FinishedAt:    now,
		Groups:        3,
		Symbols:       40,
		Failed:        1,
		NoData:        2,
		PatternsFound: 7,
		Alerts: []model.Alert{
			{Symbol: "SBIN", Kind: model.AlertActivated},
			{Symbol: "TCS", Kind: model.AlertNear},
		},
		Delivered: true,
	}
	if err := r.RecordRun(s); err != nil {
		t.Fatalf("record run: %v", err)
	}

	var count, activated int
	row := r.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(activated), 0) FROM scan_runs WHERE run_id = ?`, "test-run")
	if err := row.Scan(&count, &activated); err != nil {
		t.Fatalf("query journal: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 journal row, got %d", count)
	}
	if activated != 1 {
		t.Errorf("expected 1 activated alert recorded, got %d", activated)
	}
}
