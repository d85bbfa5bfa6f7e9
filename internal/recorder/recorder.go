package recorder

import "github.com/deb4uuu-coder/stock-v20-scanner/internal/model"

// Recorder journals per-run scan metrics. Only run-level counters are
// kept; individual alerts are never persisted.
type Recorder interface {
	RecordRun(s *model.ScanSummary) error
	Close() error
}
