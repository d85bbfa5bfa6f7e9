package recorder

import "github.com/deb4uuu-coder/stock-v20-scanner/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *model.ScanSummary) error { return nil }
func (n *NoopRecorder) Close() error                         { return nil }
