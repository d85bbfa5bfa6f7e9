package model

import "time"

// ScanOutcome classifies what a single symbol contributed to a scan.
type ScanOutcome string

const (
	OutcomePatterns    ScanOutcome = "PATTERNS"
	OutcomeNoPatterns  ScanOutcome = "NO_PATTERNS"
	OutcomeNoData      ScanOutcome = "NO_DATA"
	OutcomeNoTrendData ScanOutcome = "NO_TREND_DATA"
	OutcomeFailed      ScanOutcome = "FAILED"
)

// SymbolReport is the per-symbol result of one scan cycle. Failures are
// carried in Err instead of aborting the cycle.
type SymbolReport struct {
	Symbol   string
	Group    string
	Outcome  ScanOutcome
	Patterns []Pattern
	Alerts   []Alert
	Err      error
}

// ScanSummary aggregates one full scan cycle. A fresh summary is built for
// every cycle; nothing carries over between runs.
type ScanSummary struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	Skipped       bool
	Groups        int
	Symbols       int
	Failed        int
	NoData        int
	NoTrend       int
	PatternsFound int
	Alerts        []Alert
	Delivered     bool
	DeliveryErrs  []string
}

// ActivatedCount returns how many alerts hit the activation band.
func (s *ScanSummary) ActivatedCount() int {
	n := 0
	for _, a := range s.Alerts {
		if a.Kind == AlertActivated {
			n++
		}
	}
	return n
}

// NearCount returns how many alerts sit in the approach band.
func (s *ScanSummary) NearCount() int {
	n := 0
	for _, a := range s.Alerts {
		if a.Kind == AlertNear {
			n++
		}
	}
	return n
}
