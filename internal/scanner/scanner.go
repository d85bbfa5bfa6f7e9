package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/collector"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/notifier"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/recorder"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/strategy"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/watchlist"
)

// PriceSource provides the two provider views a scan needs.
type PriceSource interface {
	History(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error)
	Recent(ctx context.Context, symbol string, windowDays int) (model.Quote, error)
}

// Options tune one Scanner.
type Options struct {
	WatchlistPath string
	HistoryDays   int // calendar days of bars scanned for patterns
	QuoteWindow   int // calendar days fetched for the 200-session average
	Concurrency   int // symbols fetched in parallel per group, 1 = sequential
	MaxRetries    int // delivery retries per sender
	SkipWeekends  bool
	Location      *time.Location
}

// Scanner runs complete scan cycles over the watch-list. Every cycle
// starts from a fresh summary; nothing carries over between runs.
type Scanner struct {
	source  PriceSource
	senders []notifier.ReportSender
	journal recorder.Recorder
	opts    Options
	now     func() time.Time
}

// New creates a Scanner. Zero option fields fall back to defaults.
func New(source PriceSource, senders []notifier.ReportSender, journal recorder.Recorder, opts Options) *Scanner {
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 365
	}
	if opts.QuoteWindow <= 0 {
		opts.QuoteWindow = 365
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if journal == nil {
		journal = recorder.NewNoopRecorder()
	}
	return &Scanner{
		source:  source,
		senders: senders,
		journal: journal,
		opts:    opts,
		now:     time.Now,
	}
}

// Run executes one scan cycle: reload the watch-list, scan every symbol
// of every group, deliver one consolidated report if any alerts fired,
// and journal the run. Per-symbol failures are logged and skipped; only
// an unreadable watch-list aborts the cycle.
func (s *Scanner) Run(ctx context.Context) (*model.ScanSummary, error) {
	summary := &model.ScanSummary{
		RunID:     uuid.NewString(),
		StartedAt: s.now(),
	}

	if s.opts.SkipWeekends && isWeekend(summary.StartedAt.In(s.opts.Location)) {
		log.Printf("[INFO] run %s: weekend in %s, scan skipped", summary.RunID, s.opts.Location)
		summary.Skipped = true
		summary.FinishedAt = s.now()
		s.record(summary)
		return summary, nil
	}

	groups, err := watchlist.Load(s.opts.WatchlistPath)
	if err != nil {
		return nil, fmt.Errorf("load watch-list: %w", err)
	}
	summary.Groups = len(groups)
	log.Printf("[INFO] run %s: scanning %d group(s)", summary.RunID, len(groups))

	for _, g := range groups {
		log.Printf("[INFO] group %s: %d symbol(s)", g.Name, len(g.Symbols))
		for _, rep := range s.scanGroup(ctx, g) {
			summary.Symbols++
			switch rep.Outcome {
			case model.OutcomeFailed:
				summary.Failed++
			case model.OutcomeNoData:
				summary.NoData++
			case model.OutcomeNoTrendData:
				summary.NoTrend++
			}
			summary.PatternsFound += len(rep.Patterns)
			summary.Alerts = append(summary.Alerts, rep.Alerts...)
		}
	}

	s.logTotals(summary)
	s.deliver(ctx, summary)
	summary.FinishedAt = s.now()
	s.record(summary)
	return summary, nil
}

// scanGroup fans symbols out over the configured worker count. Reports
// land in a slice indexed by watch-list position, so the observable
// order never depends on scheduling.
func (s *Scanner) scanGroup(ctx context.Context, g model.WatchGroup) []model.SymbolReport {
	reports := make([]model.SymbolReport, len(g.Symbols))

	workers := s.opts.Concurrency
	if workers > len(g.Symbols) {
		workers = len(g.Symbols)
	}
	if workers <= 1 {
		for i, sym := range g.Symbols {
			reports[i] = s.scanSymbol(ctx, g, sym)
		}
		return reports
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, sym := range g.Symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			reports[i] = s.scanSymbol(ctx, g, sym)
		}(i, sym)
	}
	wg.Wait()
	return reports
}

func (s *Scanner) scanSymbol(ctx context.Context, g model.WatchGroup, symbol string) model.SymbolReport {
	rep := model.SymbolReport{Symbol: symbol, Group: g.Name}

	end := s.now()
	bars, err := s.source.History(ctx, symbol, end.AddDate(0, 0, -s.opts.HistoryDays), end)
	if err != nil {
		if errors.Is(err, collector.ErrNoData) {
			log.Printf("[WARN] %s/%s: no data, skipping", g.Name, symbol)
			rep.Outcome = model.OutcomeNoData
		} else {
			log.Printf("[ERROR] %s/%s: history fetch failed: %v", g.Name, symbol, err)
			rep.Outcome = model.OutcomeFailed
			rep.Err = err
		}
		return rep
	}

	patterns, err := strategy.Detect(bars)
	if err != nil {
		log.Printf("[ERROR] %s/%s: detection failed: %v", g.Name, symbol, err)
		rep.Outcome = model.OutcomeFailed
		rep.Err = err
		return rep
	}
	rep.Patterns = patterns
	if len(patterns) == 0 {
		log.Printf("[INFO] %s/%s: no 20%% patterns found", g.Name, symbol)
		rep.Outcome = model.OutcomeNoPatterns
		return rep
	}

	quote, err := s.source.Recent(ctx, symbol, s.opts.QuoteWindow)
	if err != nil {
		log.Printf("[ERROR] %s/%s: quote fetch failed: %v", g.Name, symbol, err)
		rep.Outcome = model.OutcomeFailed
		rep.Err = err
		return rep
	}

	if g.TrendFiltered && quote.SMA200 <= 0 {
		log.Printf("[WARN] %s/%s: %d pattern(s) but no 200-session average, no alerts",
			g.Name, symbol, len(patterns))
		rep.Outcome = model.OutcomeNoTrendData
		return rep
	}

	rep.Outcome = model.OutcomePatterns
	rep.Alerts = strategy.Classify(symbol, g.Name, g.TrendFiltered, patterns, quote.Price, quote.SMA200)
	log.Printf("[INFO] %s/%s: %d pattern(s), %d alert(s), price %.2f",
		g.Name, symbol, len(patterns), len(rep.Alerts), quote.Price)
	return rep
}

// deliver sends one consolidated report per configured sender. Delivery
// failures are logged and noted on the summary, never fatal.
func (s *Scanner) deliver(ctx context.Context, summary *model.ScanSummary) {
	if len(summary.Alerts) == 0 {
		log.Printf("[INFO] run %s: no alerts, report not sent", summary.RunID)
		return
	}
	generatedAt := s.now()
	for _, snd := range s.senders {
		if err := notifier.SendWithRetry(ctx, snd, summary.Alerts, generatedAt, s.opts.MaxRetries); err != nil {
			log.Printf("[ERROR] deliver report via %s: %v", snd.Name(), err)
			summary.DeliveryErrs = append(summary.DeliveryErrs, fmt.Sprintf("%s: %v", snd.Name(), err))
			continue
		}
		log.Printf("[INFO] report with %d alert(s) delivered via %s", len(summary.Alerts), snd.Name())
		summary.Delivered = true
	}
}

func (s *Scanner) record(summary *model.ScanSummary) {
	if err := s.journal.RecordRun(summary); err != nil {
		log.Printf("[WARN] journal scan run: %v", err)
	}
}

func (s *Scanner) logTotals(summary *model.ScanSummary) {
	log.Printf("[INFO] ===== scan summary (run %s) =====", summary.RunID)
	log.Printf("[INFO] groups: %d, symbols: %d", summary.Groups, summary.Symbols)
	log.Printf("[INFO] patterns found: %d", summary.PatternsFound)
	log.Printf("[INFO] alerts: %d (activated %d, near %d)",
		len(summary.Alerts), summary.ActivatedCount(), summary.NearCount())
	log.Printf("[INFO] failed: %d, no data: %d, no trend data: %d",
		summary.Failed, summary.NoData, summary.NoTrend)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
