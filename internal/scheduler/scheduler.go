package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/notifier"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/scanner"
)

// Scheduler drives scan cycles on a cron schedule and answers Telegram
// commands in scheduled mode.
type Scheduler struct {
	Cron     *cron.Cron
	Scanner  *scanner.Scanner
	Notifier *notifier.TelegramSender // nil when Telegram is not configured
	Ctx      context.Context

	mu   sync.Mutex
	last *model.ScanSummary
}

// NewScheduler creates a new Scheduler. Cron expressions are evaluated in
// loc so market-hour schedules survive servers running in UTC.
func NewScheduler(ctx context.Context, sc *scanner.Scanner, tn *notifier.TelegramSender, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		Scanner:  sc,
		Notifier: tn,
		Ctx:      ctx,
	}
}

// Register schedules the scan task.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes a scan cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.scanTask()
}

// LastSummary returns the most recent cycle's summary, or nil before the
// first run.
func (s *Scheduler) LastSummary() *model.ScanSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) scanTask() {
	if err := s.runCycle(); err != nil {
		s.trySend(fmt.Sprintf("❌ Scan failed: %v", err))
	}
}

// runCycle executes one scan and keeps its summary for status queries.
// Failed cycles leave the previous summary in place.
func (s *Scheduler) runCycle() error {
	log.Println("[INFO] running scheduled scan")
	summary, err := s.Scanner.Run(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] scan cycle: %v", err)
		return err
	}
	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()
	// Alert reports go out through the scanner's senders; an alert-free
	// cycle still gets a confirmation so silence stays distinguishable
	// from a dead bot.
	if !summary.Skipped && len(summary.Alerts) == 0 {
		s.trySend(notifier.FormatNoAlerts(summary.FinishedAt))
	}
	return nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		if err := s.runCycle(); err != nil {
			return fmt.Sprintf("❌ Scan failed: %v", err)
		}
		return notifier.FormatSummary(s.LastSummary())
	case "/status":
		if last := s.LastSummary(); last != nil {
			return notifier.FormatSummary(last)
		}
		return "No scan has run yet"
	default:
		return "Commands:\n• /scan - run a scan now\n• /status - last scan summary"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Send(text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
