package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/collector"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/config"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/notifier"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/recorder"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/scanner"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/scheduler"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/watchlist"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] v20-scanner starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Fail fast on an unreadable watch-list rather than at the first cycle.
	groups, err := watchlist.Load(cfg.Watchlist.Path)
	if err != nil {
		log.Fatalf("[FATAL] load watchlist: %v", err)
	}
	log.Printf("[INFO] watchlist %s: %d group(s)", cfg.Watchlist.Path, len(groups))

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatalf("[FATAL] load timezone %s: %v", cfg.Schedule.Timezone, err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "api":
		fetcher = collector.NewAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case "mock":
		fetcher = &collector.MockFetcher{BasePrice: 100}
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.SymbolSuffix)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, time.Duration(cfg.DataSource.TimeoutSeconds)*time.Second)

	// Init delivery channels
	var senders []notifier.ReportSender
	var tg *notifier.TelegramSender
	if cfg.EmailEnabled() {
		senders = append(senders, notifier.NewEmailSender(cfg.Email.Host, cfg.Email.Port, cfg.Email.From, cfg.Email.Password, cfg.Email.To))
	}
	if cfg.TelegramEnabled() {
		tg = notifier.NewTelegramSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		senders = append(senders, tg)
	}
	for _, s := range senders {
		log.Printf("[INFO] delivery channel: %s", s.Name())
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sc := scanner.New(col, senders, rec, scanner.Options{
		WatchlistPath: cfg.Watchlist.Path,
		HistoryDays:   cfg.DataSource.HistoryDays,
		QuoteWindow:   cfg.DataSource.QuoteWindow,
		Concurrency:   cfg.Scan.Concurrency,
		MaxRetries:    cfg.Scan.MaxRetries,
		SkipWeekends:  cfg.Schedule.SkipWeekends,
		Location:      loc,
	})

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RunOnce {
		log.Println("[INFO] run-once mode")
		summary, err := sc.Run(ctx)
		if err != nil {
			log.Fatalf("[FATAL] scan: %v", err)
		}
		log.Printf("[INFO] scan %s finished: %d alert(s)", summary.RunID, len(summary.Alerts))
		return
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, sc, tg, loc)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling for /scan and /status
	if tg != nil {
		go tg.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if cfg.Schedule.RunOnStart {
		log.Println("[INFO] run_on_start enabled, executing scan now")
		go sched.RunNow()
	}

	log.Println("[INFO] v20-scanner is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] v20-scanner stopped")
}
