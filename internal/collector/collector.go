package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/calculator"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// DefaultTimeout bounds a single provider call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Collector is the price series source for scans. It owns the timeout
// policy at the provider boundary so callers pass plain contexts.
type Collector struct {
	Fetcher Fetcher
	Timeout time.Duration
}

// NewCollector creates a new Collector around the given fetcher.
func NewCollector(fetcher Fetcher, timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Collector{Fetcher: fetcher, Timeout: timeout}
}

// History returns the symbol's daily bars between start and end in
// ascending date order. An empty provider response maps to ErrNoData.
func (c *Collector) History(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}
	return bars, nil
}

// Recent returns the symbol's latest price together with the 200-session
// average computed over the trailing window. SMA200 stays zero when the
// window holds fewer than 200 sessions.
func (c *Collector) Recent(ctx context.Context, symbol string, windowDays int) (model.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	price, err := c.Fetcher.FetchCurrentPrice(ctx, symbol)
	if err != nil {
		return model.Quote{}, fmt.Errorf("fetch current price for %s: %w", symbol, err)
	}

	end := time.Now()
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, end.AddDate(0, 0, -windowDays), end)
	if err != nil {
		return model.Quote{}, fmt.Errorf("fetch average window for %s: %w", symbol, err)
	}

	q := model.Quote{Price: price}
	if sma, err := calculator.SMA200(bars); err != nil {
		log.Printf("[WARN] %s: 200-session average unavailable: %v", symbol, err)
	} else {
		q.SMA200 = sma
	}
	return q, nil
}
