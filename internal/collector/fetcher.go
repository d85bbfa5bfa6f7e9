package collector

import (
	"context"
	"errors"
	"time"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// ErrNoData marks symbols the provider returned no bars for. Callers
// distinguish it from transport failures with errors.Is.
var ErrNoData = errors.New("no data for symbol")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.Bar, error)
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
	Name() string
}
