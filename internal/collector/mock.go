package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Per-symbol maps take precedence; otherwise synthetic bars drift around
// BasePrice.
type MockFetcher struct {
	BasePrice float64
	Bars      map[string][]model.Bar
	Prices    map[string]float64
	Errs      map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, start, end time.Time) ([]model.Bar, error) {
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if m.Bars != nil {
		return m.Bars[symbol], nil
	}
	days := int(end.Sub(start).Hours() / 24)
	return generateMockBars(m.BasePrice, days), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ context.Context, symbol string) (float64, error) {
	if err := m.Errs[symbol]; err != nil {
		return 0, err
	}
	if p, ok := m.Prices[symbol]; ok {
		return p, nil
	}
	if m.BasePrice > 0 {
		return m.BasePrice, nil
	}
	return 0, fmt.Errorf("mock: no price for %s", symbol)
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
