package strategy

import (
	"fmt"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/calculator"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// GainThresholdPct is the minimum open-to-peak gain, in percent, a green
// run must reach to qualify as a pattern.
const GainThresholdPct = 20.0

// Detect scans a daily series left to right and returns every maximal run
// of consecutive green candles that gained at least GainThresholdPct from
// the run's first open to its highest close. Runs are never re-entered
// once examined, so patterns cannot overlap and come back in
// chronological order. An empty series yields no patterns and no error.
func Detect(bars []model.Bar) ([]model.Pattern, error) {
	var patterns []model.Pattern
	i := 0
	for i < len(bars) {
		if !bars[i].Green() {
			i++
			continue
		}
		start := bars[i]
		peak := start.Close
		j := i + 1
		for j < len(bars) && bars[j].Green() {
			if bars[j].Close > peak {
				peak = bars[j].Close
			}
			j++
		}
		gain, err := calculator.GainPercent(start.Open, peak)
		if err != nil {
			return nil, fmt.Errorf("run starting %s: %w", start.Date.Format("2006-01-02"), err)
		}
		if gain >= GainThresholdPct {
			patterns = append(patterns, model.Pattern{
				StartDate:   start.Date,
				StartPrice:  calculator.Round2(start.Open),
				EndPrice:    calculator.Round2(peak),
				GainPercent: calculator.Round2(gain),
				Candles:     j - i,
			})
		}
		i = j
	}
	return patterns, nil
}
