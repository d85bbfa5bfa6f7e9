package strategy

import (
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/calculator"
	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

const (
	// ActivatedBandPct bounds the distance, on either side of a pattern
	// start, at which the pattern counts as activated.
	ActivatedBandPct = 1.0
	// NearBandPct bounds the approach band strictly below a pattern start.
	NearBandPct = 5.0
)

// Classify compares a symbol's current price against each detected
// pattern's start level and returns the alerts that fire, in pattern
// order. Trend-filtered groups only alert while the price sits below a
// known 200-session average. No alerts fire without patterns or without a
// usable price.
func Classify(symbol, group string, trendFiltered bool, patterns []model.Pattern, price, sma200 float64) []model.Alert {
	if len(patterns) == 0 || price <= 0 {
		return nil
	}
	if trendFiltered && (sma200 <= 0 || price >= sma200) {
		return nil
	}
	var alerts []model.Alert
	for _, p := range patterns {
		diff, err := calculator.DiffPercent(p.StartPrice, price)
		if err != nil {
			continue
		}
		var kind model.AlertKind
		switch {
		case diff <= ActivatedBandPct:
			kind = model.AlertActivated
		case diff <= NearBandPct && price < p.StartPrice:
			kind = model.AlertNear
		default:
			continue
		}
		a := model.Alert{
			Symbol:       symbol,
			Group:        group,
			Kind:         kind,
			CurrentPrice: price,
			Pattern:      p,
		}
		if trendFiltered {
			a.SMA200 = sma200
		}
		alerts = append(alerts, a)
	}
	return alerts
}
