package model

import "time"

// Pattern is a detected rally of consecutive green candles gaining at
// least the configured threshold from the first candle's open. Prices and
// the gain are rounded to two decimals at detection time.
type Pattern struct {
	StartDate   time.Time
	StartPrice  float64
	EndPrice    float64
	GainPercent float64
	Candles     int
}

// AlertKind indicates how close the current price is to a pattern start.
type AlertKind string

const (
	AlertActivated AlertKind = "ACTIVATED"
	AlertNear      AlertKind = "NEAR"
)

// Alert pairs a pattern with the live price that re-approached its start
// level. SMA200 is zero for groups without a trend filter.
type Alert struct {
	Symbol       string
	Group        string
	Kind         AlertKind
	CurrentPrice float64
	Pattern      Pattern
	SMA200       float64
}
