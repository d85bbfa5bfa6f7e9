package model

import "time"

// Bar represents a single daily candlestick.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Green reports whether the session closed above its open.
func (b Bar) Green() bool {
	return b.Close > b.Open
}

// Quote holds the latest traded price alongside the trailing 200-session
// average. SMA200 is zero when not enough history exists to compute it.
type Quote struct {
	Price  float64
	SMA200 float64
}
