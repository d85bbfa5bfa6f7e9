package calculator

import (
	"errors"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// SMAWindow is the number of sessions in the trend-filter average.
const SMAWindow = 200

// TrailingAverage computes the simple average of the last window values.
func TrailingAverage(values []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	if len(values) < window {
		return 0, errors.New("not enough data for trailing average")
	}
	sum := 0.0
	for i := len(values) - window; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(window), nil
}

// SMA200 returns the 200-session simple moving average of daily closes.
func SMA200(bars []model.Bar) (float64, error) {
	return TrailingAverage(Closes(bars), SMAWindow)
}

// Closes extracts the close column from a bar series.
func Closes(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
