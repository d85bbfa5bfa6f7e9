package calculator

import (
	"errors"
	"math"
)

// GainPercent returns the percentage change from base to value.
func GainPercent(base, value float64) (float64, error) {
	if base <= 0 {
		return 0, errors.New("base price must be positive")
	}
	return (value - base) / base * 100, nil
}

// DiffPercent returns the absolute percentage distance of value from base.
func DiffPercent(base, value float64) (float64, error) {
	if base <= 0 {
		return 0, errors.New("base price must be positive")
	}
	return math.Abs(value-base) / base * 100, nil
}

// Round2 rounds a value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
