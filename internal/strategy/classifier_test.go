package strategy

import (
	"testing"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

func onePattern(start float64) []model.Pattern {
	return []model.Pattern{{StartPrice: start, EndPrice: start * 1.25, GainPercent: 25, Candles: 2}}
}

func TestClassify_PriceBands(t *testing.T) {
	patterns := onePattern(100)
	tests := []struct {
		name  string
		price float64
		want  model.AlertKind
		none  bool
	}{
		{"exactly at start", 100, model.AlertActivated, false},
		{"one percent below", 99, model.AlertActivated, false},
		{"one percent above", 101, model.AlertActivated, false},
		{"between bands above", 101.5, "", true},
		{"four percent below", 96, model.AlertNear, false},
		{"five percent below", 95, model.AlertNear, false},
		{"four percent above", 104, "", true},
		{"six percent below", 94, "", true},
	}
	for _, tt := range tests {
		alerts := Classify("RELIANCE", "v40", false, patterns, tt.price, 0)
		if tt.none {
			if len(alerts) != 0 {
				t.Errorf("%s: expected no alerts, got %d", tt.name, len(alerts))
			}
			continue
		}
		if len(alerts) != 1 {
			t.Fatalf("%s: expected 1 alert, got %d", tt.name, len(alerts))
		}
		if alerts[0].Kind != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, alerts[0].Kind)
		}
		if alerts[0].CurrentPrice != tt.price {
			t.Errorf("%s: current price not carried: got %.2f", tt.name, alerts[0].CurrentPrice)
		}
	}
}

func TestClassify_TrendFilterGate(t *testing.T) {
	patterns := onePattern(100)
	tests := []struct {
		name   string
		price  float64
		sma    float64
		alerts int
	}{
		{"price below average", 99, 150, 1},
		{"price above average", 99, 90, 0},
		{"price equals average", 99, 99, 0},
		{"average unknown", 99, 0, 0},
	}
	for _, tt := range tests {
		alerts := Classify("SBIN", "v200", true, patterns, tt.price, tt.sma)
		if len(alerts) != tt.alerts {
			t.Errorf("%s: expected %d alerts, got %d", tt.name, tt.alerts, len(alerts))
		}
	}
}

func TestClassify_TrendFilterIgnoredForPlainGroups(t *testing.T) {
	patterns := onePattern(100)
	alerts := Classify("TCS", "v40", false, patterns, 99, 0)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert without trend data, got %d", len(alerts))
	}
	if alerts[0].SMA200 != 0 {
		t.Errorf("plain group alert should carry no average, got %.2f", alerts[0].SMA200)
	}
}

func TestClassify_CarriesAverageForFilteredGroups(t *testing.T) {
	alerts := Classify("SBIN", "v200", true, onePattern(100), 99, 150)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].SMA200 != 150 {
		t.Errorf("expected average 150 on alert, got %.2f", alerts[0].SMA200)
	}
	if alerts[0].Group != "v200" {
		t.Errorf("expected group v200, got %s", alerts[0].Group)
	}
}

func TestClassify_NoPatternsNoPrice(t *testing.T) {
	if alerts := Classify("INFY", "v40", false, nil, 99, 0); len(alerts) != 0 {
		t.Errorf("expected no alerts without patterns, got %d", len(alerts))
	}
	if alerts := Classify("INFY", "v40", false, onePattern(100), 0, 0); len(alerts) != 0 {
		t.Errorf("expected no alerts without a price, got %d", len(alerts))
	}
}

func TestClassify_EveryMatchingPatternAlerts(t *testing.T) {
	patterns := []model.Pattern{
		{StartPrice: 100, EndPrice: 125, GainPercent: 25, Candles: 2},
		{StartPrice: 102, EndPrice: 130, GainPercent: 27.45, Candles: 3},
		{StartPrice: 200, EndPrice: 250, GainPercent: 25, Candles: 2},
	}
	alerts := Classify("HDFCBANK", "v40", false, patterns, 99, 0)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].Kind != model.AlertActivated {
		t.Errorf("first pattern: expected ACTIVATED, got %s", alerts[0].Kind)
	}
	if alerts[1].Kind != model.AlertNear {
		t.Errorf("second pattern: expected NEAR, got %s", alerts[1].Kind)
	}
	if alerts[0].Pattern.StartPrice != 100 || alerts[1].Pattern.StartPrice != 102 {
		t.Errorf("alerts out of pattern order: %.2f, %.2f",
			alerts[0].Pattern.StartPrice, alerts[1].Pattern.StartPrice)
	}
}
