package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// FormatReport renders the consolidated alert report, grouped by watch
// group in first-seen order. The markup stays within the HTML subset
// Telegram accepts; the email sender converts newlines itself.
func FormatReport(alerts []model.Alert, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>V20 Scan Alerts</b> | %s\n\n", generatedAt.Format("2006-01-02")))

	var order []string
	byGroup := map[string][]model.Alert{}
	for _, a := range alerts {
		if _, ok := byGroup[a.Group]; !ok {
			order = append(order, a.Group)
		}
		byGroup[a.Group] = append(byGroup[a.Group], a)
	}

	for _, g := range order {
		b.WriteString(fmt.Sprintf("<b>%s</b>\n", g))
		for _, a := range byGroup[g] {
			marker := "🔎"
			if a.Kind == model.AlertActivated {
				marker = "⚡"
			}
			b.WriteString(fmt.Sprintf("%s %s <b>%s</b>: ₹%.2f vs start ₹%.2f (rally +%.2f%%, %d candles, %s)",
				marker, a.Symbol, a.Kind, a.CurrentPrice, a.Pattern.StartPrice,
				a.Pattern.GainPercent, a.Pattern.Candles, a.Pattern.StartDate.Format("2006-01-02")))
			if a.SMA200 > 0 {
				b.WriteString(fmt.Sprintf(" | MA200 ₹%.2f", a.SMA200))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Total: %d alert(s)\n", len(alerts)))
	return b.String()
}

// FormatNoAlerts explains an alert-free scan, band by band.
func FormatNoAlerts(generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("✅ Scan complete | %s\n", generatedAt.Format("2006-01-02")))
	b.WriteString("No alerts today. Current prices miss the alert conditions:\n")
	b.WriteString("• ⚡ ACTIVATED: price within 1% of the rally start\n")
	b.WriteString("• 🔎 NEAR: price within 5% below the rally start\n")
	b.WriteString("• v200 groups: price also below the 200-session average\n")
	return b.String()
}

// FormatSummary renders one scan cycle's totals for status queries.
func FormatSummary(s *model.ScanSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Last scan</b> | %s\n\n", s.StartedAt.Format("2006-01-02 15:04")))
	if s.Skipped {
		b.WriteString("Skipped: weekend\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Run: %s\n", s.RunID))
	b.WriteString(fmt.Sprintf("Groups: %d | Symbols: %d\n", s.Groups, s.Symbols))
	b.WriteString(fmt.Sprintf("Patterns found: %d\n", s.PatternsFound))
	b.WriteString(fmt.Sprintf("Alerts: %d (⚡%d 🔎%d)\n", len(s.Alerts), s.ActivatedCount(), s.NearCount()))
	b.WriteString(fmt.Sprintf("Failed: %d | No data: %d | No trend data: %d\n", s.Failed, s.NoData, s.NoTrend))
	switch {
	case len(s.DeliveryErrs) > 0:
		b.WriteString(fmt.Sprintf("Delivery problems: %s\n", strings.Join(s.DeliveryErrs, "; ")))
	case s.Delivered:
		b.WriteString("Report delivered ✅\n")
	}
	return b.String()
}
