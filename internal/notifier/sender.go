package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// ReportSender delivers one consolidated alert report per scan cycle.
type ReportSender interface {
	SendReport(ctx context.Context, alerts []model.Alert, generatedAt time.Time) error
	Name() string
}

// SendWithRetry delivers a report with exponential backoff between
// attempts. maxRetries zero means a single attempt.
func SendWithRetry(ctx context.Context, s ReportSender, alerts []model.Alert, generatedAt time.Time, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := s.SendReport(ctx, alerts, generatedAt)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := time.Duration(1<<uint(i)) * time.Second
		log.Printf("[WARN] %s send failed (attempt %d/%d): %v, retrying in %v",
			s.Name(), i+1, maxRetries+1, err, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%s: %d attempt(s) failed: %w", s.Name(), maxRetries+1, lastErr)
}
