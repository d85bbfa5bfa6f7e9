package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/deb4uuu-coder/stock-v20-scanner/internal/model"
)

// smtpTimeout caps the whole SMTP conversation for callers whose
// context carries no deadline.
const smtpTimeout = 30 * time.Second

// EmailSender delivers reports over SMTP with STARTTLS when offered.
type EmailSender struct {
	Host     string
	Port     int
	From     string
	Password string
	To       []string
}

// NewEmailSender creates an SMTP report sender.
func NewEmailSender(host string, port int, from, password string, to []string) *EmailSender {
	return &EmailSender{Host: host, Port: port, From: from, Password: password, To: to}
}

func (e *EmailSender) Name() string { return "email" }

// SendReport delivers the formatted alert report as an HTML mail.
func (e *EmailSender) SendReport(ctx context.Context, alerts []model.Alert, generatedAt time.Time) error {
	subject := fmt.Sprintf("V20 Scan Alerts - %s", generatedAt.Format("02 Jan 2006"))
	body := strings.ReplaceAll(FormatReport(alerts, generatedAt), "\n", "<br>\n")
	msg := e.buildMessage(subject, body)

	log.Printf("[INFO] sending email report from %s to %s", e.From, strings.Join(e.To, ", "))

	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	_ = conn.SetDeadline(smtpDeadline(ctx, time.Now()))

	client, err := smtp.NewClient(conn, e.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: e.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if e.Password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", e.From, e.Password, e.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(e.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range e.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}
	return client.Quit()
}

// smtpDeadline picks the context deadline when one is set, otherwise
// smtpTimeout from now, so a stalled server cannot hang delivery.
func smtpDeadline(ctx context.Context, now time.Time) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return now.Add(smtpTimeout)
}

func (e *EmailSender) buildMessage(subject, htmlBody string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", e.From))
	b.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(e.To, ", ")))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.String()
}
