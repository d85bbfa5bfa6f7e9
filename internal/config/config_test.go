package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileEnvAndDefaults(t *testing.T) {
	clearEnvOverrides(t)
	path := writeConfig(t, `
watchlist:
  path: lists/stocks.csv
email:
  host: smtp.gmail.com
  from: scanner@example.com
  to:
    - alerts@example.com
`)
	t.Setenv("SMTP_PASSWORD", "secret-from-env")
	t.Setenv("SCAN_CRON", "0 0 17 * * 1-5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Watchlist.Path != "lists/stocks.csv" {
		t.Errorf("file value lost: %s", cfg.Watchlist.Path)
	}
	if cfg.Email.Password != "secret-from-env" {
		t.Errorf("env override not applied: %q", cfg.Email.Password)
	}
	if cfg.Schedule.ScanCron != "0 0 17 * * 1-5" {
		t.Errorf("env cron override not applied: %q", cfg.Schedule.ScanCron)
	}
	if cfg.DataSource.Provider != "yahoo" {
		t.Errorf("default provider not applied: %q", cfg.DataSource.Provider)
	}
	if cfg.DataSource.SymbolSuffix != ".NS" {
		t.Errorf("default suffix not applied: %q", cfg.DataSource.SymbolSuffix)
	}
	if cfg.Schedule.Timezone != "Asia/Kolkata" {
		t.Errorf("default timezone not applied: %q", cfg.Schedule.Timezone)
	}
	if cfg.Email.Port != 587 {
		t.Errorf("default smtp port not applied: %d", cfg.Email.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate: %v", err)
	}
}

func TestLoad_MissingFileStillUsable(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not fail load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("env-only config should validate: %v", err)
	}
}

// clearEnvOverrides keeps the ambient environment out of load tests.
func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WATCHLIST_PATH", "DATA_PROVIDER", "DATA_BASE_URL", "DATA_API_KEY",
		"SMTP_PASSWORD", "EMAIL_TO", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"SCAN_CRON", "HTTPS_PROXY", "SQLITE_PATH", "RUN_ONCE", "RUN_ON_START",
	} {
		t.Setenv(k, "")
	}
}

func TestValidate_RequiresDeliveryChannel(t *testing.T) {
	clearEnvOverrides(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected error without any delivery channel")
	}
	if !strings.Contains(err.Error(), "delivery channel") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_PartialEmailNamesMissingField(t *testing.T) {
	clearEnvOverrides(t)
	path := writeConfig(t, `
email:
  host: smtp.gmail.com
  from: scanner@example.com
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected error for partial email config")
	}
	if !strings.Contains(err.Error(), "email.to") {
		t.Errorf("error should name the missing field: %v", err)
	}
}

func TestValidate_RejectsUnknownProvider(t *testing.T) {
	clearEnvOverrides(t)
	path := writeConfig(t, `
data_source:
  provider: carrier-pigeon
telegram:
  bot_token: token
  chat_id: "42"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestValidate_RejectsBadTimezone(t *testing.T) {
	clearEnvOverrides(t)
	path := writeConfig(t, `
schedule:
  timezone: Mars/Olympus
telegram:
  bot_token: token
  chat_id: "42"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
