package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.HTTPPort != 3000 {
		t.Fatalf("HTTPPort = %d, want 3000", cfg.HTTPPort)
	}
	if cfg.DataFile != "data/appointments.json" {
		t.Fatalf("DataFile = %q, want default", cfg.DataFile)
	}
	if cfg.ReadOnlyFS {
		t.Fatal("ReadOnlyFS = true, want false by default")
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("READ_ONLY_FS", "true")
	t.Setenv("DATA_FILE", "/tmp/appts.json")
	t.Setenv("CLINIBOOK_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Fatalf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if !cfg.ReadOnlyFS {
		t.Fatal("ReadOnlyFS = false, want true")
	}
	if cfg.DataFile != "/tmp/appts.json" {
		t.Fatalf("DataFile = %q, want override", cfg.DataFile)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("Load with invalid duration did not error")
	}
}

func TestMailFromEnv_ReadsFreshEachCall(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "clinic@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")

	mail := MailFromEnv()
	if mail.Host != "smtp.example.com" {
		t.Fatalf("Host = %q", mail.Host)
	}
	if mail.Port != 587 {
		t.Fatalf("Port = %d, want 587 default", mail.Port)
	}
	if mail.From != "clinic@example.com" {
		t.Fatalf("From = %q, want fallback to SMTP_USER", mail.From)
	}
	if !mail.Configured() {
		t.Fatal("Configured() = false")
	}

	t.Setenv("ADMIN_EMAIL", "oncall@example.com")
	if got := MailFromEnv().AdminEmail; got != "oncall@example.com" {
		t.Fatalf("AdminEmail after env change = %q, want fresh value", got)
	}
}

func TestMailFromEnv_Unconfigured(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_USER", "")
	t.Setenv("MAIL_FROM", "")

	if MailFromEnv().Configured() {
		t.Fatal("Configured() = true with empty environment")
	}
}
