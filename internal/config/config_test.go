package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("DB_DSN", "postgres://localhost/booking_test")
	t.Setenv("ADMIN_TELEGRAM_ID", "100500")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AdminTelegramID != 100500 {
		t.Errorf("AdminTelegramID = %d, want 100500", cfg.AdminTelegramID)
	}
	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment default = %q, want development", cfg.Environment)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("default Port = %q, want 5000", cfg.Port)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing TELEGRAM_TOKEN")
	}

	setRequiredEnv(t)
	t.Setenv("ADMIN_TELEGRAM_ID", "")

	if _, err := Load(); err == nil {
		t.Error("expected error for missing ADMIN_TELEGRAM_ID")
	}
}

func TestLoad_MalformedAdminID(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_TELEGRAM_ID", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed ADMIN_TELEGRAM_ID")
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{AdminTelegramID: 100500}

	if !cfg.IsAdmin(100500) {
		t.Error("configured id must be admin")
	}
	if cfg.IsAdmin(42) {
		t.Error("other ids must not be admin")
	}
}
