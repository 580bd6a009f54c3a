package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/monitor")
	t.Setenv("MONITOR_TRIGGER_TOKEN", "trigger-secret")
	t.Setenv("OPERATOR_JWT_SECRET", "operator-secret")
	t.Setenv("MAILER_SERVICE_URL", "http://mailer.internal")
	t.Setenv("HOSTING_API_URL", "http://hosting.internal")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MonitorSchedule != "0 6 * * *" {
		t.Fatalf("schedule = %q, want daily default", cfg.MonitorSchedule)
	}
	if cfg.MonitorWorkerCount != 16 {
		t.Fatalf("worker count = %d, want 16", cfg.MonitorWorkerCount)
	}
	if cfg.MonitorPassTimeout != 300 {
		t.Fatalf("pass timeout = %d, want 300", cfg.MonitorPassTimeout)
	}
	if cfg.AdminEventExchange != "monitoring.events" {
		t.Fatalf("exchange = %q", cfg.AdminEventExchange)
	}
}

func TestLoadConfigRequiresTriggerToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONITOR_TRIGGER_TOKEN", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected LoadConfig to fail without MONITOR_TRIGGER_TOKEN")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONITOR_SCHEDULE", "*/30 * * * *")
	t.Setenv("MONITOR_WORKER_COUNT", "4")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MonitorSchedule != "*/30 * * * *" {
		t.Fatalf("schedule = %q", cfg.MonitorSchedule)
	}
	if cfg.MonitorWorkerCount != 4 {
		t.Fatalf("worker count = %d, want 4", cfg.MonitorWorkerCount)
	}
}
