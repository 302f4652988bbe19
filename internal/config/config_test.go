package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port == "" {
		t.Error("Port default missing")
	}
	if cfg.DBMaxConns <= 0 {
		t.Errorf("DBMaxConns = %d, want positive default", cfg.DBMaxConns)
	}
	if cfg.DBMinConns <= 0 || cfg.DBMinConns > cfg.DBMaxConns {
		t.Errorf("DBMinConns = %d, want positive default within DBMaxConns=%d", cfg.DBMinConns, cfg.DBMaxConns)
	}
	if cfg.AuditInterval == "" {
		t.Error("AuditInterval default missing")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_MIN_CONNS", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBMaxConns != 40 {
		t.Errorf("DBMaxConns = %d, want 40", cfg.DBMaxConns)
	}
	if cfg.DBMinConns != 8 {
		t.Errorf("DBMinConns = %d, want 8", cfg.DBMinConns)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
