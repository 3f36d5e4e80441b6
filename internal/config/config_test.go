package config

import "testing"

func TestLoadAPIFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/awars")
	t.Setenv("AWARS_ADMIN_TOKEN", "secret")
	t.Setenv("PORT", "9090")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("LoadAPIFromEnv: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("AdminToken = %q", cfg.AdminToken)
	}
}

func TestLoadAPIFromEnvRequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AWARS_ADMIN_TOKEN", "secret")
	if _, err := LoadAPIFromEnv(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadWorkerFromEnvDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/awars")
	t.Setenv("AWARS_RISK_SWEEP_SPEC", "")
	t.Setenv("AWARS_PRICE_SNAPSHOT_SPEC", "")

	cfg, err := LoadWorkerFromEnv()
	if err != nil {
		t.Fatalf("LoadWorkerFromEnv: %v", err)
	}
	if cfg.RiskSweepSpec != "@every 1m" {
		t.Fatalf("RiskSweepSpec = %q", cfg.RiskSweepSpec)
	}
	if cfg.PriceSnapshotSpec != "@every 5m" {
		t.Fatalf("PriceSnapshotSpec = %q", cfg.PriceSnapshotSpec)
	}
}
