// Package config loads process configuration from the environment and the
// optional YAML genesis file that seeds game parameters and asset classes.
package config

import (
	"fmt"
	"os"
	"strings"
)

type APIConfig struct {
	Addr        string
	DatabaseURL string
	AdminToken  string
	GenesisPath string
}

type WorkerConfig struct {
	DatabaseURL       string
	RiskSweepSpec     string
	PriceSnapshotSpec string
}

type CLIConfig struct {
	APIBaseURL string
	AdminToken string
}

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("AWARS_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:        addr,
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		AdminToken:  strings.TrimSpace(os.Getenv("AWARS_ADMIN_TOKEN")),
		GenesisPath: envDefault("AWARS_GENESIS_PATH", ""),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AdminToken == "" {
		return cfg, fmt.Errorf("AWARS_ADMIN_TOKEN is required")
	}
	return cfg, nil
}

func LoadWorkerFromEnv() (WorkerConfig, error) {
	cfg := WorkerConfig{
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RiskSweepSpec:     envDefault("AWARS_RISK_SWEEP_SPEC", "@every 1m"),
		PriceSnapshotSpec: envDefault("AWARS_PRICE_SNAPSHOT_SPEC", "@every 5m"),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("AWC_API_BASE_URL", "http://localhost:8080"), "/"),
		AdminToken: strings.TrimSpace(os.Getenv("AWARS_ADMIN_TOKEN")),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

