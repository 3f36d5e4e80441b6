package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGenesis(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGenesis(t *testing.T) {
	path := writeGenesis(t, `
game:
  admin: admin-wallet
  fee_bps: 250
  default_upgrade_cd: 3600
  default_defend_cd: 1800
  risk_threshold: 10000
  risk_growth_per_sec: 5
  defend_risk_reduction_per_token: 10
treasury:
  authority: admin-wallet
  fee_bps: 30
  max_trade_units: 1000000
classes:
  - class_id: 1
    base_price: 10000
    price_scale_num: 115
    price_scale_den: 100
  - class_id: 2
    base_price: 50000
    price_scale_num: 120
    price_scale_den: 100
    upgrade_cd: 7200
`)
	g, err := LoadGenesis(path)
	if err != nil {
		t.Fatalf("LoadGenesis: %v", err)
	}
	if g.Game.Admin != "admin-wallet" {
		t.Errorf("admin = %q", g.Game.Admin)
	}
	if g.Game.FeeBps != 250 {
		t.Errorf("fee_bps = %d", g.Game.FeeBps)
	}
	if g.Treasury == nil || g.Treasury.MaxTradeUnits != 1_000_000 {
		t.Errorf("treasury = %+v", g.Treasury)
	}
	if len(g.Classes) != 2 {
		t.Fatalf("classes = %d", len(g.Classes))
	}
	if g.Classes[1].UpgradeCD != 7200 {
		t.Errorf("class 2 upgrade_cd = %d", g.Classes[1].UpgradeCD)
	}
	if g.Classes[0].UpgradeCD != 0 {
		t.Errorf("class 1 upgrade_cd = %d, want 0 (global default)", g.Classes[0].UpgradeCD)
	}
}

func TestLoadGenesisMissingAdmin(t *testing.T) {
	path := writeGenesis(t, "game:\n  fee_bps: 100\n")
	if _, err := LoadGenesis(path); err == nil {
		t.Fatal("expected error for missing admin")
	}
}

func TestLoadGenesisIncompleteClass(t *testing.T) {
	path := writeGenesis(t, `
game:
  admin: a
classes:
  - class_id: 1
    base_price: 0
    price_scale_num: 115
    price_scale_den: 100
`)
	if _, err := LoadGenesis(path); err == nil {
		t.Fatal("expected error for zero base_price")
	}
}
