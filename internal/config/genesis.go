package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Genesis describes the one-time bootstrap applied on API startup when
// AWARS_GENESIS_PATH is set: game parameters, pool parameters, and the
// initial asset-class catalog. Applying it twice is harmless; the records are
// created only if missing.
type Genesis struct {
	Game     GenesisGame    `yaml:"game"`
	Treasury *GenesisPool   `yaml:"treasury"`
	Classes  []GenesisClass `yaml:"classes"`
}

type GenesisGame struct {
	Admin                       string `yaml:"admin"`
	FeeBps                      uint16 `yaml:"fee_bps"`
	DefaultUpgradeCD            int64  `yaml:"default_upgrade_cd"`
	DefaultDefendCD             int64  `yaml:"default_defend_cd"`
	RiskThreshold               uint32 `yaml:"risk_threshold"`
	RiskGrowthPerSec            uint32 `yaml:"risk_growth_per_sec"`
	DefendRiskReductionPerToken uint32 `yaml:"defend_risk_reduction_per_token"`
}

type GenesisPool struct {
	Authority         string `yaml:"authority"`
	FeeBps            uint16 `yaml:"fee_bps"`
	MaxTradeUnits     uint64 `yaml:"max_trade_units"`
	MinBaseLiquidity  uint64 `yaml:"min_base_liquidity"`
	MinQuoteLiquidity uint64 `yaml:"min_quote_liquidity"`
}

type GenesisClass struct {
	ClassID              uint64 `yaml:"class_id"`
	BasePrice            uint64 `yaml:"base_price"`
	PriceScaleNum        uint64 `yaml:"price_scale_num"`
	PriceScaleDen        uint64 `yaml:"price_scale_den"`
	BaseYield            uint64 `yaml:"base_yield"`
	UpgradeCD            int64  `yaml:"upgrade_cd"`
	DefendCD             int64  `yaml:"defend_cd"`
	BaseRiskGrowthPerSec uint32 `yaml:"base_risk_growth_per_sec"`
}

func LoadGenesis(path string) (Genesis, error) {
	var g Genesis
	data, err := os.ReadFile(path)
	if err != nil {
		return g, err
	}
	if err := yaml.Unmarshal(data, &g); err != nil {
		return g, fmt.Errorf("parse genesis %s: %w", path, err)
	}
	if g.Game.Admin == "" {
		return g, fmt.Errorf("genesis %s: game.admin is required", path)
	}
	for i, c := range g.Classes {
		if c.ClassID == 0 || c.BasePrice == 0 || c.PriceScaleNum == 0 || c.PriceScaleDen == 0 {
			return g, fmt.Errorf("genesis %s: class entry %d is incomplete", path, i)
		}
	}
	return g, nil
}
