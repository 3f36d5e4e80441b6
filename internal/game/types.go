package game

// Snapshot types for every persisted record. The boundary layer loads these
// at the start of an action and writes them back after the pure transition
// functions in this package have mutated them. Timestamps are unix seconds
// supplied by the caller, read once per action.

const (
	// StartingCredits is seeded into a fresh PlayerState.
	StartingCredits = uint64(1000)

	// BusinessCount is the size of the fixed catalog.
	BusinessCount = 20

	// PriceScale is the fixed-point scale for reported pool prices.
	PriceScale = uint64(1_000_000)

	// MaxTreasuryFeeBps caps swap fees at 10%.
	MaxTreasuryFeeBps = uint16(1000)
)

// GameConfig is the singleton game-wide configuration record.
type GameConfig struct {
	Admin                       string `json:"admin"`
	FeeBps                      uint16 `json:"fee_bps"`
	Paused                      bool   `json:"paused"`
	DefaultUpgradeCD            int64  `json:"default_upgrade_cd"` // seconds
	DefaultDefendCD             int64  `json:"default_defend_cd"`  // seconds
	RiskThreshold               uint32 `json:"risk_threshold"`
	RiskGrowthPerSec            uint32 `json:"risk_growth_per_sec"`
	DefendRiskReductionPerToken uint32 `json:"defend_risk_reduction_per_token"`
}

// AssetClass is an immutable template for one numbered asset class.
// A zero cooldown means "use the global default".
type AssetClass struct {
	ClassID              uint64 `json:"class_id"`
	BasePrice            uint64 `json:"base_price"`
	PriceScaleNum        uint64 `json:"price_scale_num"`
	PriceScaleDen        uint64 `json:"price_scale_den"`
	BaseYield            uint64 `json:"base_yield"`
	UpgradeCD            int64  `json:"upgrade_cd"`
	DefendCD             int64  `json:"defend_cd"`
	BaseRiskGrowthPerSec uint32 `json:"base_risk_growth_per_sec"`
}

// Holding is one (player, class) ownership record. The owner changes on a
// successful takeover; the level only ever increases.
type Holding struct {
	Player       string `json:"player"`
	ClassID      uint64 `json:"class_id"`
	Level        uint16 `json:"level"`
	Shield       uint32 `json:"shield"`
	RiskScore    uint32 `json:"risk_score"`
	LastClaimTS  int64  `json:"last_claim_ts"`
	UpgradeEndTS int64  `json:"upgrade_end_ts"` // 0 = no upgrade in flight
	LastDefendTS int64  `json:"last_defend_ts"`
	LastRiskTS   int64  `json:"last_risk_ts"`
}

// Player is the asset-game identity record. LastDefendTS gates defend
// actions globally across all of the player's holdings.
type Player struct {
	Authority    string `json:"authority"`
	LastDefendTS int64  `json:"last_defend_ts"`
}

// PlayerState is the work-game identity record carrying the credits balance
// and the streak/level progression.
type PlayerState struct {
	Owner               string  `json:"owner"`
	Credits             uint64  `json:"credits"`
	StreakCount         uint32  `json:"streak_count"`
	WorkFrequencyLevel  uint8   `json:"work_frequency_level"`
	CooldownHours       uint8   `json:"cooldown_hours"`
	LastWorkTimestamp   int64   `json:"last_work_ts"`
	TotalWorkActions    uint64  `json:"total_work_actions"`
	BusinessesOwned     []uint8 `json:"businesses_owned"`
	ActiveBusinessSlots []uint8 `json:"active_business_slots"`
	LastStreakCheck     int64   `json:"last_streak_check"`
}

// Treasury is the singleton AMM operator record. Reserves are not stored
// here; they are read live from the two vault accounts.
type Treasury struct {
	BaseVault         string `json:"base_vault"`
	QuoteVault        string `json:"quote_vault"`
	FeeBps            uint16 `json:"fee_bps"`
	MaxTradeUnits     uint64 `json:"max_trade_units"`
	Paused            bool   `json:"paused"`
	MinBaseLiquidity  uint64 `json:"min_base_liquidity"`
	MinQuoteLiquidity uint64 `json:"min_quote_liquidity"`
	LastParamsUpdate  int64  `json:"last_params_update"`
	Authority         string `json:"authority"`
}

// GameParamsUpdate is the partial-update argument for set_params. Nil fields
// keep the current value; fields are applied in declaration order.
type GameParamsUpdate struct {
	FeeBps                      *uint16
	DefaultUpgradeCD            *int64
	DefaultDefendCD             *int64
	RiskThreshold               *uint32
	RiskGrowthPerSec            *uint32
	DefendRiskReductionPerToken *uint32
}

// Apply writes the present fields onto cfg and returns the previous values
// for the audit notification.
func (u GameParamsUpdate) Apply(cfg *GameConfig) GameConfig {
	prev := *cfg
	if u.FeeBps != nil {
		cfg.FeeBps = *u.FeeBps
	}
	if u.DefaultUpgradeCD != nil {
		cfg.DefaultUpgradeCD = *u.DefaultUpgradeCD
	}
	if u.DefaultDefendCD != nil {
		cfg.DefaultDefendCD = *u.DefaultDefendCD
	}
	if u.RiskThreshold != nil {
		cfg.RiskThreshold = *u.RiskThreshold
	}
	if u.RiskGrowthPerSec != nil {
		cfg.RiskGrowthPerSec = *u.RiskGrowthPerSec
	}
	if u.DefendRiskReductionPerToken != nil {
		cfg.DefendRiskReductionPerToken = *u.DefendRiskReductionPerToken
	}
	return prev
}

// TreasuryParamsUpdate is the partial-update argument for set_treasury_params.
type TreasuryParamsUpdate struct {
	FeeBps        *uint16
	MaxTradeUnits *uint64
	Paused        *bool
}

// Apply validates and writes the present fields onto t and returns the
// previous values. A fee above MaxTreasuryFeeBps is rejected without
// touching any field.
func (u TreasuryParamsUpdate) Apply(t *Treasury, now int64) (Treasury, error) {
	if u.FeeBps != nil && *u.FeeBps > MaxTreasuryFeeBps {
		return Treasury{}, ErrFeeTooHigh
	}
	prev := *t
	if u.FeeBps != nil {
		t.FeeBps = *u.FeeBps
	}
	if u.MaxTradeUnits != nil {
		t.MaxTradeUnits = *u.MaxTradeUnits
	}
	if u.Paused != nil {
		t.Paused = *u.Paused
	}
	t.LastParamsUpdate = now
	return prev, nil
}
