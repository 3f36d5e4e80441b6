package game

import (
	"errors"
	"testing"
)

func lifecycleFixture() (*AssetClass, *GameConfig) {
	class := &AssetClass{
		ClassID:              7,
		BasePrice:            10_000,
		PriceScaleNum:        3,
		PriceScaleDen:        2,
		UpgradeCD:            0, // use default
		DefendCD:             0,
		BaseRiskGrowthPerSec: 1,
	}
	cfg := &GameConfig{
		FeeBps:                      250,
		DefaultUpgradeCD:            3600,
		DefaultDefendCD:             1800,
		RiskThreshold:               10_000,
		RiskGrowthPerSec:            1,
		DefendRiskReductionPerToken: 10,
	}
	return class, cfg
}

func TestNewHolding(t *testing.T) {
	class, cfg := lifecycleFixture()
	h, cost, err := NewHolding("alice", class, cfg, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Level-1 price is base, plus 2.5% fee.
	if cost != 10_250 {
		t.Fatalf("purchase cost: got %d want 10250", cost)
	}
	if h.Level != 1 || h.UpgradeEndTS != 0 || h.Shield != 0 || h.RiskScore != 0 {
		t.Fatalf("fresh holding state wrong: %+v", h)
	}
	if h.LastClaimTS != 5000 || h.LastDefendTS != 5000 || h.LastRiskTS != 5000 {
		t.Fatalf("timestamps not initialized to purchase time: %+v", h)
	}
}

func TestQueueUpgrade(t *testing.T) {
	class, cfg := lifecycleFixture()
	h, _, _ := NewHolding("alice", class, cfg, 5000)

	cost, err := QueueUpgrade(h, class, cfg, 6000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Level-2 price is 10000*3/2 = 15000, plus fee.
	if cost != 15_375 {
		t.Fatalf("upgrade cost: got %d want 15375", cost)
	}
	if h.UpgradeEndTS != 6000+3600 {
		t.Fatalf("upgrade end ts: got %d want %d", h.UpgradeEndTS, 6000+3600)
	}

	if _, err := QueueUpgrade(h, class, cfg, 6100); !errors.Is(err, ErrUpgradeInProgress) {
		t.Fatalf("second queue should fail with ErrUpgradeInProgress, got %v", err)
	}
}

func TestQueueUpgradeUsesClassOverride(t *testing.T) {
	class, cfg := lifecycleFixture()
	class.UpgradeCD = 120
	h, _, _ := NewHolding("alice", class, cfg, 5000)
	if _, err := QueueUpgrade(h, class, cfg, 6000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.UpgradeEndTS != 6120 {
		t.Fatalf("override cooldown ignored: end ts %d", h.UpgradeEndTS)
	}
}

func TestFinishUpgrade(t *testing.T) {
	class, cfg := lifecycleFixture()
	h, _, _ := NewHolding("alice", class, cfg, 5000)

	if err := FinishUpgrade(h, 6000); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("finishing with nothing pending should fail, got %v", err)
	}

	if _, err := QueueUpgrade(h, class, cfg, 6000); err != nil {
		t.Fatalf("queue: %v", err)
	}
	if err := FinishUpgrade(h, 6000+3599); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("finishing early should fail, got %v", err)
	}
	if err := FinishUpgrade(h, 6000+3600); err != nil {
		t.Fatalf("finishing on time: %v", err)
	}
	if h.Level != 2 || h.UpgradeEndTS != 0 {
		t.Fatalf("post-upgrade state wrong: %+v", h)
	}
}

func TestDefendCooldownIsGlobalPerPlayer(t *testing.T) {
	class, cfg := lifecycleFixture()
	p := &Player{Authority: "alice", LastDefendTS: 10_000}
	h1, _, _ := NewHolding("alice", class, cfg, 10_000)
	h2, _, _ := NewHolding("alice", class, cfg, 10_000)
	h2.ClassID = 8

	if err := Defend(h1, p, class, cfg, 100, 10_000+1799); !errors.Is(err, ErrCooldownNotExpired) {
		t.Fatalf("defend inside cooldown should fail, got %v", err)
	}
	if err := Defend(h1, p, class, cfg, 100, 10_000+1800); err != nil {
		t.Fatalf("defend at cooldown boundary: %v", err)
	}
	// The player-level timestamp moved, so a different holding is gated too.
	if err := Defend(h2, p, class, cfg, 100, 10_000+1800+60); !errors.Is(err, ErrCooldownNotExpired) {
		t.Fatalf("cooldown must be global across holdings, got %v", err)
	}
}

func TestDefendRefreshesRiskBeforeReduction(t *testing.T) {
	class, cfg := lifecycleFixture()
	p := &Player{Authority: "alice", LastDefendTS: 0}
	h, _, _ := NewHolding("alice", class, cfg, 1000)

	// 1000s of accrual at 2/sec pending, then 50 tokens * 10 reduction.
	if err := Defend(h, p, class, cfg, 50, 2000); err != nil {
		t.Fatalf("defend: %v", err)
	}
	if h.RiskScore != 1500 {
		t.Fatalf("risk after accrue-then-reduce: got %d want 1500", h.RiskScore)
	}
	if h.LastDefendTS != 2000 || p.LastDefendTS != 2000 {
		t.Fatalf("defend timestamps not updated: holding=%d player=%d", h.LastDefendTS, p.LastDefendTS)
	}
}

func TestTakeoverBelowThreshold(t *testing.T) {
	class, cfg := lifecycleFixture()
	h, _, _ := NewHolding("alice", class, cfg, 1000)

	// 100s of accrual at 2/sec is far below the 10000 threshold.
	if _, err := Takeover(h, "mallory", class, cfg, 1100); !errors.Is(err, ErrAssetNotAtRisk) {
		t.Fatalf("takeover below threshold should fail, got %v", err)
	}
	if h.Player != "alice" {
		t.Fatalf("failed takeover must not transfer ownership")
	}
	// The risk refresh itself still sticks.
	if h.RiskScore != 200 || h.LastRiskTS != 1100 {
		t.Fatalf("risk refresh lost: score=%d ts=%d", h.RiskScore, h.LastRiskTS)
	}
}

func TestTakeoverAtThreshold(t *testing.T) {
	class, cfg := lifecycleFixture()
	h, _, _ := NewHolding("alice", class, cfg, 1000)
	h.Level = 3
	h.Shield = 42
	h.UpgradeEndTS = 99_999

	// 5000s at 2/sec accrues exactly the 10000 threshold.
	now := int64(1000 + 5000)
	cost, err := Takeover(h, "mallory", class, cfg, now)
	if err != nil {
		t.Fatalf("takeover at threshold: %v", err)
	}

	// Level-3 price: 10000*3/2*3/2 = 22500; premium 22500*5/4 = 28125; fee 2.5%.
	if cost != 28_828 {
		t.Fatalf("takeover cost: got %d want 28828", cost)
	}
	if h.Player != "mallory" {
		t.Fatalf("ownership not transferred: %s", h.Player)
	}
	if h.Shield != 0 || h.UpgradeEndTS != 0 {
		t.Fatalf("shield/pending upgrade not reset: %+v", h)
	}
	if h.RiskScore != cfg.RiskThreshold/4 {
		t.Fatalf("risk baseline: got %d want %d", h.RiskScore, cfg.RiskThreshold/4)
	}
	if h.LastDefendTS != now || h.LastRiskTS != now {
		t.Fatalf("takeover timestamps not reset: %+v", h)
	}
	// Level survives the takeover.
	if h.Level != 3 {
		t.Fatalf("level must not change on takeover, got %d", h.Level)
	}
}

func TestGameParamsPartialUpdate(t *testing.T) {
	_, cfg := lifecycleFixture()
	newFee := uint16(100)
	newThreshold := uint32(50_000)

	prev := GameParamsUpdate{FeeBps: &newFee, RiskThreshold: &newThreshold}.Apply(cfg)

	if prev.FeeBps != 250 || prev.RiskThreshold != 10_000 {
		t.Fatalf("previous values wrong: %+v", prev)
	}
	if cfg.FeeBps != 100 || cfg.RiskThreshold != 50_000 {
		t.Fatalf("updated values wrong: %+v", cfg)
	}
	// Absent fields keep their values.
	if cfg.DefaultUpgradeCD != 3600 || cfg.RiskGrowthPerSec != 1 {
		t.Fatalf("absent fields mutated: %+v", cfg)
	}
}

func TestTreasuryParamsUpdateRejectsHighFee(t *testing.T) {
	tr := &Treasury{FeeBps: 100, MaxTradeUnits: 500}
	bad := uint16(1001)
	units := uint64(900)
	if _, err := (TreasuryParamsUpdate{FeeBps: &bad, MaxTradeUnits: &units}).Apply(tr, 50); !errors.Is(err, ErrFeeTooHigh) {
		t.Fatalf("expected ErrFeeTooHigh, got %v", err)
	}
	// Rejected update must not partially apply.
	if tr.FeeBps != 100 || tr.MaxTradeUnits != 500 {
		t.Fatalf("rejected update leaked: %+v", tr)
	}
}
