package game

import (
	"math"
	"testing"
)

func riskFixture() (*Holding, *AssetClass, *GameConfig) {
	h := &Holding{Player: "alice", ClassID: 1, LastRiskTS: 1000}
	class := &AssetClass{ClassID: 1, BaseRiskGrowthPerSec: 3}
	cfg := &GameConfig{RiskGrowthPerSec: 2, DefendRiskReductionPerToken: 10}
	return h, class, cfg
}

func TestUpdateRiskLinearAccrual(t *testing.T) {
	h, class, cfg := riskFixture()
	UpdateRisk(h, class, cfg, 1100)
	// (2 + 3) per sec over 100s
	if h.RiskScore != 500 {
		t.Fatalf("risk after 100s: got %d want 500", h.RiskScore)
	}
	if h.LastRiskTS != 1100 {
		t.Fatalf("last risk ts not advanced: %d", h.LastRiskTS)
	}
}

func TestUpdateRiskAdditiveOverSplitIntervals(t *testing.T) {
	// Accruing over [t0,t2] must equal accruing over [t0,t1] then [t1,t2].
	whole, class, cfg := riskFixture()
	split, _, _ := riskFixture()

	UpdateRisk(whole, class, cfg, 5000)

	UpdateRisk(split, class, cfg, 2345)
	UpdateRisk(split, class, cfg, 5000)

	if whole.RiskScore != split.RiskScore {
		t.Fatalf("split accrual diverged: whole=%d split=%d", whole.RiskScore, split.RiskScore)
	}
}

func TestUpdateRiskIdempotentBoundary(t *testing.T) {
	h, class, cfg := riskFixture()
	UpdateRisk(h, class, cfg, 2000)
	score := h.RiskScore

	// Same timestamp again: no double counting.
	UpdateRisk(h, class, cfg, 2000)
	if h.RiskScore != score {
		t.Fatalf("risk double counted at boundary: %d -> %d", score, h.RiskScore)
	}

	// Clock going backwards accrues nothing and keeps the newer timestamp.
	UpdateRisk(h, class, cfg, 1500)
	if h.RiskScore != score || h.LastRiskTS != 2000 {
		t.Fatalf("backwards clock mutated state: score=%d ts=%d", h.RiskScore, h.LastRiskTS)
	}
}

func TestUpdateRiskSaturates(t *testing.T) {
	h, class, cfg := riskFixture()
	cfg.RiskGrowthPerSec = math.MaxUint32
	UpdateRisk(h, class, cfg, h.LastRiskTS+1_000_000)
	if h.RiskScore != math.MaxUint32 {
		t.Fatalf("risk should clamp at ceiling, got %d", h.RiskScore)
	}
}

func TestApplyDefense(t *testing.T) {
	h, _, cfg := riskFixture()
	h.RiskScore = 10_000
	h.Shield = 5

	ApplyDefense(h, cfg, 500)
	if h.RiskScore != 5_000 {
		t.Fatalf("risk after defense: got %d want 5000", h.RiskScore)
	}
	// 500 / 1000 truncates to 0.
	if h.Shield != 5 {
		t.Fatalf("shield should truncate sub-1000 spend, got %d", h.Shield)
	}

	ApplyDefense(h, cfg, 2_500)
	if h.Shield != 7 {
		t.Fatalf("shield after 2500 spend: got %d want 7", h.Shield)
	}
}

func TestApplyDefenseFloorsAtZero(t *testing.T) {
	h, _, cfg := riskFixture()
	h.RiskScore = 100
	ApplyDefense(h, cfg, 1_000_000)
	if h.RiskScore != 0 {
		t.Fatalf("risk must floor at zero, got %d", h.RiskScore)
	}
}
