package game

import "math"

// Risk accrues linearly over elapsed time and is the only quantity in the
// engine that clamps instead of failing: risk and shield are game-feel
// counters, not economic amounts.

// UpdateRisk applies dt * (global + class growth) to the holding's risk score,
// saturating at the uint32 ceiling. It must run before any risk-threshold
// comparison or risk-reducing action so a stale score never blocks a rightful
// takeover or wastes a defend.
func UpdateRisk(h *Holding, class *AssetClass, cfg *GameConfig, now int64) {
	dt := now - h.LastRiskTS
	if dt <= 0 {
		return
	}
	growth := uint64(cfg.RiskGrowthPerSec) + uint64(class.BaseRiskGrowthPerSec)
	increase := saturatingMulU64(growth, uint64(dt))
	h.RiskScore = saturatingAddU32(h.RiskScore, increase)
	h.LastRiskTS = now
}

// ApplyDefense spends tokens on a holding: risk drops by
// spend * reduction-per-token (floored at zero) and the shield rises by
// spend / 1000, truncating.
func ApplyDefense(h *Holding, cfg *GameConfig, spend uint64) {
	reduction := saturatingMulU64(spend, uint64(cfg.DefendRiskReductionPerToken))
	h.RiskScore = saturatingSubU32(h.RiskScore, reduction)
	h.Shield = saturatingAddU32(h.Shield, spend/1000)
}

func saturatingMulU64(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}

func saturatingAddU32(a uint32, b uint64) uint32 {
	sum := uint64(a) + b
	if sum < uint64(a) || sum > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(sum)
}

func saturatingSubU32(a uint32, b uint64) uint32 {
	if b >= uint64(a) {
		return 0
	}
	return a - uint32(b)
}
