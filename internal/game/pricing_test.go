package game

import (
	"errors"
	"math"
	"testing"
)

func TestPriceForLevelBaseCases(t *testing.T) {
	for _, level := range []uint16{0, 1} {
		got, err := PriceForLevel(1000, 3, 2, level)
		if err != nil {
			t.Fatalf("level %d: unexpected error: %v", level, err)
		}
		if got != 1000 {
			t.Fatalf("level %d: got %d want base price 1000", level, got)
		}
	}
}

func TestPriceForLevelRecurrence(t *testing.T) {
	// price(L) must equal price(L-1) * num / den for every L >= 2,
	// because each power step floors independently.
	const base, num, den = 1_000_000, 115, 100
	prev, err := PriceForLevel(base, num, den, 1)
	if err != nil {
		t.Fatalf("level 1: %v", err)
	}
	for level := uint16(2); level <= 20; level++ {
		got, err := PriceForLevel(base, num, den, level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		want := prev * num / den
		if got != want {
			t.Fatalf("level %d: got %d want %d (prev %d)", level, got, want, prev)
		}
		prev = got
	}
}

func TestPriceForLevelZeroDenominator(t *testing.T) {
	if _, err := PriceForLevel(1000, 3, 0, 2); !errors.Is(err, ErrMathOverflow) {
		t.Fatalf("expected ErrMathOverflow for zero denominator, got %v", err)
	}
}

func TestPriceForLevelOverflow(t *testing.T) {
	// Doubling from MaxUint64 exceeds the output width within a few steps.
	if _, err := PriceForLevel(math.MaxUint64, 2, 1, 3); !errors.Is(err, ErrMathOverflow) {
		t.Fatalf("expected ErrMathOverflow, got %v", err)
	}
}

func TestTakeoverCostPremium(t *testing.T) {
	tests := []struct {
		base  uint64
		num   uint64
		den   uint64
		level uint16
	}{
		{1000, 3, 2, 1},
		{1000, 3, 2, 5},
		{7, 1, 1, 1}, // floor: 7*5/4 = 8
		{123456789, 110, 100, 9},
	}
	for _, tc := range tests {
		price, err := PriceForLevel(tc.base, tc.num, tc.den, tc.level)
		if err != nil {
			t.Fatalf("price: %v", err)
		}
		cost, err := TakeoverCost(tc.base, tc.num, tc.den, tc.level)
		if err != nil {
			t.Fatalf("takeover: %v", err)
		}
		if want := price * 5 / 4; cost != want {
			t.Fatalf("level %d: takeover cost %d want %d", tc.level, cost, want)
		}
	}
}

func TestCooldownOverride(t *testing.T) {
	cfg := &GameConfig{DefaultUpgradeCD: 3600, DefaultDefendCD: 7200}

	withOverride := &AssetClass{UpgradeCD: 600, DefendCD: 900}
	if got := UpgradeCooldown(withOverride, cfg); got != 600 {
		t.Fatalf("upgrade override: got %d want 600", got)
	}
	if got := DefendCooldown(withOverride, cfg); got != 900 {
		t.Fatalf("defend override: got %d want 900", got)
	}

	// Zero means "use the default", independently per cooldown.
	mixed := &AssetClass{UpgradeCD: 0, DefendCD: 900}
	if got := UpgradeCooldown(mixed, cfg); got != 3600 {
		t.Fatalf("upgrade default: got %d want 3600", got)
	}
	if got := DefendCooldown(mixed, cfg); got != 900 {
		t.Fatalf("defend override on mixed class: got %d want 900", got)
	}
}

func TestChargeWithFee(t *testing.T) {
	tests := []struct {
		amount    uint64
		feeBps    uint16
		wantTotal uint64
		wantFee   uint64
	}{
		{10_000, 250, 10_250, 250},
		{10_000, 0, 10_000, 0},
		{999, 250, 1023, 24}, // floor on the fee
		{1, 9999, 1, 0},
	}
	for _, tc := range tests {
		total, fee, err := ChargeWithFee(tc.amount, tc.feeBps)
		if err != nil {
			t.Fatalf("amount=%d: %v", tc.amount, err)
		}
		if total != tc.wantTotal || fee != tc.wantFee {
			t.Fatalf("amount=%d bps=%d: got total=%d fee=%d want total=%d fee=%d",
				tc.amount, tc.feeBps, total, fee, tc.wantTotal, tc.wantFee)
		}
	}
}

func TestChargeWithFeeOverflow(t *testing.T) {
	if _, _, err := ChargeWithFee(math.MaxUint64, 1); !errors.Is(err, ErrMathOverflow) {
		t.Fatalf("expected ErrMathOverflow on total overflow, got %v", err)
	}
}
