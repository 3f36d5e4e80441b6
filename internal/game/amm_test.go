package game

import (
	"errors"
	"testing"
)

func poolFixture() *Treasury {
	return &Treasury{
		BaseVault:         "vault:base",
		QuoteVault:        "vault:quote",
		FeeBps:            100,
		MaxTradeUnits:     1_000_000,
		Paused:            false,
		MinBaseLiquidity:  1_000_000,
		MinQuoteLiquidity: 100_000,
	}
}

func TestSwapQuoteForBaseWorkedScenario(t *testing.T) {
	tr := poolFixture()
	// k = 2,000,000 * 200,000 = 400,000,000,000
	res, err := SwapQuoteForBase(tr, 2_000_000, 200_000, 10_000, 1000, 0)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if res.NewQuoteReserve != 201_000 {
		t.Fatalf("new quote reserve: got %d want 201000", res.NewQuoteReserve)
	}
	if res.NewBaseReserve != 1_990_049 {
		t.Fatalf("new base reserve: got %d want 1990049", res.NewBaseReserve)
	}
	if res.GrossOut != 9_951 {
		t.Fatalf("gross out: got %d want 9951", res.GrossOut)
	}
	if res.Fee != 99 {
		t.Fatalf("fee: got %d want 99", res.Fee)
	}
	if res.NetOut != 9_852 {
		t.Fatalf("net out: got %d want 9852", res.NetOut)
	}
}

func TestSwapPreservesConstantProduct(t *testing.T) {
	tr := poolFixture()
	rBase, rQuote := uint64(2_000_000), uint64(200_000)
	k := rBase * rQuote

	res, err := SwapQuoteForBase(tr, rBase, rQuote, 100_000, 5000, 0)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	// Floor division rounds the payout up to the trader's benefit on the
	// quoted reserves, so the post-trade product lands at or just under k.
	if res.NewBaseReserve*res.NewQuoteReserve > k {
		t.Fatalf("k increased on quoted reserves: %d * %d > %d", res.NewBaseReserve, res.NewQuoteReserve, k)
	}
	// The vault keeps the fee, so counting what actually left the pool the
	// product never drops below k.
	vaultBase := rBase - res.NetOut
	if vaultBase*res.NewQuoteReserve < k {
		t.Fatalf("vault-side k decreased after fee retention")
	}
}

func TestSwapBaseForQuoteMirrors(t *testing.T) {
	tr := poolFixture()
	res, err := SwapBaseForQuote(tr, 2_000_000, 200_000, 50_000, 10_000, 0)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	// k=4e11, new base 2,010,000, new quote floor(4e11/2010000)=199004.
	if res.NewBaseReserve != 2_010_000 || res.NewQuoteReserve != 199_004 {
		t.Fatalf("reserves: got base=%d quote=%d", res.NewBaseReserve, res.NewQuoteReserve)
	}
	if res.GrossOut != 996 {
		t.Fatalf("gross out: got %d want 996", res.GrossOut)
	}
	if res.Fee != 9 || res.NetOut != 987 {
		t.Fatalf("fee/net: got %d/%d want 9/987", res.Fee, res.NetOut)
	}
}

func TestSwapReportedPrices(t *testing.T) {
	tr := poolFixture()
	res, err := SwapQuoteForBase(tr, 2_000_000, 200_000, 10_000, 1000, 0)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	// quote * 1e6 / base, pre and post trade.
	if res.PriceBefore != 100_000 {
		t.Fatalf("price before: got %d want 100000", res.PriceBefore)
	}
	if want := uint64(201_000) * PriceScale / 1_990_049; res.PriceAfter != want {
		t.Fatalf("price after: got %d want %d", res.PriceAfter, want)
	}
}

func TestSwapGuards(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Treasury)
		rBase   uint64
		rQuote  uint64
		credits uint64
		in      uint64
		minOut  uint64
		wantErr error
	}{
		{
			name:    "paused",
			mutate:  func(tr *Treasury) { tr.Paused = true },
			rBase:   2_000_000, rQuote: 200_000, credits: 10_000, in: 1000,
			wantErr: ErrTreasuryPaused,
		},
		{
			name:   "zero amount",
			rBase:  2_000_000, rQuote: 200_000, credits: 10_000, in: 0,
			wantErr: ErrZeroAmount,
		},
		{
			name:   "insufficient credits",
			rBase:  2_000_000, rQuote: 200_000, credits: 999, in: 1000,
			wantErr: ErrInsufficientCredits,
		},
		{
			name:   "trade too large",
			rBase:  2_000_000, rQuote: 200_000, credits: 10_000_000, in: 2_000_000,
			wantErr: ErrTradeTooLarge,
		},
		{
			name:   "pool not ready",
			rBase:  999_999, rQuote: 200_000, credits: 10_000, in: 1000,
			wantErr: ErrPoolNotReady,
		},
		{
			name:   "slippage",
			rBase:  2_000_000, rQuote: 200_000, credits: 10_000, in: 1000, minOut: 9_853,
			wantErr: ErrSlippageExceeded,
		},
	}
	for _, tc := range tests {
		tr := poolFixture()
		if tc.mutate != nil {
			tc.mutate(tr)
		}
		_, err := SwapQuoteForBase(tr, tc.rBase, tc.rQuote, tc.credits, tc.in, tc.minOut)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: got %v want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestSwapBaseForQuoteInsufficientFunds(t *testing.T) {
	tr := poolFixture()
	if _, err := SwapBaseForQuote(tr, 2_000_000, 200_000, 500, 1000, 0); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestCheckSeedLiquidity(t *testing.T) {
	tr := poolFixture()
	if err := CheckSeedLiquidity(tr, 1_000_000, 100_000); err != nil {
		t.Fatalf("floors met: %v", err)
	}
	if err := CheckSeedLiquidity(tr, 999_999, 100_000); !errors.Is(err, ErrInsufficientSeed) {
		t.Fatalf("expected ErrInsufficientSeed, got %v", err)
	}
}

func TestPoolPrice(t *testing.T) {
	if got := PoolPrice(2_000_000, 200_000); got != 100_000 {
		t.Fatalf("pool price: got %d want 100000", got)
	}
	if got := PoolPrice(0, 200_000); got != 0 {
		t.Fatalf("zero base reserve must report zero, got %d", got)
	}
}
