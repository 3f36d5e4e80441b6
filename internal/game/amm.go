package game

import "math/big"

// Constant-product market making between the base currency (vault-backed
// tokens) and the quote currency (player credits). Reserves are read live by
// the caller from the two vault balances, so k is recomputed per swap rather
// than stored. The floor division on the new reserve is what biases rounding
// in the pool's favor.

// SwapResult captures the full accounting of one executed swap, including
// the 6-decimal fixed-point pool price before and after.
type SwapResult struct {
	AmountIn        uint64 `json:"amount_in"`
	GrossOut        uint64 `json:"gross_out"`
	Fee             uint64 `json:"fee"`
	NetOut          uint64 `json:"net_out"`
	NewBaseReserve  uint64 `json:"new_base_reserve"`
	NewQuoteReserve uint64 `json:"new_quote_reserve"`
	PriceBefore     uint64 `json:"price_before"`
	PriceAfter      uint64 `json:"price_after"`
}

// SwapQuoteForBase trades quote currency (credits) for base tokens.
// payerCredits is the trader's live credits balance; rBase and rQuote are the
// live vault balances.
func SwapQuoteForBase(t *Treasury, rBase, rQuote, payerCredits, amountIn, minOut uint64) (SwapResult, error) {
	if t.Paused {
		return SwapResult{}, ErrTreasuryPaused
	}
	if amountIn == 0 {
		return SwapResult{}, ErrZeroAmount
	}
	if payerCredits < amountIn {
		return SwapResult{}, ErrInsufficientCredits
	}
	if amountIn > t.MaxTradeUnits {
		return SwapResult{}, ErrTradeTooLarge
	}
	if err := checkPoolReady(t, rBase, rQuote); err != nil {
		return SwapResult{}, err
	}

	k := mulU64(rBase, rQuote)
	newQuote := new(big.Int).Add(new(big.Int).SetUint64(rQuote), new(big.Int).SetUint64(amountIn))
	if newQuote.Sign() == 0 {
		return SwapResult{}, ErrMathError
	}
	newBase := new(big.Int).Quo(k, newQuote)

	gross, ok := reserveDelta(rBase, newBase)
	if !ok {
		return SwapResult{}, ErrInsufficientLiquidity
	}
	fee := feeOn(gross, t.FeeBps)
	net := gross - fee
	if net < minOut {
		return SwapResult{}, ErrSlippageExceeded
	}

	return SwapResult{
		AmountIn:        amountIn,
		GrossOut:        gross,
		Fee:             fee,
		NetOut:          net,
		NewBaseReserve:  newBase.Uint64(),
		NewQuoteReserve: newQuote.Uint64(),
		PriceBefore:     poolPrice(rQuote, rBase),
		PriceAfter:      poolPriceBig(newQuote, newBase),
	}, nil
}

// SwapBaseForQuote trades base tokens for quote currency (credits), the
// mirrored computation. payerBase is the trader's live base-token balance.
func SwapBaseForQuote(t *Treasury, rBase, rQuote, payerBase, amountIn, minOut uint64) (SwapResult, error) {
	if t.Paused {
		return SwapResult{}, ErrTreasuryPaused
	}
	if amountIn == 0 {
		return SwapResult{}, ErrZeroAmount
	}
	if amountIn > t.MaxTradeUnits {
		return SwapResult{}, ErrTradeTooLarge
	}
	if payerBase < amountIn {
		return SwapResult{}, ErrInsufficientFunds
	}
	if err := checkPoolReady(t, rBase, rQuote); err != nil {
		return SwapResult{}, err
	}

	k := mulU64(rBase, rQuote)
	newBase := new(big.Int).Add(new(big.Int).SetUint64(rBase), new(big.Int).SetUint64(amountIn))
	if newBase.Sign() == 0 {
		return SwapResult{}, ErrMathError
	}
	newQuote := new(big.Int).Quo(k, newBase)

	gross, ok := reserveDelta(rQuote, newQuote)
	if !ok {
		return SwapResult{}, ErrInsufficientLiquidity
	}
	fee := feeOn(gross, t.FeeBps)
	net := gross - fee
	if net < minOut {
		return SwapResult{}, ErrSlippageExceeded
	}

	return SwapResult{
		AmountIn:        amountIn,
		GrossOut:        gross,
		Fee:             fee,
		NetOut:          net,
		NewBaseReserve:  newBase.Uint64(),
		NewQuoteReserve: newQuote.Uint64(),
		PriceBefore:     poolPrice(rQuote, rBase),
		PriceAfter:      poolPriceBig(newQuote, newBase),
	}, nil
}

// CheckSeedLiquidity validates the reserves after an initial liquidity add:
// the first seeding must bring both sides to their configured floors.
func CheckSeedLiquidity(t *Treasury, rBase, rQuote uint64) error {
	if rBase < t.MinBaseLiquidity || rQuote < t.MinQuoteLiquidity {
		return ErrInsufficientSeed
	}
	return nil
}

// PoolPrice reports quote-per-base at 6-decimal fixed point.
func PoolPrice(rBase, rQuote uint64) uint64 {
	return poolPrice(rQuote, rBase)
}

func checkPoolReady(t *Treasury, rBase, rQuote uint64) error {
	if rBase < t.MinBaseLiquidity || rQuote < t.MinQuoteLiquidity {
		return ErrPoolNotReady
	}
	return nil
}

// reserveDelta returns old - new, requiring the trade to strictly shrink the
// output reserve.
func reserveDelta(old uint64, neu *big.Int) (uint64, bool) {
	if !neu.IsUint64() {
		return 0, false
	}
	n := neu.Uint64()
	if n >= old {
		return 0, false
	}
	return old - n, true
}

// feeOn computes the bps fee on a gross output at 128-bit width; with the
// fee rate capped at 1000 bps the result always fits back in uint64.
func feeOn(gross uint64, bps uint16) uint64 {
	v := new(big.Int).SetUint64(gross)
	v.Mul(v, new(big.Int).SetUint64(uint64(bps)))
	v.Quo(v, big.NewInt(10_000))
	return v.Uint64()
}

func mulU64(a, b uint64) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
}

func poolPrice(quote, base uint64) uint64 {
	if base == 0 {
		return 0
	}
	v := new(big.Int).SetUint64(quote)
	v.Mul(v, new(big.Int).SetUint64(PriceScale))
	v.Quo(v, new(big.Int).SetUint64(base))
	if !v.IsUint64() {
		return ^uint64(0)
	}
	return v.Uint64()
}

func poolPriceBig(quote, base *big.Int) uint64 {
	if base.Sign() == 0 {
		return 0
	}
	v := new(big.Int).Mul(quote, new(big.Int).SetUint64(PriceScale))
	v.Quo(v, base)
	if !v.IsUint64() {
		return ^uint64(0)
	}
	return v.Uint64()
}
