package game

import "math/big"

// Price scaling is geometric in (num/den) per level, computed as repeated
// multiply-then-divide so the rounding of every step is preserved.
// Intermediates are bounded to 128 bits; exceeding that, a zero divisor, or
// a final value that does not fit uint64 is ErrMathOverflow.

const intermediateBits = 128

func scaled(val, num, den uint64, power uint16) (*big.Int, error) {
	if den == 0 {
		return nil, ErrMathOverflow
	}
	result := new(big.Int).SetUint64(val)
	n := new(big.Int).SetUint64(num)
	d := new(big.Int).SetUint64(den)
	for i := uint16(0); i < power; i++ {
		result.Mul(result, n)
		if result.BitLen() > intermediateBits {
			return nil, ErrMathOverflow
		}
		result.Quo(result, d)
	}
	return result, nil
}

// PriceForLevel returns the buy price of an asset at the given level.
// Level 0 and level 1 both price at base; each further level scales by
// num/den with floor division at every step.
func PriceForLevel(basePrice, num, den uint64, level uint16) (uint64, error) {
	if level == 0 {
		return basePrice, nil
	}
	v, err := scaled(basePrice, num, den, level-1)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, ErrMathOverflow
	}
	return v.Uint64(), nil
}

// TakeoverCost is the hostile-takeover price: 1.25x the buy price for the
// holding's current level, floor division.
func TakeoverCost(basePrice, num, den uint64, level uint16) (uint64, error) {
	buyPrice, err := PriceForLevel(basePrice, num, den, level)
	if err != nil {
		return 0, err
	}
	v := new(big.Int).SetUint64(buyPrice)
	v.Mul(v, big.NewInt(5))
	v.Quo(v, big.NewInt(4))
	if !v.IsUint64() {
		return 0, ErrMathOverflow
	}
	return v.Uint64(), nil
}

// UpgradeCooldown resolves the per-class override against the global default.
func UpgradeCooldown(class *AssetClass, cfg *GameConfig) int64 {
	if class.UpgradeCD > 0 {
		return class.UpgradeCD
	}
	return cfg.DefaultUpgradeCD
}

// DefendCooldown resolves the per-class override against the global default.
func DefendCooldown(class *AssetClass, cfg *GameConfig) int64 {
	if class.DefendCD > 0 {
		return class.DefendCD
	}
	return cfg.DefaultDefendCD
}

// ChargeWithFee returns amount plus the bps fee on it, and the fee alone.
// The fee is computed on wide integers with floor division.
func ChargeWithFee(amount uint64, feeBps uint16) (total, fee uint64, err error) {
	f := new(big.Int).SetUint64(amount)
	f.Mul(f, new(big.Int).SetUint64(uint64(feeBps)))
	f.Quo(f, big.NewInt(10_000))
	if !f.IsUint64() {
		return 0, 0, ErrMathOverflow
	}
	fee = f.Uint64()
	t := new(big.Int).SetUint64(amount)
	t.Add(t, f)
	if !t.IsUint64() {
		return 0, 0, ErrMathOverflow
	}
	return t.Uint64(), fee, nil
}
