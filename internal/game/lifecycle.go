package game

// Asset lifecycle state machine. Each transition validates its preconditions
// against an already-loaded snapshot, mutates the snapshot, and returns the
// amount to charge (fee included) where money moves. The boundary layer is
// responsible for the pause gate, the actual ledger transfer, and persisting
// the mutated records; a failed transfer aborts the whole action.

// NewHolding prices the level-1 purchase and returns the initialized record.
func NewHolding(owner string, class *AssetClass, cfg *GameConfig, now int64) (*Holding, uint64, error) {
	price, err := PriceForLevel(class.BasePrice, class.PriceScaleNum, class.PriceScaleDen, 1)
	if err != nil {
		return nil, 0, err
	}
	total, _, err := ChargeWithFee(price, cfg.FeeBps)
	if err != nil {
		return nil, 0, err
	}
	h := &Holding{
		Player:       owner,
		ClassID:      class.ClassID,
		Level:        1,
		Shield:       0,
		RiskScore:    0,
		LastClaimTS:  now,
		UpgradeEndTS: 0,
		LastDefendTS: now,
		LastRiskTS:   now,
	}
	return h, total, nil
}

// QueueUpgrade prices the next level, starts the upgrade timer, and returns
// the cost. Only one upgrade may be in flight per holding.
func QueueUpgrade(h *Holding, class *AssetClass, cfg *GameConfig, now int64) (uint64, error) {
	if h.UpgradeEndTS != 0 {
		return 0, ErrUpgradeInProgress
	}
	if h.Level == ^uint16(0) {
		return 0, ErrMathOverflow
	}
	nextLevel := h.Level + 1
	price, err := PriceForLevel(class.BasePrice, class.PriceScaleNum, class.PriceScaleDen, nextLevel)
	if err != nil {
		return 0, err
	}
	total, _, err := ChargeWithFee(price, cfg.FeeBps)
	if err != nil {
		return 0, err
	}
	h.UpgradeEndTS = now + UpgradeCooldown(class, cfg)
	return total, nil
}

// FinishUpgrade completes a pending upgrade once its timer has elapsed.
func FinishUpgrade(h *Holding, now int64) error {
	if h.UpgradeEndTS == 0 {
		return ErrInvalidParameters
	}
	if now < h.UpgradeEndTS {
		return ErrInvalidParameters
	}
	if h.Level == ^uint16(0) {
		return ErrMathOverflow
	}
	h.Level++
	h.UpgradeEndTS = 0
	return nil
}

// Defend spends tokens to lower risk and raise the shield. The cooldown is
// global per player, not per holding: one defend anywhere starts the clock
// for every holding the player owns.
func Defend(h *Holding, p *Player, class *AssetClass, cfg *GameConfig, spend uint64, now int64) error {
	cd := DefendCooldown(class, cfg)
	elapsed := now - p.LastDefendTS
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed < cd {
		return ErrCooldownNotExpired
	}
	UpdateRisk(h, class, cfg, now)
	ApplyDefense(h, cfg, spend)
	h.LastDefendTS = now
	p.LastDefendTS = now
	return nil
}

// Takeover seizes a holding whose accrued risk has crossed the threshold.
// Risk is refreshed first so staleness can neither block nor enable a
// takeover. On success the holding changes hands, the shield and any pending
// upgrade are cleared, and risk resets to a quarter of the threshold so the
// new owner is not immediately re-vulnerable. Returns the attacker's cost
// (25% premium over the current buy price, plus fee).
func Takeover(h *Holding, attacker string, class *AssetClass, cfg *GameConfig, now int64) (uint64, error) {
	UpdateRisk(h, class, cfg, now)
	if h.RiskScore < cfg.RiskThreshold {
		return 0, ErrAssetNotAtRisk
	}
	cost, err := TakeoverCost(class.BasePrice, class.PriceScaleNum, class.PriceScaleDen, h.Level)
	if err != nil {
		return 0, err
	}
	total, _, err := ChargeWithFee(cost, cfg.FeeBps)
	if err != nil {
		return 0, err
	}
	h.Player = attacker
	h.Shield = 0
	h.UpgradeEndTS = 0
	h.LastDefendTS = now
	h.LastRiskTS = now
	h.RiskScore = cfg.RiskThreshold / 4
	return total, nil
}
