package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"assetwars/internal/game"
	"assetwars/internal/ledger"
)

// InitGameInput carries the one-time game bootstrap parameters.
type InitGameInput struct {
	Admin                       string
	FeeBps                      uint16
	DefaultUpgradeCD            int64
	DefaultDefendCD             int64
	RiskThreshold               uint32
	RiskGrowthPerSec            uint32
	DefendRiskReductionPerToken uint32
}

// InitializeGame creates the singleton config record. The fee cap is enforced
// here at the boundary; the caller becomes the admin for every later
// privileged call.
func (s *Service) InitializeGame(ctx context.Context, in InitGameInput) error {
	if in.FeeBps > game.MaxTreasuryFeeBps {
		return game.ErrFeeTooHigh
	}
	if in.Admin == "" {
		return game.ErrInvalidParameters
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			INSERT INTO game.config
			    (id, admin, fee_bps, paused, default_upgrade_cd, default_defend_cd,
			     risk_threshold, risk_growth_per_sec, defend_reduction)
			VALUES (1, $1, $2, false, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, in.Admin, int64(in.FeeBps), in.DefaultUpgradeCD, in.DefaultDefendCD,
			int64(in.RiskThreshold), int64(in.RiskGrowthPerSec), int64(in.DefendRiskReductionPerToken))
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrAlreadyInitialized
		}
		if err := ledger.EnsureAccount(ctx, tx, ledger.GameVault); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindGameInitialized, in.Admin, map[string]any{
			"admin":   in.Admin,
			"fee_bps": in.FeeBps,
		})
	})
}

// AddAssetClass registers a new immutable class template. Admin only.
func (s *Service) AddAssetClass(ctx context.Context, caller string, class game.AssetClass) error {
	if class.PriceScaleDen == 0 || class.PriceScaleNum == 0 || class.BasePrice == 0 {
		return game.ErrInvalidParameters
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if caller != cfg.Admin {
			return game.ErrUnauthorized
		}
		cmd, err := tx.Exec(ctx, `
			INSERT INTO game.asset_classes
			    (class_id, base_price, price_scale_num, price_scale_den,
			     base_yield, upgrade_cd, defend_cd, base_risk_growth_per_sec)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (class_id) DO NOTHING
		`, int64(class.ClassID), int64(class.BasePrice), int64(class.PriceScaleNum),
			int64(class.PriceScaleDen), int64(class.BaseYield), class.UpgradeCD,
			class.DefendCD, int64(class.BaseRiskGrowthPerSec))
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return game.ErrInvalidParameters
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindClassAdded, caller, map[string]any{
			"class_id":   class.ClassID,
			"base_price": class.BasePrice,
		})
	})
}

// SetParams partially updates the game configuration. Admin only; nil fields
// keep their current value.
func (s *Service) SetParams(ctx context.Context, caller string, upd game.GameParamsUpdate) error {
	if upd.FeeBps != nil && *upd.FeeBps > game.MaxTreasuryFeeBps {
		return game.ErrFeeTooHigh
	}
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, true)
		if err != nil {
			return err
		}
		if caller != cfg.Admin {
			return game.ErrUnauthorized
		}
		prev := upd.Apply(&cfg)
		if err := saveConfigTx(ctx, tx, cfg); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindParamsUpdated, caller, game.ParamsUpdated{
			Previous: prev,
			Current:  cfg,
		})
	})
}

// SetPaused flips the global action gate. Admin only.
func (s *Service) SetPaused(ctx context.Context, caller string, paused bool) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, true)
		if err != nil {
			return err
		}
		if caller != cfg.Admin {
			return game.ErrUnauthorized
		}
		if cfg.Paused == paused {
			return nil
		}
		cfg.Paused = paused
		if err := saveConfigTx(ctx, tx, cfg); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindPauseToggled, caller, map[string]any{
			"paused": paused,
		})
	})
}

// InitTreasuryInput carries the one-time pool bootstrap parameters. Zero
// liquidity floors fall back to the defaults.
type InitTreasuryInput struct {
	Authority         string
	FeeBps            uint16
	MaxTradeUnits     uint64
	MinBaseLiquidity  uint64
	MinQuoteLiquidity uint64
}

const (
	defaultMinBaseLiquidity  = uint64(1_000_000)
	defaultMinQuoteLiquidity = uint64(100_000)
)

// InitializeTreasury creates the singleton pool operator record. The pool
// starts paused; the authority unpauses it once seeded.
func (s *Service) InitializeTreasury(ctx context.Context, in InitTreasuryInput) error {
	if in.FeeBps > game.MaxTreasuryFeeBps {
		return game.ErrFeeTooHigh
	}
	if in.Authority == "" {
		return game.ErrInvalidParameters
	}
	minBase := in.MinBaseLiquidity
	if minBase == 0 {
		minBase = defaultMinBaseLiquidity
	}
	minQuote := in.MinQuoteLiquidity
	if minQuote == 0 {
		minQuote = defaultMinQuoteLiquidity
	}
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			INSERT INTO game.treasury
			    (id, authority, base_vault, quote_vault, fee_bps, max_trade_units,
			     paused, min_base_liquidity, min_quote_liquidity, last_params_update)
			VALUES (1, $1, $2, $3, $4, $5, true, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, in.Authority, ledger.TreasuryBaseVault, ledger.TreasuryQuoteVault,
			int64(in.FeeBps), int64(in.MaxTradeUnits), int64(minBase), int64(minQuote), now)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrAlreadyInitialized
		}
		if err := ledger.EnsureAccount(ctx, tx, ledger.TreasuryBaseVault); err != nil {
			return err
		}
		if err := ledger.EnsureAccount(ctx, tx, ledger.TreasuryQuoteVault); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindTreasuryInitialized, in.Authority, map[string]any{
			"authority":       in.Authority,
			"fee_bps":         in.FeeBps,
			"max_trade_units": in.MaxTradeUnits,
		})
	})
}

// SetTreasuryParams partially updates the pool parameters. Authority only.
func (s *Service) SetTreasuryParams(ctx context.Context, caller string, upd game.TreasuryParamsUpdate) error {
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		t, err := loadTreasuryTx(ctx, tx, true)
		if err != nil {
			return err
		}
		if caller != t.Authority {
			return game.ErrUnauthorized
		}
		prev, err := upd.Apply(&t, now)
		if err != nil {
			return err
		}
		if err := saveTreasuryTx(ctx, tx, &t); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindTreasuryParamsUpdated, caller, game.TreasuryParamsUpdated{
			OldFeeBps:   prev.FeeBps,
			NewFeeBps:   t.FeeBps,
			OldMaxTrade: prev.MaxTradeUnits,
			NewMaxTrade: t.MaxTradeUnits,
			Paused:      t.Paused,
			Timestamp:   now,
		})
	})
}

// AddLiquidity mints fresh reserves into both vaults. Authority only. The
// first seeding must bring both sides to their configured floors in one call;
// later top-ups have no minimum.
func (s *Service) AddLiquidity(ctx context.Context, caller string, baseAmount, quoteAmount uint64, idem string) error {
	if baseAmount == 0 && quoteAmount == 0 {
		return game.ErrZeroAmount
	}
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		t, err := loadTreasuryTx(ctx, tx, true)
		if err != nil {
			return err
		}
		if caller != t.Authority {
			return game.ErrUnauthorized
		}
		if err := claimIdempotency(ctx, tx, caller, idem, "add_liquidity"); err != nil {
			return err
		}
		rBase, err := ledger.Balance(ctx, tx, t.BaseVault)
		if err != nil {
			return err
		}
		rQuote, err := ledger.Balance(ctx, tx, t.QuoteVault)
		if err != nil {
			return err
		}
		firstSeed := rBase < t.MinBaseLiquidity || rQuote < t.MinQuoteLiquidity
		if baseAmount > 0 {
			if err := ledger.Mint(ctx, tx, t.BaseVault, baseAmount); err != nil {
				return err
			}
		}
		if quoteAmount > 0 {
			if err := ledger.Mint(ctx, tx, t.QuoteVault, quoteAmount); err != nil {
				return err
			}
		}
		newBase := rBase + baseAmount
		newQuote := rQuote + quoteAmount
		if firstSeed {
			if err := game.CheckSeedLiquidity(&t, newBase, newQuote); err != nil {
				return err
			}
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindLiquidityAdded, caller, game.LiquidityAdded{
			BaseAmount:        baseAmount,
			QuoteAmount:       quoteAmount,
			TotalBaseReserve:  newBase,
			TotalQuoteReserve: newQuote,
			Timestamp:         now,
		})
	})
}
