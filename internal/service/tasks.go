package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"assetwars/internal/game"
	"assetwars/internal/ledger"
)

// Worker tasks. These run on a schedule rather than from a player request and
// use ReadCommitted: each has a single writer and tolerates overlap with
// player actions.

// RunRiskSweep refreshes the accrued risk of every holding and notifies
// owners whose asset crossed the threshold during this sweep. Takeovers and
// defends refresh risk on their own; the sweep exists so owners learn about
// the crossing without waiting for an attacker.
func (s *Service) RunRiskSweep(ctx context.Context) error {
	now := time.Now().Unix()
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cfg, err := loadConfigTx(ctx, tx, false)
	if errors.Is(err, ErrNotInitialized) {
		return nil
	}
	if err != nil {
		return err
	}

	classes := map[uint64]game.AssetClass{}
	rows, err := tx.Query(ctx, `
		SELECT class_id, base_risk_growth_per_sec
		FROM game.asset_classes
	`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var id, growth int64
		if err := rows.Scan(&id, &growth); err != nil {
			rows.Close()
			return err
		}
		classes[uint64(id)] = game.AssetClass{
			ClassID:              uint64(id),
			BaseRiskGrowthPerSec: uint32(growth),
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	hRows, err := tx.Query(ctx, `
		SELECT player, class_id, level, shield, risk_score,
		       last_claim_ts, upgrade_end_ts, last_defend_ts, last_risk_ts
		FROM game.holdings
		FOR UPDATE
	`)
	if err != nil {
		return err
	}
	var holdings []game.Holding
	for hRows.Next() {
		var h game.Holding
		var id, level, shield, risk int64
		if err := hRows.Scan(&h.Player, &id, &level, &shield, &risk,
			&h.LastClaimTS, &h.UpgradeEndTS, &h.LastDefendTS, &h.LastRiskTS); err != nil {
			hRows.Close()
			return err
		}
		h.ClassID = uint64(id)
		h.Level = uint16(level)
		h.Shield = uint32(shield)
		h.RiskScore = uint32(risk)
		holdings = append(holdings, h)
	}
	hRows.Close()
	if err := hRows.Err(); err != nil {
		return err
	}

	var crossed int
	for i := range holdings {
		h := &holdings[i]
		class := classes[h.ClassID]
		wasAtRisk := h.RiskScore >= cfg.RiskThreshold
		game.UpdateRisk(h, &class, &cfg, now)
		if err := saveHoldingTx(ctx, tx, h); err != nil {
			return err
		}
		if !wasAtRisk && h.RiskScore >= cfg.RiskThreshold {
			crossed++
			if err := notifyTx(ctx, tx, newGroupID(), game.KindAssetAtRisk, h.Player, game.AssetAtRisk{
				Player:    h.Player,
				ClassID:   h.ClassID,
				RiskScore: h.RiskScore,
				Threshold: cfg.RiskThreshold,
				Timestamp: now,
			}); err != nil {
				return err
			}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.log.Info("risk sweep complete", "holdings", len(holdings), "newly_at_risk", crossed)
	return nil
}

// RunPriceSnapshot records the current pool reserves and price for the
// history endpoint. Skips silently while the treasury is uninitialized.
func (s *Service) RunPriceSnapshot(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	t, err := loadTreasuryTx(ctx, tx, false)
	if errors.Is(err, ErrNotInitialized) {
		return nil
	}
	if err != nil {
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
	if rBase == 0 && rQuote == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO game.treasury_prices (tick_at, base_reserve, quote_reserve, price_scaled)
		VALUES (now(), $1, $2, $3)
	`, int64(rBase), int64(rQuote), int64(game.PoolPrice(rBase, rQuote))); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
