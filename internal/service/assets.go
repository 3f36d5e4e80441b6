package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"assetwars/internal/game"
	"assetwars/internal/ledger"
)

// JoinGame registers an asset-game identity and its token account.
func (s *Service) JoinGame(ctx context.Context, authority string) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		cmd, err := tx.Exec(ctx, `
			INSERT INTO game.players (authority, last_defend_ts)
			VALUES ($1, 0)
			ON CONFLICT (authority) DO NOTHING
		`, authority)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return nil // already joined, idempotent
		}
		if err := ledger.EnsureAccount(ctx, tx, ledger.PlayerAccount(authority)); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindPlayerJoined, authority, game.PlayerJoined{
			Player: authority,
		})
	})
}

// BuyAsset purchases the unclaimed holding of a class at the level-1 price
// plus fee. One holding exists per class; once bought it can only change
// hands through a takeover.
func (s *Service) BuyAsset(ctx context.Context, caller string, classID uint64, idem string) error {
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		if err := claimIdempotency(ctx, tx, caller, idem, "buy_asset"); err != nil {
			return err
		}
		if _, err := loadPlayerTx(ctx, tx, caller, false); err != nil {
			return err
		}
		class, err := loadClassTx(ctx, tx, classID)
		if err != nil {
			return err
		}
		if _, err := loadHoldingTx(ctx, tx, classID, false); err == nil {
			return game.ErrAlreadyOwned
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		h, total, err := game.NewHolding(caller, &class, &cfg, now)
		if err != nil {
			return err
		}
		if err := ledger.Transfer(ctx, tx, ledger.PlayerAccount(caller), ledger.GameVault, total); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO game.holdings
			    (class_id, player, level, shield, risk_score,
			     last_claim_ts, upgrade_end_ts, last_defend_ts, last_risk_ts)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, int64(h.ClassID), h.Player, int64(h.Level), int64(h.Shield), int64(h.RiskScore),
			h.LastClaimTS, h.UpgradeEndTS, h.LastDefendTS, h.LastRiskTS); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindAssetBought, caller, game.AssetBought{
			Player:  caller,
			ClassID: classID,
			Price:   total,
			Level:   h.Level,
		})
	})
}

// QueueUpgrade pays for the next level up front and starts the upgrade timer.
func (s *Service) QueueUpgrade(ctx context.Context, caller string, classID uint64, idem string) error {
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		if err := claimIdempotency(ctx, tx, caller, idem, "queue_upgrade"); err != nil {
			return err
		}
		class, err := loadClassTx(ctx, tx, classID)
		if err != nil {
			return err
		}
		h, err := loadHoldingTx(ctx, tx, classID, true)
		if err != nil {
			return err
		}
		if h.Player != caller {
			return game.ErrUnauthorized
		}

		total, err := game.QueueUpgrade(&h, &class, &cfg, now)
		if err != nil {
			return err
		}
		if err := ledger.Transfer(ctx, tx, ledger.PlayerAccount(caller), ledger.GameVault, total); err != nil {
			return err
		}
		if err := saveHoldingTx(ctx, tx, &h); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindUpgradeQueued, caller, game.UpgradeQueued{
			Player:  caller,
			ClassID: classID,
			Cost:    total,
			EndTS:   h.UpgradeEndTS,
		})
	})
}

// FinishUpgrade completes an elapsed upgrade. No payment; the cost was taken
// when the upgrade was queued.
func (s *Service) FinishUpgrade(ctx context.Context, caller string, classID uint64) error {
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		h, err := loadHoldingTx(ctx, tx, classID, true)
		if err != nil {
			return err
		}
		if h.Player != caller {
			return game.ErrUnauthorized
		}
		if err := game.FinishUpgrade(&h, now); err != nil {
			return err
		}
		if err := saveHoldingTx(ctx, tx, &h); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindUpgradeFinished, caller, game.UpgradeFinished{
			Player:   caller,
			ClassID:  classID,
			NewLevel: h.Level,
		})
	})
}

// Defend spends tokens to reduce a holding's accrued risk. The cooldown is
// global per player across all holdings.
func (s *Service) Defend(ctx context.Context, caller string, classID uint64, spend uint64, idem string) error {
	if spend == 0 {
		return game.ErrZeroAmount
	}
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		if err := claimIdempotency(ctx, tx, caller, idem, "defend"); err != nil {
			return err
		}
		class, err := loadClassTx(ctx, tx, classID)
		if err != nil {
			return err
		}
		h, err := loadHoldingTx(ctx, tx, classID, true)
		if err != nil {
			return err
		}
		if h.Player != caller {
			return game.ErrUnauthorized
		}
		p, err := loadPlayerTx(ctx, tx, caller, true)
		if err != nil {
			return err
		}

		if err := game.Defend(&h, &p, &class, &cfg, spend, now); err != nil {
			return err
		}
		if err := ledger.Transfer(ctx, tx, ledger.PlayerAccount(caller), ledger.GameVault, spend); err != nil {
			return err
		}
		if err := saveHoldingTx(ctx, tx, &h); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE game.players SET last_defend_ts = $1 WHERE authority = $2
		`, p.LastDefendTS, p.Authority); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindDefended, caller, game.Defended{
			Player:      caller,
			ClassID:     classID,
			Spend:       spend,
			RiskAfter:   h.RiskScore,
			ShieldAfter: h.Shield,
		})
	})
}

// Takeover seizes a holding whose risk has crossed the threshold, paying the
// 25% premium over the current price into the vault. Both parties get a
// notification under the same group id.
func (s *Service) Takeover(ctx context.Context, caller string, classID uint64, idem string) error {
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		if err := claimIdempotency(ctx, tx, caller, idem, "takeover"); err != nil {
			return err
		}
		if _, err := loadPlayerTx(ctx, tx, caller, false); err != nil {
			return err
		}
		class, err := loadClassTx(ctx, tx, classID)
		if err != nil {
			return err
		}
		h, err := loadHoldingTx(ctx, tx, classID, true)
		if err != nil {
			return err
		}
		if h.Player == caller {
			return game.ErrInvalidParameters
		}
		victim := h.Player

		total, err := game.Takeover(&h, caller, &class, &cfg, now)
		if err != nil {
			return err
		}
		if err := ledger.Transfer(ctx, tx, ledger.PlayerAccount(caller), ledger.GameVault, total); err != nil {
			return err
		}
		if err := saveHoldingTx(ctx, tx, &h); err != nil {
			return err
		}
		group := newGroupID()
		event := game.TakenOver{
			FromPlayer: victim,
			ToPlayer:   caller,
			ClassID:    classID,
			Level:      h.Level,
			Cost:       total,
		}
		if err := notifyTx(ctx, tx, group, game.KindTakenOver, caller, event); err != nil {
			return err
		}
		return notifyTx(ctx, tx, group, game.KindTakenOver, victim, event)
	})
}
