package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"assetwars/internal/game"
)

// InitializePlayer registers a work-game identity with the starting credit
// grant. Separate from JoinGame so a wallet can grind credits without ever
// touching assets.
func (s *Service) InitializePlayer(ctx context.Context, owner string) error {
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		ps := game.NewPlayerState(owner, now)
		cmd, err := tx.Exec(ctx, `
			INSERT INTO game.player_states
			    (owner, credits, streak_count, work_frequency_level, cooldown_hours,
			     last_work_ts, total_work_actions, businesses_owned,
			     active_business_slots, last_streak_check)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (owner) DO NOTHING
		`, ps.Owner, int64(ps.Credits), int64(ps.StreakCount), int16(ps.WorkFrequencyLevel),
			int16(ps.CooldownHours), ps.LastWorkTimestamp, int64(ps.TotalWorkActions),
			toInt16Slice(ps.BusinessesOwned), toInt16Slice(ps.ActiveBusinessSlots), ps.LastStreakCheck)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return nil // already initialized, idempotent
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindPlayerInitialized, owner, map[string]any{
			"player":  owner,
			"credits": ps.Credits,
		})
	})
}

// DoWork runs one cooldown-gated work action, paying the streak-scaled reward
// into the credits balance. Streak breaks and level-ups get their own
// notifications under the same group.
func (s *Service) DoWork(ctx context.Context, owner string, idem string) (game.WorkOutcome, error) {
	now := time.Now().Unix()
	var out game.WorkOutcome
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		if err := claimIdempotency(ctx, tx, owner, idem, "do_work"); err != nil {
			return err
		}
		ps, err := loadPlayerStateTx(ctx, tx, owner, true)
		if err != nil {
			return err
		}
		out, err = game.DoWork(&ps, now)
		if err != nil {
			return err
		}
		if err := savePlayerStateTx(ctx, tx, &ps); err != nil {
			return err
		}

		group := newGroupID()
		if err := notifyTx(ctx, tx, group, game.KindWorkCompleted, owner, game.WorkCompleted{
			Player:    owner,
			Reward:    out.Reward,
			NewStreak: ps.StreakCount,
			NewLevel:  ps.WorkFrequencyLevel,
			Timestamp: now,
		}); err != nil {
			return err
		}
		if out.StreakBroken {
			if err := notifyTx(ctx, tx, group, game.KindStreakBroken, owner, game.StreakBroken{
				Player:    owner,
				OldStreak: out.OldStreak,
				Timestamp: now,
			}); err != nil {
				return err
			}
		}
		if out.LeveledUp {
			if err := notifyTx(ctx, tx, group, game.KindLevelUp, owner, game.LevelUp{
				Player:           owner,
				NewLevel:         ps.WorkFrequencyLevel,
				NewCooldownHours: ps.CooldownHours,
				Timestamp:        now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}

// PurchaseBusiness buys one catalog entry with credits and auto-assigns it to
// an active slot when capacity allows.
func (s *Service) PurchaseBusiness(ctx context.Context, owner string, businessID uint8, idem string) error {
	now := time.Now().Unix()
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		if err := claimIdempotency(ctx, tx, owner, idem, "purchase_business"); err != nil {
			return err
		}
		ps, err := loadPlayerStateTx(ctx, tx, owner, true)
		if err != nil {
			return err
		}
		cost, err := game.PurchaseBusiness(&ps, businessID)
		if err != nil {
			return err
		}
		if err := savePlayerStateTx(ctx, tx, &ps); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindBusinessPurchased, owner, game.BusinessPurchased{
			Player:     owner,
			BusinessID: businessID,
			Cost:       cost,
			Timestamp:  now,
		})
	})
}

// SetBusinessSlots replaces the active slot assignment wholesale.
func (s *Service) SetBusinessSlots(ctx context.Context, owner string, slots []uint8, idem string) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		cfg, err := loadConfigTx(ctx, tx, false)
		if err != nil {
			return err
		}
		if cfg.Paused {
			return game.ErrGamePaused
		}
		if err := claimIdempotency(ctx, tx, owner, idem, "set_business_slots"); err != nil {
			return err
		}
		ps, err := loadPlayerStateTx(ctx, tx, owner, true)
		if err != nil {
			return err
		}
		if err := game.SetActiveSlots(&ps, slots); err != nil {
			return err
		}
		if err := savePlayerStateTx(ctx, tx, &ps); err != nil {
			return err
		}
		return notifyTx(ctx, tx, newGroupID(), game.KindSlotsUpdated, owner, game.SlotsUpdated{
			Player: owner,
			Slots:  ps.ActiveBusinessSlots,
		})
	})
}
