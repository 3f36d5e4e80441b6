// Package service is the persistence boundary around the pure game core. Each
// operation runs in one Serializable transaction: load the snapshots, call the
// core transition, move value through the ledger, write the snapshots back,
// and append notifications. Serialization conflicts retry with backoff.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"assetwars/internal/game"
)

var (
	ErrTxConflict           = errors.New("transaction conflict, retry")
	ErrDuplicateIdempotency = errors.New("duplicate request")
	ErrNotInitialized       = errors.New("not initialized")
	ErrAlreadyInitialized   = errors.New("already initialized")
	ErrNotFound             = errors.New("not found")
)

type Service struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewService(db *pgxpool.Pool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, log: logger}
}

// inTx runs fn inside a Serializable transaction, retrying on SQLSTATE 40001
// with exponential backoff. fn must be safe to re-run from scratch.
func (s *Service) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	const maxAttempts = 8
	retryDelay := 75 * time.Millisecond
	for attempt := 0; attempt < maxAttempts; attempt++ {
		tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
		if err != nil {
			return err
		}
		err = func() error {
			defer tx.Rollback(ctx)
			if err := fn(tx); err != nil {
				return err
			}
			return tx.Commit(ctx)
		}()
		if err == nil {
			return nil
		}
		if !isSerializationError(err) {
			return err
		}
		if attempt == maxAttempts-1 {
			return ErrTxConflict
		}
		if err := sleepWithContext(ctx, retryDelay); err != nil {
			return err
		}
		if retryDelay < 1200*time.Millisecond {
			retryDelay *= 2
		}
	}
	return ErrTxConflict
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func claimIdempotency(ctx context.Context, tx pgx.Tx, userID, key, action string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("idempotency key is required")
	}
	cmd, err := tx.Exec(ctx, `
		INSERT INTO game.idempotency_keys (user_id, key, action, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, key) DO NOTHING
	`, userID, key, action)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDuplicateIdempotency
	}
	return nil
}

// notifyTx appends one notification record inside the action's transaction so
// the log and the state move atomically. The group id ties the notifications
// of one action together.
func notifyTx(ctx context.Context, tx pgx.Tx, groupID, kind, player string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO game.notifications (tx_group_id, kind, player, payload)
		VALUES ($1, $2, $3, $4::jsonb)
	`, groupID, kind, player, string(body))
	return err
}

func newGroupID() string {
	return uuid.NewString()
}

// -- snapshot loaders and writers ------------------------------------------

func loadConfigTx(ctx context.Context, tx pgx.Tx, forUpdate bool) (game.GameConfig, error) {
	query := `
		SELECT admin, fee_bps, paused, default_upgrade_cd, default_defend_cd,
		       risk_threshold, risk_growth_per_sec, defend_reduction
		FROM game.config
		WHERE id = 1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var cfg game.GameConfig
	var fee, threshold, growth, reduction int64
	err := tx.QueryRow(ctx, query).Scan(
		&cfg.Admin, &fee, &cfg.Paused,
		&cfg.DefaultUpgradeCD, &cfg.DefaultDefendCD,
		&threshold, &growth, &reduction,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return cfg, ErrNotInitialized
	}
	if err != nil {
		return cfg, err
	}
	cfg.FeeBps = uint16(fee)
	cfg.RiskThreshold = uint32(threshold)
	cfg.RiskGrowthPerSec = uint32(growth)
	cfg.DefendRiskReductionPerToken = uint32(reduction)
	return cfg, nil
}

func saveConfigTx(ctx context.Context, tx pgx.Tx, cfg game.GameConfig) error {
	_, err := tx.Exec(ctx, `
		UPDATE game.config
		SET fee_bps = $1, paused = $2, default_upgrade_cd = $3,
		    default_defend_cd = $4, risk_threshold = $5,
		    risk_growth_per_sec = $6, defend_reduction = $7,
		    updated_at = now()
		WHERE id = 1
	`, int64(cfg.FeeBps), cfg.Paused, cfg.DefaultUpgradeCD, cfg.DefaultDefendCD,
		int64(cfg.RiskThreshold), int64(cfg.RiskGrowthPerSec), int64(cfg.DefendRiskReductionPerToken))
	return err
}

func loadClassTx(ctx context.Context, tx pgx.Tx, classID uint64) (game.AssetClass, error) {
	var c game.AssetClass
	var base, num, den, yield, growth int64
	var id int64
	err := tx.QueryRow(ctx, `
		SELECT class_id, base_price, price_scale_num, price_scale_den,
		       base_yield, upgrade_cd, defend_cd, base_risk_growth_per_sec
		FROM game.asset_classes
		WHERE class_id = $1
	`, int64(classID)).Scan(&id, &base, &num, &den, &yield, &c.UpgradeCD, &c.DefendCD, &growth)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, ErrNotFound
	}
	if err != nil {
		return c, err
	}
	c.ClassID = uint64(id)
	c.BasePrice = uint64(base)
	c.PriceScaleNum = uint64(num)
	c.PriceScaleDen = uint64(den)
	c.BaseYield = uint64(yield)
	c.BaseRiskGrowthPerSec = uint32(growth)
	return c, nil
}

func loadHoldingTx(ctx context.Context, tx pgx.Tx, classID uint64, forUpdate bool) (game.Holding, error) {
	query := `
		SELECT player, class_id, level, shield, risk_score,
		       last_claim_ts, upgrade_end_ts, last_defend_ts, last_risk_ts
		FROM game.holdings
		WHERE class_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var h game.Holding
	var id, level, shield, risk int64
	err := tx.QueryRow(ctx, query, int64(classID)).Scan(
		&h.Player, &id, &level, &shield, &risk,
		&h.LastClaimTS, &h.UpgradeEndTS, &h.LastDefendTS, &h.LastRiskTS,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return h, ErrNotFound
	}
	if err != nil {
		return h, err
	}
	h.ClassID = uint64(id)
	h.Level = uint16(level)
	h.Shield = uint32(shield)
	h.RiskScore = uint32(risk)
	return h, nil
}

func saveHoldingTx(ctx context.Context, tx pgx.Tx, h *game.Holding) error {
	_, err := tx.Exec(ctx, `
		UPDATE game.holdings
		SET player = $1, level = $2, shield = $3, risk_score = $4,
		    last_claim_ts = $5, upgrade_end_ts = $6, last_defend_ts = $7,
		    last_risk_ts = $8, updated_at = now()
		WHERE class_id = $9
	`, h.Player, int64(h.Level), int64(h.Shield), int64(h.RiskScore),
		h.LastClaimTS, h.UpgradeEndTS, h.LastDefendTS, h.LastRiskTS, int64(h.ClassID))
	return err
}

func loadPlayerTx(ctx context.Context, tx pgx.Tx, authority string, forUpdate bool) (game.Player, error) {
	query := `
		SELECT authority, last_defend_ts
		FROM game.players
		WHERE authority = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var p game.Player
	err := tx.QueryRow(ctx, query, authority).Scan(&p.Authority, &p.LastDefendTS)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func loadPlayerStateTx(ctx context.Context, tx pgx.Tx, owner string, forUpdate bool) (game.PlayerState, error) {
	query := `
		SELECT owner, credits, streak_count, work_frequency_level, cooldown_hours,
		       last_work_ts, total_work_actions, businesses_owned,
		       active_business_slots, last_streak_check
		FROM game.player_states
		WHERE owner = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var ps game.PlayerState
	var credits, streak, total int64
	var level, cooldown int16
	var owned, slots []int16
	err := tx.QueryRow(ctx, query, owner).Scan(
		&ps.Owner, &credits, &streak, &level, &cooldown,
		&ps.LastWorkTimestamp, &total, &owned, &slots, &ps.LastStreakCheck,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ps, ErrNotFound
	}
	if err != nil {
		return ps, err
	}
	ps.Credits = uint64(credits)
	ps.StreakCount = uint32(streak)
	ps.WorkFrequencyLevel = uint8(level)
	ps.CooldownHours = uint8(cooldown)
	ps.TotalWorkActions = uint64(total)
	ps.BusinessesOwned = toUint8Slice(owned)
	ps.ActiveBusinessSlots = toUint8Slice(slots)
	return ps, nil
}

func savePlayerStateTx(ctx context.Context, tx pgx.Tx, ps *game.PlayerState) error {
	_, err := tx.Exec(ctx, `
		UPDATE game.player_states
		SET credits = $1, streak_count = $2, work_frequency_level = $3,
		    cooldown_hours = $4, last_work_ts = $5, total_work_actions = $6,
		    businesses_owned = $7, active_business_slots = $8,
		    last_streak_check = $9, updated_at = now()
		WHERE owner = $10
	`, int64(ps.Credits), int64(ps.StreakCount), int16(ps.WorkFrequencyLevel),
		int16(ps.CooldownHours), ps.LastWorkTimestamp, int64(ps.TotalWorkActions),
		toInt16Slice(ps.BusinessesOwned), toInt16Slice(ps.ActiveBusinessSlots),
		ps.LastStreakCheck, ps.Owner)
	return err
}

func loadTreasuryTx(ctx context.Context, tx pgx.Tx, forUpdate bool) (game.Treasury, error) {
	query := `
		SELECT authority, base_vault, quote_vault, fee_bps, max_trade_units,
		       paused, min_base_liquidity, min_quote_liquidity, last_params_update
		FROM game.treasury
		WHERE id = 1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var t game.Treasury
	var fee, maxTrade, minBase, minQuote int64
	err := tx.QueryRow(ctx, query).Scan(
		&t.Authority, &t.BaseVault, &t.QuoteVault, &fee, &maxTrade,
		&t.Paused, &minBase, &minQuote, &t.LastParamsUpdate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrNotInitialized
	}
	if err != nil {
		return t, err
	}
	t.FeeBps = uint16(fee)
	t.MaxTradeUnits = uint64(maxTrade)
	t.MinBaseLiquidity = uint64(minBase)
	t.MinQuoteLiquidity = uint64(minQuote)
	return t, nil
}

func saveTreasuryTx(ctx context.Context, tx pgx.Tx, t *game.Treasury) error {
	_, err := tx.Exec(ctx, `
		UPDATE game.treasury
		SET fee_bps = $1, max_trade_units = $2, paused = $3,
		    last_params_update = $4
		WHERE id = 1
	`, int64(t.FeeBps), int64(t.MaxTradeUnits), t.Paused, t.LastParamsUpdate)
	return err
}

func toUint8Slice(in []int16) []uint8 {
	out := make([]uint8, 0, len(in))
	for _, v := range in {
		out = append(out, uint8(v))
	}
	return out
}

func toInt16Slice(in []uint8) []int16 {
	out := make([]int16, 0, len(in))
	for _, v := range in {
		out = append(out, int16(v))
	}
	return out
}
