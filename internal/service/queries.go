package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"assetwars/internal/game"
	"assetwars/internal/ledger"
)

// Read surface. These run on the pool outside any transaction; slight
// staleness under concurrent writes is acceptable for reads.

type HoldingView struct {
	game.Holding
	CurrentPrice uint64 `json:"current_price"`
	TakeoverCost uint64 `json:"takeover_cost"`
}

type TreasuryView struct {
	game.Treasury
	BaseReserve  uint64 `json:"base_reserve"`
	QuoteReserve uint64 `json:"quote_reserve"`
	Price        uint64 `json:"price"`
}

type NotificationView struct {
	ID        int64           `json:"id"`
	GroupID   string          `json:"group_id"`
	Kind      string          `json:"kind"`
	Player    string          `json:"player,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

type PricePoint struct {
	TickAt       time.Time `json:"tick_at"`
	BaseReserve  uint64    `json:"base_reserve"`
	QuoteReserve uint64    `json:"quote_reserve"`
	PriceScaled  uint64    `json:"price_scaled"`
}

func (s *Service) GetConfig(ctx context.Context) (game.GameConfig, error) {
	var cfg game.GameConfig
	var fee, threshold, growth, reduction int64
	err := s.db.QueryRow(ctx, `
		SELECT admin, fee_bps, paused, default_upgrade_cd, default_defend_cd,
		       risk_threshold, risk_growth_per_sec, defend_reduction
		FROM game.config
		WHERE id = 1
	`).Scan(&cfg.Admin, &fee, &cfg.Paused, &cfg.DefaultUpgradeCD, &cfg.DefaultDefendCD,
		&threshold, &growth, &reduction)
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

func (s *Service) ListClasses(ctx context.Context) ([]game.AssetClass, error) {
	rows, err := s.db.Query(ctx, `
		SELECT class_id, base_price, price_scale_num, price_scale_den,
		       base_yield, upgrade_cd, defend_cd, base_risk_growth_per_sec
		FROM game.asset_classes
		ORDER BY class_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []game.AssetClass
	for rows.Next() {
		var c game.AssetClass
		var id, base, num, den, yield, growth int64
		if err := rows.Scan(&id, &base, &num, &den, &yield, &c.UpgradeCD, &c.DefendCD, &growth); err != nil {
			return nil, err
		}
		c.ClassID = uint64(id)
		c.BasePrice = uint64(base)
		c.PriceScaleNum = uint64(num)
		c.PriceScaleDen = uint64(den)
		c.BaseYield = uint64(yield)
		c.BaseRiskGrowthPerSec = uint32(growth)
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetHolding returns the holding for a class with the current-level price and
// takeover premium projected from the class curve.
func (s *Service) GetHolding(ctx context.Context, classID uint64) (HoldingView, error) {
	var v HoldingView
	var id, level, shield, risk int64
	err := s.db.QueryRow(ctx, `
		SELECT player, class_id, level, shield, risk_score,
		       last_claim_ts, upgrade_end_ts, last_defend_ts, last_risk_ts
		FROM game.holdings
		WHERE class_id = $1
	`, int64(classID)).Scan(&v.Player, &id, &level, &shield, &risk,
		&v.LastClaimTS, &v.UpgradeEndTS, &v.LastDefendTS, &v.LastRiskTS)
	if errors.Is(err, pgx.ErrNoRows) {
		return v, ErrNotFound
	}
	if err != nil {
		return v, err
	}
	v.ClassID = uint64(id)
	v.Level = uint16(level)
	v.Shield = uint32(shield)
	v.RiskScore = uint32(risk)

	var base, num, den int64
	err = s.db.QueryRow(ctx, `
		SELECT base_price, price_scale_num, price_scale_den
		FROM game.asset_classes
		WHERE class_id = $1
	`, int64(classID)).Scan(&base, &num, &den)
	if err != nil {
		return v, err
	}
	if price, perr := game.PriceForLevel(uint64(base), uint64(num), uint64(den), v.Level); perr == nil {
		v.CurrentPrice = price
	}
	if cost, perr := game.TakeoverCost(uint64(base), uint64(num), uint64(den), v.Level); perr == nil {
		v.TakeoverCost = cost
	}
	return v, nil
}

func (s *Service) ListHoldings(ctx context.Context, player string) ([]game.Holding, error) {
	rows, err := s.db.Query(ctx, `
		SELECT player, class_id, level, shield, risk_score,
		       last_claim_ts, upgrade_end_ts, last_defend_ts, last_risk_ts
		FROM game.holdings
		WHERE player = $1
		ORDER BY class_id
	`, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []game.Holding
	for rows.Next() {
		var h game.Holding
		var id, level, shield, risk int64
		if err := rows.Scan(&h.Player, &id, &level, &shield, &risk,
			&h.LastClaimTS, &h.UpgradeEndTS, &h.LastDefendTS, &h.LastRiskTS); err != nil {
			return nil, err
		}
		h.ClassID = uint64(id)
		h.Level = uint16(level)
		h.Shield = uint32(shield)
		h.RiskScore = uint32(risk)
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Service) GetPlayerState(ctx context.Context, owner string) (game.PlayerState, error) {
	var ps game.PlayerState
	var credits, streak, total int64
	var level, cooldown int16
	var owned, slots []int16
	err := s.db.QueryRow(ctx, `
		SELECT owner, credits, streak_count, work_frequency_level, cooldown_hours,
		       last_work_ts, total_work_actions, businesses_owned,
		       active_business_slots, last_streak_check
		FROM game.player_states
		WHERE owner = $1
	`, owner).Scan(&ps.Owner, &credits, &streak, &level, &cooldown,
		&ps.LastWorkTimestamp, &total, &owned, &slots, &ps.LastStreakCheck)
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

func (s *Service) GetTreasury(ctx context.Context) (TreasuryView, error) {
	var v TreasuryView
	var fee, maxTrade, minBase, minQuote int64
	err := s.db.QueryRow(ctx, `
		SELECT authority, base_vault, quote_vault, fee_bps, max_trade_units,
		       paused, min_base_liquidity, min_quote_liquidity, last_params_update
		FROM game.treasury
		WHERE id = 1
	`).Scan(&v.Authority, &v.BaseVault, &v.QuoteVault, &fee, &maxTrade,
		&v.Paused, &minBase, &minQuote, &v.LastParamsUpdate)
	if errors.Is(err, pgx.ErrNoRows) {
		return v, ErrNotInitialized
	}
	if err != nil {
		return v, err
	}
	v.FeeBps = uint16(fee)
	v.MaxTradeUnits = uint64(maxTrade)
	v.MinBaseLiquidity = uint64(minBase)
	v.MinQuoteLiquidity = uint64(minQuote)

	if v.BaseReserve, err = ledger.Balance(ctx, s.db, v.BaseVault); err != nil {
		return v, err
	}
	if v.QuoteReserve, err = ledger.Balance(ctx, s.db, v.QuoteVault); err != nil {
		return v, err
	}
	v.Price = game.PoolPrice(v.BaseReserve, v.QuoteReserve)
	return v, nil
}

// BalanceOf reads a player's base-token account balance.
func (s *Service) BalanceOf(ctx context.Context, player string) (uint64, error) {
	return ledger.Balance(ctx, s.db, ledger.PlayerAccount(player))
}

// ListNotifications pages the notification log for one player, newest first.
func (s *Service) ListNotifications(ctx context.Context, player string, beforeID int64, limit int) ([]NotificationView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if beforeID <= 0 {
		beforeID = int64(^uint64(0) >> 1)
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, tx_group_id, kind, COALESCE(player, ''), payload, created_at
		FROM game.notifications
		WHERE player = $1 AND id < $2
		ORDER BY id DESC
		LIMIT $3
	`, player, beforeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []NotificationView
	for rows.Next() {
		var n NotificationView
		if err := rows.Scan(&n.ID, &n.GroupID, &n.Kind, &n.Player, &n.Payload, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// NotificationsAfter reads the global log forward from a cursor, for the
// websocket feed.
func (s *Service) NotificationsAfter(ctx context.Context, afterID int64, limit int) ([]NotificationView, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, tx_group_id, kind, COALESCE(player, ''), payload, created_at
		FROM game.notifications
		WHERE id > $1
		ORDER BY id
		LIMIT $2
	`, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []NotificationView
	for rows.Next() {
		var n NotificationView
		if err := rows.Scan(&n.ID, &n.GroupID, &n.Kind, &n.Player, &n.Payload, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// LatestNotificationID returns the current tail of the notification log, or 0
// when the log is empty. Feed pollers seed their cursor from it so reconnects
// do not replay history.
func (s *Service) LatestNotificationID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(id), 0) FROM game.notifications
	`).Scan(&id)
	return id, err
}

// PriceHistory reads recent pool snapshots, newest first.
func (s *Service) PriceHistory(ctx context.Context, limit int) ([]PricePoint, error) {
	if limit <= 0 || limit > 500 {
		limit = 64
	}
	rows, err := s.db.Query(ctx, `
		SELECT tick_at, base_reserve, quote_reserve, price_scaled
		FROM game.treasury_prices
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PricePoint
	for rows.Next() {
		var p PricePoint
		var base, quote, price int64
		if err := rows.Scan(&p.TickAt, &base, &quote, &price); err != nil {
			return nil, err
		}
		p.BaseReserve = uint64(base)
		p.QuoteReserve = uint64(quote)
		p.PriceScaled = uint64(price)
		out = append(out, p)
	}
	return out, rows.Err()
}
