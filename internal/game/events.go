package game

// Notification payloads, one type per action family. The boundary layer
// serializes these to JSON and appends them to the notification log after a
// successful transition; the worker and websocket feed consume them.

// Notification kinds.
const (
	KindPlayerJoined          = "player_joined"
	KindPlayerInitialized     = "player_initialized"
	KindAssetBought           = "asset_bought"
	KindUpgradeQueued         = "upgrade_queued"
	KindUpgradeFinished       = "upgrade_finished"
	KindDefended              = "defended"
	KindTakenOver             = "taken_over"
	KindWorkCompleted         = "work_completed"
	KindStreakBroken          = "streak_broken"
	KindLevelUp               = "level_up"
	KindBusinessPurchased     = "business_purchased"
	KindSlotsUpdated          = "slots_updated"
	KindSwapExecuted          = "swap_executed"
	KindLiquidityAdded        = "liquidity_added"
	KindGameInitialized       = "game_initialized"
	KindClassAdded            = "class_added"
	KindParamsUpdated         = "params_updated"
	KindPauseToggled          = "pause_toggled"
	KindTreasuryInitialized   = "treasury_initialized"
	KindTreasuryParamsUpdated = "treasury_params_updated"
	KindAssetAtRisk           = "asset_at_risk"
)

type PlayerJoined struct {
	Player string `json:"player"`
}

type AssetBought struct {
	Player  string `json:"player"`
	ClassID uint64 `json:"class_id"`
	Price   uint64 `json:"price"`
	Level   uint16 `json:"level"`
}

type UpgradeQueued struct {
	Player  string `json:"player"`
	ClassID uint64 `json:"class_id"`
	Cost    uint64 `json:"cost"`
	EndTS   int64  `json:"end_ts"`
}

type UpgradeFinished struct {
	Player   string `json:"player"`
	ClassID  uint64 `json:"class_id"`
	NewLevel uint16 `json:"new_level"`
}

type Defended struct {
	Player      string `json:"player"`
	ClassID     uint64 `json:"class_id"`
	Spend       uint64 `json:"spend"`
	RiskAfter   uint32 `json:"risk_after"`
	ShieldAfter uint32 `json:"shield_after"`
}

type TakenOver struct {
	FromPlayer string `json:"from_player"`
	ToPlayer   string `json:"to_player"`
	ClassID    uint64 `json:"class_id"`
	Level      uint16 `json:"level"`
	Cost       uint64 `json:"cost"`
}

type WorkCompleted struct {
	Player    string `json:"player"`
	Reward    uint64 `json:"reward"`
	NewStreak uint32 `json:"new_streak"`
	NewLevel  uint8  `json:"new_level"`
	Timestamp int64  `json:"timestamp"`
}

type StreakBroken struct {
	Player    string `json:"player"`
	OldStreak uint32 `json:"old_streak"`
	Timestamp int64  `json:"timestamp"`
}

type LevelUp struct {
	Player           string `json:"player"`
	NewLevel         uint8  `json:"new_level"`
	NewCooldownHours uint8  `json:"new_cooldown_hours"`
	Timestamp        int64  `json:"timestamp"`
}

type BusinessPurchased struct {
	Player     string `json:"player"`
	BusinessID uint8  `json:"business_id"`
	Cost       uint64 `json:"cost"`
	Timestamp  int64  `json:"timestamp"`
}

type SlotsUpdated struct {
	Player string  `json:"player"`
	Slots  []uint8 `json:"slots"`
}

type SwapExecuted struct {
	Player      string `json:"player"`
	BaseIn      uint64 `json:"base_in"`
	QuoteIn     uint64 `json:"quote_in"`
	AmountOut   uint64 `json:"amount_out"`
	FeePaid     uint64 `json:"fee_paid"`
	PriceBefore uint64 `json:"price_before"`
	PriceAfter  uint64 `json:"price_after"`
	Timestamp   int64  `json:"timestamp"`
}

type LiquidityAdded struct {
	BaseAmount        uint64 `json:"base_amount"`
	QuoteAmount       uint64 `json:"quote_amount"`
	TotalBaseReserve  uint64 `json:"total_base_reserve"`
	TotalQuoteReserve uint64 `json:"total_quote_reserve"`
	Timestamp         int64  `json:"timestamp"`
}

type ParamsUpdated struct {
	Previous GameConfig `json:"previous"`
	Current  GameConfig `json:"current"`
}

type TreasuryParamsUpdated struct {
	OldFeeBps   uint16 `json:"old_fee_bps"`
	NewFeeBps   uint16 `json:"new_fee_bps"`
	OldMaxTrade uint64 `json:"old_max_trade"`
	NewMaxTrade uint64 `json:"new_max_trade"`
	Paused      bool   `json:"paused"`
	Timestamp   int64  `json:"timestamp"`
}

type AssetAtRisk struct {
	Player    string `json:"player"`
	ClassID   uint64 `json:"class_id"`
	RiskScore uint32 `json:"risk_score"`
	Threshold uint32 `json:"threshold"`
	Timestamp int64  `json:"timestamp"`
}
