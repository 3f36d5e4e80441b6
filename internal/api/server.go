// Package api exposes the game over HTTP: JSON endpoints for every player and
// admin action, a read surface, and a websocket notification feed. Players
// authenticate with an opaque bearer token that doubles as their wallet
// identity; admin routes require the configured admin token.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"assetwars/internal/config"
	"assetwars/internal/game"
	"assetwars/internal/service"
)

type contextKey string

const playerContextKey contextKey = "player"

type Server struct {
	cfg config.APIConfig
	log *slog.Logger
	svc *service.Service
	hub *Hub
	mux *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, svc *service.Service, hub *Hub) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg: cfg,
		log: logger,
		svc: svc,
		hub: hub,
		mux: chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Get("/classes", s.handleClassesList)
		r.Get("/classes/{class_id}/holding", s.handleHolding)
		r.Get("/treasury", s.handleTreasury)
		r.Get("/treasury/prices", s.handleTreasuryPrices)
		r.Get("/businesses", s.handleBusinessCatalog)
		if s.hub != nil {
			r.Get("/feed", s.hub.serveWs)
		}

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/players/join", s.handleJoin)
			r.Post("/players/init", s.handleInitPlayer)
			r.Get("/players/me", s.handleMe)
			r.Get("/players/me/notifications", s.handleNotifications)
			r.Post("/work", s.handleWork)
			r.Post("/businesses/slots", s.handleSetSlots)
			r.Post("/businesses/{business_id}/purchase", s.handlePurchaseBusiness)
			r.Post("/assets/{class_id}/buy", s.handleBuyAsset)
			r.Post("/assets/{class_id}/upgrade", s.handleQueueUpgrade)
			r.Post("/assets/{class_id}/upgrade/finish", s.handleFinishUpgrade)
			r.Post("/assets/{class_id}/defend", s.handleDefend)
			r.Post("/assets/{class_id}/takeover", s.handleTakeover)
			r.Post("/swap/buy", s.handleSwapBuy)
			r.Post("/swap/sell", s.handleSwapSell)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.adminMiddleware)
			r.Post("/admin/init", s.handleInitGame)
			r.Post("/admin/classes", s.handleAddClass)
			r.Post("/admin/params", s.handleSetParams)
			r.Post("/admin/pause", s.handleSetPaused)
			r.Post("/admin/treasury/init", s.handleInitTreasury)
			r.Post("/admin/treasury/params", s.handleSetTreasuryParams)
			r.Post("/admin/treasury/liquidity", s.handleAddLiquidity)
		})
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		ctx := context.WithValue(r.Context(), playerContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" || token != s.cfg.AdminToken {
			writeError(w, http.StatusForbidden, "admin token required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func playerFromContext(ctx context.Context) (string, error) {
	player, ok := ctx.Value(playerContextKey).(string)
	if !ok || player == "" {
		return "", errors.New("missing auth context")
	}
	return player, nil
}

// -- read surface -----------------------------------------------------------

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.svc.GetConfig(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleClassesList(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.ListClasses(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"classes": out})
}

func (s *Server) handleHolding(w http.ResponseWriter, r *http.Request) {
	classID, err := classIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class id")
		return
	}
	out, err := s.svc.GetHolding(r.Context(), classID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTreasury(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.GetTreasury(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTreasuryPrices(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	out, err := s.svc.PriceHistory(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prices": out})
}

func (s *Server) handleBusinessCatalog(w http.ResponseWriter, _ *http.Request) {
	type entry struct {
		ID   uint8  `json:"id"`
		Name string `json:"name"`
		Cost uint64 `json:"cost"`
	}
	catalog := make([]entry, 0, game.BusinessCount)
	for id := uint8(0); id < game.BusinessCount; id++ {
		name, _ := game.BusinessName(id)
		cost, _ := game.BusinessCost(id)
		catalog = append(catalog, entry{ID: id, Name: name, Cost: cost})
	}
	writeJSON(w, http.StatusOK, map[string]any{"businesses": catalog})
}

// -- player actions ---------------------------------------------------------

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	player, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err := s.svc.JoinGame(r.Context(), player); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (s *Server) handleInitPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err := s.svc.InitializePlayer(r.Context(), player); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	player, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out := map[string]any{"player": player}

	ps, err := s.svc.GetPlayerState(r.Context(), player)
	switch {
	case err == nil:
		out["state"] = ps
		out["max_slots"] = game.MaxSlots(ps.WorkFrequencyLevel)
	case errors.Is(err, service.ErrNotFound):
		out["state"] = nil
	default:
		writeDomainError(w, err)
		return
	}

	holdings, err := s.svc.ListHoldings(r.Context(), player)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out["holdings"] = holdings

	balance, err := s.svc.BalanceOf(r.Context(), player)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out["base_balance"] = balance
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	player, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	beforeID, _ := strconv.ParseInt(r.URL.Query().Get("before"), 10, 64)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	out, err := s.svc.ListNotifications(r.Context(), player, beforeID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": out})
}

func (s *Server) handleWork(w http.ResponseWriter, r *http.Request) {
	player, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.svc.DoWork(r.Context(), player, idempotencyKey(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePurchaseBusiness(w http.ResponseWriter, r *http.Request) {
	player, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	businessID, err := strconv.ParseUint(chi.URLParam(r, "business_id"), 10, 8)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}
	if err := s.svc.PurchaseBusiness(r.Context(), player, uint8(businessID), idempotencyKey(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSetSlots(w http.ResponseWriter, r *http.Request) {
	player, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Slots []uint8 `json:"slots"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.SetBusinessSlots(r.Context(), player, in.Slots, idempotencyKey(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleBuyAsset(w http.ResponseWriter, r *http.Request) {
	player, classID, ok := s.playerAndClass(w, r)
	if !ok {
		return
	}
	if err := s.svc.BuyAsset(r.Context(), player, classID, idempotencyKey(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (s *Server) handleQueueUpgrade(w http.ResponseWriter, r *http.Request) {
	player, classID, ok := s.playerAndClass(w, r)
	if !ok {
		return
	}
	if err := s.svc.QueueUpgrade(r.Context(), player, classID, idempotencyKey(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleFinishUpgrade(w http.ResponseWriter, r *http.Request) {
	player, classID, ok := s.playerAndClass(w, r)
	if !ok {
		return
	}
	if err := s.svc.FinishUpgrade(r.Context(), player, classID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDefend(w http.ResponseWriter, r *http.Request) {
	player, classID, ok := s.playerAndClass(w, r)
	if !ok {
		return
	}
	var in struct {
		Spend uint64 `json:"spend"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.Defend(r.Context(), player, classID, in.Spend, idempotencyKey(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleTakeover(w http.ResponseWriter, r *http.Request) {
	player, classID, ok := s.playerAndClass(w, r)
	if !ok {
		return
	}
	if err := s.svc.Takeover(r.Context(), player, classID, idempotencyKey(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSwapBuy(w http.ResponseWriter, r *http.Request) {
	s.handleSwap(w, r, true)
}

func (s *Server) handleSwapSell(w http.ResponseWriter, r *http.Request) {
	s.handleSwap(w, r, false)
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request, quoteForBase bool) {
	player, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		AmountIn uint64 `json:"amount_in"`
		MinOut   uint64 `json:"min_out"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var res game.SwapResult
	if quoteForBase {
		res, err = s.svc.SwapQuoteForBase(r.Context(), player, in.AmountIn, in.MinOut, idempotencyKey(r))
	} else {
		res, err = s.svc.SwapBaseForQuote(r.Context(), player, in.AmountIn, in.MinOut, idempotencyKey(r))
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// -- admin actions ----------------------------------------------------------

func (s *Server) handleInitGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Admin                       string `json:"admin"`
		FeeBps                      uint16 `json:"fee_bps"`
		DefaultUpgradeCD            int64  `json:"default_upgrade_cd"`
		DefaultDefendCD             int64  `json:"default_defend_cd"`
		RiskThreshold               uint32 `json:"risk_threshold"`
		RiskGrowthPerSec            uint32 `json:"risk_growth_per_sec"`
		DefendRiskReductionPerToken uint32 `json:"defend_risk_reduction_per_token"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.InitializeGame(r.Context(), service.InitGameInput{
		Admin:                       in.Admin,
		FeeBps:                      in.FeeBps,
		DefaultUpgradeCD:            in.DefaultUpgradeCD,
		DefaultDefendCD:             in.DefaultDefendCD,
		RiskThreshold:               in.RiskThreshold,
		RiskGrowthPerSec:            in.RiskGrowthPerSec,
		DefendRiskReductionPerToken: in.DefendRiskReductionPerToken,
	}); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (s *Server) handleAddClass(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ClassID              uint64 `json:"class_id"`
		BasePrice            uint64 `json:"base_price"`
		PriceScaleNum        uint64 `json:"price_scale_num"`
		PriceScaleDen        uint64 `json:"price_scale_den"`
		BaseYield            uint64 `json:"base_yield"`
		UpgradeCD            int64  `json:"upgrade_cd"`
		DefendCD             int64  `json:"defend_cd"`
		BaseRiskGrowthPerSec uint32 `json:"base_risk_growth_per_sec"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	admin, err := s.adminIdentity(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.svc.AddAssetClass(r.Context(), admin, game.AssetClass{
		ClassID:              in.ClassID,
		BasePrice:            in.BasePrice,
		PriceScaleNum:        in.PriceScaleNum,
		PriceScaleDen:        in.PriceScaleDen,
		BaseYield:            in.BaseYield,
		UpgradeCD:            in.UpgradeCD,
		DefendCD:             in.DefendCD,
		BaseRiskGrowthPerSec: in.BaseRiskGrowthPerSec,
	}); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (s *Server) handleSetParams(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FeeBps                      *uint16 `json:"fee_bps"`
		DefaultUpgradeCD            *int64  `json:"default_upgrade_cd"`
		DefaultDefendCD             *int64  `json:"default_defend_cd"`
		RiskThreshold               *uint32 `json:"risk_threshold"`
		RiskGrowthPerSec            *uint32 `json:"risk_growth_per_sec"`
		DefendRiskReductionPerToken *uint32 `json:"defend_risk_reduction_per_token"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	admin, err := s.adminIdentity(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.svc.SetParams(r.Context(), admin, game.GameParamsUpdate{
		FeeBps:                      in.FeeBps,
		DefaultUpgradeCD:            in.DefaultUpgradeCD,
		DefaultDefendCD:             in.DefaultDefendCD,
		RiskThreshold:               in.RiskThreshold,
		RiskGrowthPerSec:            in.RiskGrowthPerSec,
		DefendRiskReductionPerToken: in.DefendRiskReductionPerToken,
	}); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSetPaused(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Paused bool `json:"paused"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	admin, err := s.adminIdentity(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.svc.SetPaused(r.Context(), admin, in.Paused); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"paused": in.Paused})
}

func (s *Server) handleInitTreasury(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Authority         string `json:"authority"`
		FeeBps            uint16 `json:"fee_bps"`
		MaxTradeUnits     uint64 `json:"max_trade_units"`
		MinBaseLiquidity  uint64 `json:"min_base_liquidity"`
		MinQuoteLiquidity uint64 `json:"min_quote_liquidity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.InitializeTreasury(r.Context(), service.InitTreasuryInput{
		Authority:         in.Authority,
		FeeBps:            in.FeeBps,
		MaxTradeUnits:     in.MaxTradeUnits,
		MinBaseLiquidity:  in.MinBaseLiquidity,
		MinQuoteLiquidity: in.MinQuoteLiquidity,
	}); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (s *Server) handleSetTreasuryParams(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FeeBps        *uint16 `json:"fee_bps"`
		MaxTradeUnits *uint64 `json:"max_trade_units"`
		Paused        *bool   `json:"paused"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	authority, err := s.treasuryIdentity(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.svc.SetTreasuryParams(r.Context(), authority, game.TreasuryParamsUpdate{
		FeeBps:        in.FeeBps,
		MaxTradeUnits: in.MaxTradeUnits,
		Paused:        in.Paused,
	}); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAddLiquidity(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BaseAmount  uint64 `json:"base_amount"`
		QuoteAmount uint64 `json:"quote_amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	authority, err := s.treasuryIdentity(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.svc.AddLiquidity(r.Context(), authority, in.BaseAmount, in.QuoteAmount, idempotencyKey(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// adminIdentity resolves the on-record admin wallet; admin routes act as that
// identity after the token check.
func (s *Server) adminIdentity(r *http.Request) (string, error) {
	cfg, err := s.svc.GetConfig(r.Context())
	if err != nil {
		return "", err
	}
	return cfg.Admin, nil
}

func (s *Server) treasuryIdentity(r *http.Request) (string, error) {
	t, err := s.svc.GetTreasury(r.Context())
	if err != nil {
		return "", err
	}
	return t.Authority, nil
}

func (s *Server) playerAndClass(w http.ResponseWriter, r *http.Request) (string, uint64, bool) {
	player, err := playerFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return "", 0, false
	}
	classID, err := classIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid class id")
		return "", 0, false
	}
	return player, classID, true
}

func classIDParam(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "class_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid class id %q", raw)
	}
	return id, nil
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidParameters),
		errors.Is(err, game.ErrZeroAmount),
		errors.Is(err, game.ErrInvalidBusinessID),
		errors.Is(err, game.ErrFeeTooHigh),
		errors.Is(err, game.ErrNotOwned),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientCredits),
		errors.Is(err, game.ErrInsufficientLiquidity),
		errors.Is(err, game.ErrInsufficientSeed),
		errors.Is(err, game.ErrTradeTooLarge),
		errors.Is(err, game.ErrSlippageExceeded),
		errors.Is(err, game.ErrMathOverflow),
		errors.Is(err, game.ErrMathError):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrUnauthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, game.ErrGamePaused),
		errors.Is(err, game.ErrTreasuryPaused),
		errors.Is(err, game.ErrPoolNotReady):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrNotInitialized):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateIdempotency),
		errors.Is(err, service.ErrTxConflict),
		errors.Is(err, service.ErrAlreadyInitialized),
		errors.Is(err, game.ErrAlreadyOwned),
		errors.Is(err, game.ErrUpgradeInProgress),
		errors.Is(err, game.ErrCooldownNotExpired),
		errors.Is(err, game.ErrCooldownActive),
		errors.Is(err, game.ErrMaxSlotsReached),
		errors.Is(err, game.ErrAssetNotAtRisk):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func idempotencyKey(r *http.Request) string {
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key != "" {
		return key
	}
	return uuid.NewString()
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
