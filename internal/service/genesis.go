package service

import (
	"context"
	"errors"
	"fmt"

	"assetwars/internal/config"
	"assetwars/internal/game"
)

// ApplyGenesis bootstraps the game state from a genesis file. Every step is
// idempotent so re-running at startup against an initialized database is a
// no-op: already-initialized singletons and already-registered classes are
// skipped.
func (s *Service) ApplyGenesis(ctx context.Context, g *config.Genesis) error {
	err := s.InitializeGame(ctx, InitGameInput{
		Admin:                       g.Game.Admin,
		FeeBps:                      g.Game.FeeBps,
		DefaultUpgradeCD:            g.Game.DefaultUpgradeCD,
		DefaultDefendCD:             g.Game.DefaultDefendCD,
		RiskThreshold:               g.Game.RiskThreshold,
		RiskGrowthPerSec:            g.Game.RiskGrowthPerSec,
		DefendRiskReductionPerToken: g.Game.DefendRiskReductionPerToken,
	})
	switch {
	case err == nil:
		s.log.Info("genesis: game initialized", "admin", g.Game.Admin)
	case errors.Is(err, ErrAlreadyInitialized):
		// keep the on-record admin when re-applying
	default:
		return fmt.Errorf("genesis game init: %w", err)
	}

	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return fmt.Errorf("genesis read config: %w", err)
	}

	for _, c := range g.Classes {
		err := s.AddAssetClass(ctx, cfg.Admin, game.AssetClass{
			ClassID:              c.ClassID,
			BasePrice:            c.BasePrice,
			PriceScaleNum:        c.PriceScaleNum,
			PriceScaleDen:        c.PriceScaleDen,
			BaseYield:            c.BaseYield,
			UpgradeCD:            c.UpgradeCD,
			DefendCD:             c.DefendCD,
			BaseRiskGrowthPerSec: c.BaseRiskGrowthPerSec,
		})
		if err != nil && !errors.Is(err, game.ErrInvalidParameters) {
			return fmt.Errorf("genesis class %d: %w", c.ClassID, err)
		}
		if err == nil {
			s.log.Info("genesis: asset class registered", "class_id", c.ClassID)
		}
	}

	if g.Treasury != nil {
		err := s.InitializeTreasury(ctx, InitTreasuryInput{
			Authority:         g.Treasury.Authority,
			FeeBps:            g.Treasury.FeeBps,
			MaxTradeUnits:     g.Treasury.MaxTradeUnits,
			MinBaseLiquidity:  g.Treasury.MinBaseLiquidity,
			MinQuoteLiquidity: g.Treasury.MinQuoteLiquidity,
		})
		switch {
		case err == nil:
			s.log.Info("genesis: treasury initialized", "authority", g.Treasury.Authority)
		case errors.Is(err, ErrAlreadyInitialized):
		default:
			return fmt.Errorf("genesis treasury init: %w", err)
		}
	}
	return nil
}
