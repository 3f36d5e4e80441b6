package service

import (
	"context"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"assetwars/internal/game"
	"assetwars/internal/ledger"
)

// The swap boundary bridges the two currencies: credits live on the player
// state row, base tokens live in ledger accounts. The quote vault account
// mirrors the credits held by the pool, so reserves on both sides read from
// the ledger. Fees stay in the pool; only the net amount leaves the vault.

// SwapQuoteForBase trades credits for base tokens.
func (s *Service) SwapQuoteForBase(ctx context.Context, caller string, amountIn, minOut uint64, idem string) (game.SwapResult, error) {
	now := time.Now().Unix()
	var res game.SwapResult
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		t, err := loadTreasuryTx(ctx, tx, true)
		if err != nil {
			return err
		}
		if err := claimIdempotency(ctx, tx, caller, idem, "swap_quote_for_base"); err != nil {
			return err
		}
		ps, err := loadPlayerStateTx(ctx, tx, caller, true)
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

		res, err = game.SwapQuoteForBase(&t, rBase, rQuote, ps.Credits, amountIn, minOut)
		if err != nil {
			return err
		}

		ps.Credits -= amountIn
		if err := savePlayerStateTx(ctx, tx, &ps); err != nil {
			return err
		}
		if err := ledger.Mint(ctx, tx, t.QuoteVault, amountIn); err != nil {
			return err
		}
		account := ledger.PlayerAccount(caller)
		if err := ledger.EnsureAccount(ctx, tx, account); err != nil {
			return err
		}
		if err := ledger.Transfer(ctx, tx, t.BaseVault, account, res.NetOut); err != nil {
			return err
		}

		return notifyTx(ctx, tx, newGroupID(), game.KindSwapExecuted, caller, game.SwapExecuted{
			Player:      caller,
			QuoteIn:     amountIn,
			AmountOut:   res.NetOut,
			FeePaid:     res.Fee,
			PriceBefore: res.PriceBefore,
			PriceAfter:  res.PriceAfter,
			Timestamp:   now,
		})
	})
	return res, err
}

// SwapBaseForQuote trades base tokens for credits.
func (s *Service) SwapBaseForQuote(ctx context.Context, caller string, amountIn, minOut uint64, idem string) (game.SwapResult, error) {
	now := time.Now().Unix()
	var res game.SwapResult
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		t, err := loadTreasuryTx(ctx, tx, true)
		if err != nil {
			return err
		}
		if err := claimIdempotency(ctx, tx, caller, idem, "swap_base_for_quote"); err != nil {
			return err
		}
		ps, err := loadPlayerStateTx(ctx, tx, caller, true)
		if err != nil {
			return err
		}
		account := ledger.PlayerAccount(caller)
		payerBase, err := ledger.Balance(ctx, tx, account)
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

		res, err = game.SwapBaseForQuote(&t, rBase, rQuote, payerBase, amountIn, minOut)
		if err != nil {
			return err
		}

		if err := ledger.Transfer(ctx, tx, account, t.BaseVault, amountIn); err != nil {
			return err
		}
		if err := ledger.Burn(ctx, tx, t.QuoteVault, res.NetOut); err != nil {
			return err
		}
		if ps.Credits > math.MaxUint64-res.NetOut {
			return game.ErrMathOverflow
		}
		ps.Credits += res.NetOut
		if err := savePlayerStateTx(ctx, tx, &ps); err != nil {
			return err
		}

		return notifyTx(ctx, tx, newGroupID(), game.KindSwapExecuted, caller, game.SwapExecuted{
			Player:      caller,
			BaseIn:      amountIn,
			AmountOut:   res.NetOut,
			FeePaid:     res.Fee,
			PriceBefore: res.PriceBefore,
			PriceAfter:  res.PriceAfter,
			Timestamp:   now,
		})
	})
	return res, err
}
