// Package ledger implements the atomic value-movement boundary the game core
// relies on: named accounts with non-negative balances, moved by all-or-
// nothing transfers inside the caller's transaction. The game never touches
// balances directly; every debit is pre-checked here and a failed transfer
// aborts the surrounding action.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"assetwars/internal/game"
)

// Well-known account names. Player token accounts are derived with
// PlayerAccount.
const (
	GameVault          = "vault:game"
	TreasuryBaseVault  = "vault:treasury:base"
	TreasuryQuoteVault = "vault:treasury:quote"
)

// PlayerAccount derives the base-token account name for a player identity.
func PlayerAccount(playerID string) string {
	return "player:" + playerID
}

// Querier is the read-only subset of pgx.Tx the ledger needs; *pgxpool.Pool
// satisfies it too, so balances can be read outside a transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EnsureAccount creates the account row if it does not exist yet.
func EnsureAccount(ctx context.Context, tx pgx.Tx, account string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO game.accounts (name, balance)
		VALUES ($1, 0)
		ON CONFLICT (name) DO NOTHING
	`, account)
	return err
}

// Balance reads an account's current balance; a missing account reads as 0.
func Balance(ctx context.Context, q Querier, account string) (uint64, error) {
	var balance int64
	err := q.QueryRow(ctx, `
		SELECT balance FROM game.accounts WHERE name = $1
	`, account).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return uint64(balance), nil
}

// Transfer moves amount from one account to another inside tx. The debit is
// balance-checked; game.ErrInsufficientFunds means the payer cannot cover it
// and nothing has moved.
func Transfer(ctx context.Context, tx pgx.Tx, from, to string, amount uint64) error {
	if from == to {
		return fmt.Errorf("ledger: self transfer from %q", from)
	}
	cmd, err := tx.Exec(ctx, `
		UPDATE game.accounts
		SET balance = balance - $1, updated_at = now()
		WHERE name = $2 AND balance >= $1
	`, int64(amount), from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return game.ErrInsufficientFunds
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO game.accounts (name, balance)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET balance = game.accounts.balance + EXCLUDED.balance, updated_at = now()
	`, to, int64(amount)); err != nil {
		return err
	}
	return nil
}

// Mint credits value to an account without a paying side. Used for liquidity
// seeding and for mirroring credits that enter the pool; asset actions always
// move existing value with Transfer.
func Mint(ctx context.Context, tx pgx.Tx, to string, amount uint64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO game.accounts (name, balance)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET balance = game.accounts.balance + EXCLUDED.balance, updated_at = now()
	`, to, int64(amount))
	return err
}

// Burn removes tokens from an account, balance-checked like a debit.
func Burn(ctx context.Context, tx pgx.Tx, from string, amount uint64) error {
	cmd, err := tx.Exec(ctx, `
		UPDATE game.accounts
		SET balance = balance - $1, updated_at = now()
		WHERE name = $2 AND balance >= $1
	`, int64(amount), from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return game.ErrInsufficientFunds
	}
	return nil
}
