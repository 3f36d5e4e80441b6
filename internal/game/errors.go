package game

import "errors"

// Every failure is terminal for the invoking action: nothing is applied and
// the caller decides whether to resubmit.
var (
	ErrMathOverflow = errors.New("math operation overflow")
	ErrMathError    = errors.New("math overflow/underflow")

	ErrGamePaused     = errors.New("game is paused")
	ErrTreasuryPaused = errors.New("treasury is paused")
	ErrUnauthorized   = errors.New("unauthorized access")

	ErrCooldownNotExpired = errors.New("cooldown not expired")
	ErrCooldownActive     = errors.New("work cooldown still active")
	ErrUpgradeInProgress  = errors.New("upgrade in progress")
	ErrAssetNotAtRisk     = errors.New("asset not at risk")
	ErrInvalidParameters  = errors.New("invalid parameters")

	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientCredits   = errors.New("insufficient credits")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrInsufficientSeed      = errors.New("insufficient seed liquidity")

	ErrInvalidBusinessID = errors.New("invalid business id")
	ErrAlreadyOwned      = errors.New("already owned")
	ErrNotOwned          = errors.New("business not owned")
	ErrMaxSlotsReached   = errors.New("maximum slots reached")

	ErrFeeTooHigh       = errors.New("fee too high (max 10%)")
	ErrZeroAmount       = errors.New("zero amount not allowed")
	ErrTradeTooLarge    = errors.New("trade too large")
	ErrSlippageExceeded = errors.New("slippage exceeded")
	ErrPoolNotReady     = errors.New("pool not ready")
)
