package pool

import "github.com/pkg/errors"

var (
	// ErrZeroValue rejects amount-bearing operations with a zero amount.
	ErrZeroValue = errors.New("amount must be positive")
	// ErrNoStake rejects operations that require a staked account.
	ErrNoStake = errors.New("account has no stake")
	// ErrNothingToRedeem rejects a redeem when no epochs have elapsed since
	// the account's last settlement.
	ErrNothingToRedeem = errors.New("no epochs elapsed since last settlement")
	// ErrEmptyPool rejects a reward deposit while the pool holds no stake.
	ErrEmptyPool = errors.New("reward deposit into empty pool")
	// ErrUnauthorized rejects a reward deposit from anyone but the operator.
	ErrUnauthorized = errors.New("caller is not the pool operator")
	// ErrValueTransfer reports a failed outbound payment during withdrawal.
	ErrValueTransfer = errors.New("outbound value transfer failed")

	// ErrInvalidReward and ErrEpochOutOfRange are EpochStore contract
	// violations. The controller's preconditions make them unreachable; if
	// one surfaces, treat it as a broken invariant, not a user error.
	ErrInvalidReward   = errors.New("reward epoch with zero amount or pool balance")
	ErrEpochOutOfRange = errors.New("epoch index out of range")
)
