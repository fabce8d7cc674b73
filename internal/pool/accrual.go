package pool

import (
	"math/big"

	"gorm.io/gorm"

	"github.com/stakeworks/poolledger/internal/models"
)

// Engine performs lazy settlement. Because every reward epoch records the
// pool's total stake at the moment of that specific reward, an account's
// share of epoch i is computable independently of what other accounts did
// afterwards, so settlement can be deferred indefinitely and computed
// per-account in time proportional to the epochs missed.
type Engine struct {
	epochs *EpochStore
	ledger *AccountLedger
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		epochs: NewEpochStore(db),
		ledger: NewAccountLedger(db),
	}
}

// Settle folds all reward owed since the account's last-settled epoch into
// its stake, advances the marker to the current epoch count, and returns the
// newly credited amount.
func (e *Engine) Settle(address string) (uint64, error) {
	acc, err := e.ledger.Get(address)
	if err != nil {
		return 0, err
	}
	count, err := e.epochs.Count()
	if err != nil {
		return 0, err
	}
	if acc.Stake == 0 || acc.LastSettledEpoch == count {
		// A zero-stake account can still carry a stale marker.
		if acc.LastSettledEpoch != count {
			if err := e.ledger.SetLastSettled(address, count); err != nil {
				return 0, err
			}
		}
		return 0, nil
	}
	owed, err := e.owedSince(acc, count)
	if err != nil {
		return 0, err
	}
	acc.Stake += owed
	acc.LastSettledEpoch = count
	if err := e.ledger.put(acc); err != nil {
		return 0, err
	}
	return owed, nil
}

// Pending computes what Settle would credit, without mutating anything.
func (e *Engine) Pending(address string) (uint64, error) {
	acc, err := e.ledger.Get(address)
	if err != nil {
		return 0, err
	}
	count, err := e.epochs.Count()
	if err != nil {
		return 0, err
	}
	if acc.Stake == 0 || acc.LastSettledEpoch == count {
		return 0, nil
	}
	return e.owedSince(acc, count)
}

// owedSince walks epochs [acc.LastSettledEpoch, count) in order. The stake
// used for every epoch is the stake at the start of the walk; owed reward
// does not compound within a single settlement.
func (e *Engine) owedSince(acc *models.Account, count uint64) (uint64, error) {
	var owed uint64
	for i := acc.LastSettledEpoch; i < count; i++ {
		epoch, err := e.epochs.Get(i)
		if err != nil {
			return 0, err
		}
		owed += share(acc.Stake, epoch.RewardAmount, epoch.PoolBalance)
	}
	return owed, nil
}

// share is floor(stake * reward / poolBalance). The remainder is dust and
// stays unclaimed. The product goes through big.Int so large stakes cannot
// wrap uint64 mid-calculation.
func share(stake, reward, poolBalance uint64) uint64 {
	p := new(big.Int).Mul(new(big.Int).SetUint64(stake), new(big.Int).SetUint64(reward))
	return p.Div(p, new(big.Int).SetUint64(poolBalance)).Uint64()
}
