package pool

import (
	"log"
	"sync"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/stakeworks/poolledger/internal/metrics"
	"github.com/stakeworks/poolledger/internal/models"
	"github.com/stakeworks/poolledger/internal/notify"
	"github.com/stakeworks/poolledger/internal/transfer"
)

// Controller orchestrates the public pool operations. Every mutating
// operation holds the controller mutex and runs inside one database
// transaction: a reward deposit reads the pool's total stake and must not
// race a stake mutation, and any failure rolls the whole operation back with
// no partial state change. Every mutating operation settles the account
// before touching its stake.
type Controller struct {
	db       *gorm.DB
	mu       sync.Mutex
	policy   Policy
	bank     transfer.Transferrer
	notifier notify.Notifier
	logger   *log.Logger
}

func NewController(db *gorm.DB, policy Policy, bank transfer.Transferrer, notifier notify.Notifier, logger *log.Logger) *Controller {
	return &Controller{
		db:       db,
		policy:   policy,
		bank:     bank,
		notifier: notifier,
		logger:   logger,
	}
}

// EnsurePool creates the single pool aggregate row if it does not exist yet.
func EnsurePool(db *gorm.DB) error {
	p := models.Pool{ID: models.PoolID}
	err := db.FirstOrCreate(&p, models.Pool{ID: models.PoolID}).Error
	return errors.Wrap(err, "ensure pool row")
}

func loadPool(db *gorm.DB) (*models.Pool, error) {
	var p models.Pool
	if err := db.First(&p, "id = ?", models.PoolID).Error; err != nil {
		return nil, errors.Wrap(err, "load pool")
	}
	return &p, nil
}

// DepositStake credits amount to the account's stake. Inbound funds are
// assumed already escrowed by the external custodian before this call.
func (c *Controller) DepositStake(address string, amount uint64) error {
	if amount == 0 {
		return ErrZeroValue
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := c.db.Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin deposit")
	}
	if _, err := NewEngine(tx).Settle(address); err != nil {
		tx.Rollback()
		return err
	}
	ledger := NewAccountLedger(tx)
	acc, err := ledger.Get(address)
	if err != nil {
		tx.Rollback()
		return err
	}
	acc.Stake += amount
	if err := ledger.put(acc); err != nil {
		tx.Rollback()
		return err
	}
	p, err := loadPool(tx)
	if err != nil {
		tx.Rollback()
		return err
	}
	p.TotalStake += amount
	if err := tx.Save(p).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "update pool")
	}
	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "commit deposit")
	}

	metrics.StakeDeposits.Inc()
	metrics.TotalStake.Set(float64(p.TotalStake))
	c.notifier.Publish(notify.NewEvent(notify.StakeDeposited, address, amount, nil))
	return nil
}

// WithdrawStake settles the account, so the amount paid out includes all
// matured rewards, then zeroes its stake and pays the full amount through
// the external transferrer. A transfer failure rolls back every ledger
// change; no partial debit survives.
func (c *Controller) WithdrawStake(address string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := c.db.Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin withdrawal")
	}
	if _, err := NewEngine(tx).Settle(address); err != nil {
		tx.Rollback()
		return err
	}
	ledger := NewAccountLedger(tx)
	acc, err := ledger.Get(address)
	if err != nil {
		tx.Rollback()
		return err
	}
	if acc.Stake == 0 {
		tx.Rollback()
		return errors.WithMessage(ErrNoStake, address)
	}
	amount := acc.Stake
	acc.Stake = 0
	if err := ledger.put(acc); err != nil {
		tx.Rollback()
		return err
	}
	p, err := loadPool(tx)
	if err != nil {
		tx.Rollback()
		return err
	}
	p.TotalStake -= amount
	if err := tx.Save(p).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "update pool")
	}
	// The payment happens before commit: if the custodian fails, the ledger
	// rolls back and no debit survives. Silently dropping the failure while
	// zeroing stake would destroy value.
	if err := c.bank.Pay(address, amount); err != nil {
		tx.Rollback()
		return errors.WithMessagef(ErrValueTransfer, "pay %d to %s: %v", amount, address, err)
	}
	if err := tx.Commit().Error; err != nil {
		c.logger.Printf("FATAL: withdrawal of %d to %s was paid but not committed: %v", amount, address, err)
		return errors.Wrap(err, "commit withdrawal")
	}

	metrics.StakeWithdrawals.Inc()
	metrics.TotalStake.Set(float64(p.TotalStake))
	c.notifier.Publish(notify.NewEvent(notify.StakeWithdrawn, address, amount, nil))
	return nil
}

// Redeem settles the account voluntarily, folding owed reward into stake so
// it earns in future epochs. No funds leave the pool. Returns the amount
// newly credited, which may be zero; a zero redemption still notifies.
func (c *Controller) Redeem(address string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := c.db.Begin()
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "begin redeem")
	}
	ledger := NewAccountLedger(tx)
	acc, err := ledger.Get(address)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if acc.Stake == 0 {
		tx.Rollback()
		return 0, errors.WithMessage(ErrNoStake, address)
	}
	count, err := NewEpochStore(tx).Count()
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if acc.LastSettledEpoch == count {
		tx.Rollback()
		return 0, errors.WithMessage(ErrNothingToRedeem, address)
	}
	owed, err := NewEngine(tx).Settle(address)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit().Error; err != nil {
		return 0, errors.Wrap(err, "commit redeem")
	}

	metrics.Redemptions.Inc()
	c.notifier.Publish(notify.NewEvent(notify.RewardRedeemed, address, owed, nil))
	return owed, nil
}

// DepositReward appends a reward epoch on behalf of the operator. The epoch
// records the pool's total stake strictly before the reward was added; that
// snapshot is what makes every account's share computable later without
// touching any other account now.
func (c *Controller) DepositReward(caller string, amount uint64) (uint64, error) {
	if !c.policy.Authorized(caller) {
		return 0, errors.WithMessage(ErrUnauthorized, caller)
	}
	if amount == 0 {
		return 0, ErrZeroValue
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tx := c.db.Begin()
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "begin reward deposit")
	}
	p, err := loadPool(tx)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if p.TotalStake == 0 {
		tx.Rollback()
		return 0, ErrEmptyPool
	}
	index, err := NewEpochStore(tx).Append(amount, p.TotalStake)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	p.TotalStake += amount
	p.EpochCount = index + 1
	if err := tx.Save(p).Error; err != nil {
		tx.Rollback()
		return 0, errors.Wrap(err, "update pool")
	}
	if err := tx.Commit().Error; err != nil {
		return 0, errors.Wrap(err, "commit reward deposit")
	}

	metrics.RewardDeposits.Inc()
	metrics.TotalStake.Set(float64(p.TotalStake))
	metrics.EpochCount.Set(float64(p.EpochCount))
	epoch := index
	c.notifier.Publish(notify.NewEvent(notify.RewardDeposited, caller, amount, &epoch))
	return index, nil
}

// Balance returns the account's settled stake without settling it.
func (c *Controller) Balance(address string) (uint64, error) {
	acc, err := NewAccountLedger(c.db).Get(address)
	if err != nil {
		return 0, err
	}
	return acc.Stake, nil
}

func (c *Controller) LastSettledEpoch(address string) (uint64, error) {
	acc, err := NewAccountLedger(c.db).Get(address)
	if err != nil {
		return 0, err
	}
	return acc.LastSettledEpoch, nil
}

// PendingReward previews what a settlement would credit right now.
func (c *Controller) PendingReward(address string) (uint64, error) {
	return NewEngine(c.db).Pending(address)
}

func (c *Controller) PoolInfo() (*models.Pool, error) {
	return loadPool(c.db)
}

func (c *Controller) Epoch(number uint64) (*models.RewardEpoch, error) {
	return NewEpochStore(c.db).Get(number)
}
