package pool

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stakeworks/poolledger/internal/models"
)

// AccountLedger owns the account records. Setters are direct field writes;
// business validation belongs to the accrual engine and the controller.
type AccountLedger struct {
	db *gorm.DB
}

func NewAccountLedger(db *gorm.DB) *AccountLedger {
	return &AccountLedger{db: db}
}

// Get returns the account for an address, or a zero-valued record for a
// never-seen address. Nothing is persisted until a setter runs.
func (l *AccountLedger) Get(address string) (*models.Account, error) {
	var acc models.Account
	if err := l.db.First(&acc, "address = ?", address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Account{Address: address}, nil
		}
		return nil, errors.Wrap(err, "load account")
	}
	return &acc, nil
}

func (l *AccountLedger) SetStake(address string, stake uint64) error {
	acc, err := l.Get(address)
	if err != nil {
		return err
	}
	acc.Stake = stake
	return l.put(acc)
}

func (l *AccountLedger) SetLastSettled(address string, epoch uint64) error {
	acc, err := l.Get(address)
	if err != nil {
		return err
	}
	acc.LastSettledEpoch = epoch
	return l.put(acc)
}

// All returns every persisted account.
func (l *AccountLedger) All() ([]models.Account, error) {
	var accounts []models.Account
	if err := l.db.Find(&accounts).Error; err != nil {
		return nil, errors.Wrap(err, "list accounts")
	}
	return accounts, nil
}

func (l *AccountLedger) put(acc *models.Account) error {
	err := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		UpdateAll: true,
	}).Create(acc).Error
	return errors.Wrap(err, "save account")
}
