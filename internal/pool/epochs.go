package pool

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/stakeworks/poolledger/internal/models"
)

// EpochStore is the append-only sequence of reward epochs. A record's index
// equals its position in deposit order; records are immutable once appended
// and never reordered or removed.
type EpochStore struct {
	db *gorm.DB
}

func NewEpochStore(db *gorm.DB) *EpochStore {
	return &EpochStore{db: db}
}

// Append records one reward-deposit event and returns its epoch index.
func (s *EpochStore) Append(rewardAmount, poolBalance uint64) (uint64, error) {
	if rewardAmount == 0 || poolBalance == 0 {
		return 0, errors.WithMessagef(ErrInvalidReward, "amount=%d pool=%d", rewardAmount, poolBalance)
	}
	next, err := s.Count()
	if err != nil {
		return 0, err
	}
	epoch := models.RewardEpoch{
		Number:       next,
		RewardAmount: rewardAmount,
		PoolBalance:  poolBalance,
	}
	if err := s.db.Create(&epoch).Error; err != nil {
		return 0, errors.Wrap(err, "append reward epoch")
	}
	return next, nil
}

func (s *EpochStore) Get(index uint64) (*models.RewardEpoch, error) {
	var epoch models.RewardEpoch
	if err := s.db.First(&epoch, "number = ?", index).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithMessagef(ErrEpochOutOfRange, "epoch %d", index)
		}
		return nil, errors.Wrap(err, "load reward epoch")
	}
	return &epoch, nil
}

func (s *EpochStore) Count() (uint64, error) {
	var n int64
	if err := s.db.Model(&models.RewardEpoch{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count reward epochs")
	}
	return uint64(n), nil
}
