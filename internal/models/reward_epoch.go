package models

import "time"

// RewardEpoch is one reward-deposit event. PoolBalance is the total stake
// immediately before the reward was added, i.e. the denominator for every
// account's proportional share of RewardAmount. Rows are append-only and
// immutable.
type RewardEpoch struct {
	Number       uint64 `gorm:"primaryKey;autoIncrement:false"`
	RewardAmount uint64
	PoolBalance  uint64
	CreatedAt    time.Time
}
