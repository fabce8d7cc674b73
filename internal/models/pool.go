package models

import "time"

// PoolID is the primary key of the single pool aggregate row.
const PoolID uint = 1

// Pool is the pool-wide aggregate. TotalStake counts every account's stake
// plus reward that has been deposited but not yet settled into accounts.
type Pool struct {
	ID         uint `gorm:"primaryKey"`
	TotalStake uint64
	EpochCount uint64
	UpdatedAt  time.Time
}
