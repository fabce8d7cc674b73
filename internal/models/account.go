package models

import "time"

// Account holds a participant's stake and the epoch up to which reward has
// already been folded into it. A zero-stake account is logically empty but
// the row persists.
type Account struct {
	Address          string `gorm:"primaryKey"`
	Stake            uint64
	LastSettledEpoch uint64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
