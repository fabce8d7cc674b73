package pool

import "github.com/pkg/errors"

// Audit verifies conservation: the recorded total stake must cover the sum
// of every account's stake plus every account's unsettled reward, with the
// difference being non-negative rounding dust. Returns the dust residual; a
// negative residual means the ledger drifted and is reported as an error.
func (c *Controller) Audit() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := loadPool(c.db)
	if err != nil {
		return 0, err
	}
	accounts, err := NewAccountLedger(c.db).All()
	if err != nil {
		return 0, err
	}
	engine := NewEngine(c.db)
	var covered uint64
	for _, acc := range accounts {
		pending, err := engine.Pending(acc.Address)
		if err != nil {
			return 0, err
		}
		covered += acc.Stake + pending
	}
	if covered > p.TotalStake {
		return 0, errors.Errorf("conservation violated: accounts cover %d, pool records %d", covered, p.TotalStake)
	}
	return p.TotalStake - covered, nil
}
