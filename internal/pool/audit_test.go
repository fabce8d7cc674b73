package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditEmptyPool(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	dust, err := ctrl.Audit()
	require.NoError(t, err)
	assert.Zero(t, dust)
}

func TestAuditCoversUnsettledRewards(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	require.NoError(t, ctrl.DepositStake("alice", 100))
	_, err := ctrl.DepositReward(operator, 10)
	require.NoError(t, err)

	// Nothing settled yet: the 10 shows up as pending, not as dust.
	dust, err := ctrl.Audit()
	require.NoError(t, err)
	assert.Zero(t, dust)

	_, err = ctrl.Redeem("alice")
	require.NoError(t, err)

	dust, err = ctrl.Audit()
	require.NoError(t, err)
	assert.Zero(t, dust)
}

func TestAuditHoldsAcrossMixedOperations(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	require.NoError(t, ctrl.DepositStake("alice", 137))
	require.NoError(t, ctrl.DepositStake("bob", 263))

	checkpoint := func() {
		t.Helper()
		_, err := ctrl.Audit()
		require.NoError(t, err)
	}

	_, err := ctrl.DepositReward(operator, 97)
	require.NoError(t, err)
	checkpoint()

	_, err = ctrl.Redeem("alice")
	require.NoError(t, err)
	checkpoint()

	require.NoError(t, ctrl.DepositStake("carol", 41))
	checkpoint()

	_, err = ctrl.DepositReward(operator, 53)
	require.NoError(t, err)
	checkpoint()

	require.NoError(t, ctrl.WithdrawStake("bob"))
	checkpoint()

	_, err = ctrl.Redeem("carol")
	require.NoError(t, err)
	checkpoint()

	// Everyone settled: what remains beyond account stakes is pure dust.
	_, err = ctrl.Redeem("alice")
	if err != nil {
		assert.ErrorIs(t, err, ErrNothingToRedeem)
	}
	dust, err := ctrl.Audit()
	require.NoError(t, err)

	p, err := ctrl.PoolInfo()
	require.NoError(t, err)
	var sum uint64
	for _, addr := range []string{"alice", "bob", "carol"} {
		balance, err := ctrl.Balance(addr)
		require.NoError(t, err)
		pending, err := ctrl.PendingReward(addr)
		require.NoError(t, err)
		sum += balance + pending
	}
	assert.Equal(t, p.TotalStake, sum+dust)
}
