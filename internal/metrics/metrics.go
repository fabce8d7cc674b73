package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StakeDeposits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "poolledger",
		Name:      "stake_deposits_total",
		Help:      "Successful stake deposits.",
	})
	StakeWithdrawals = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "poolledger",
		Name:      "stake_withdrawals_total",
		Help:      "Successful stake withdrawals.",
	})
	Redemptions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "poolledger",
		Name:      "redemptions_total",
		Help:      "Successful voluntary redemptions.",
	})
	RewardDeposits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "poolledger",
		Name:      "reward_deposits_total",
		Help:      "Reward epochs appended by the operator.",
	})
	TotalStake = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "poolledger",
		Name:      "total_stake",
		Help:      "Recorded pool total stake.",
	})
	EpochCount = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "poolledger",
		Name:      "epoch_count",
		Help:      "Number of reward epochs.",
	})
)
