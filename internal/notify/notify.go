package notify

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	StakeDeposited  EventType = "stake_deposited"
	StakeWithdrawn  EventType = "stake_withdrawn"
	RewardDeposited EventType = "reward_deposited"
	RewardRedeemed  EventType = "reward_redeemed"
)

// Event is one ledger notification. Epoch is set only for reward deposits.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Account   string    `json:"account"`
	Amount    uint64    `json:"amount"`
	Epoch     *uint64   `json:"epoch,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEvent(typ EventType, account string, amount uint64, epoch *uint64) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Account:   account,
		Amount:    amount,
		Epoch:     epoch,
		Timestamp: time.Now().UTC(),
	}
}

// Notifier delivers ledger events, ordered per operation.
type Notifier interface {
	Publish(Event)
}

// Noop drops every event; used by tests and headless deployments.
type Noop struct{}

func (Noop) Publish(Event) {}
