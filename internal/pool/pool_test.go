package pool

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/stakeworks/poolledger/internal/models"
	"github.com/stakeworks/poolledger/internal/notify"
)

const operator = "pool-operator"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	// A second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.RewardEpoch{}, &models.Pool{}))
	require.NoError(t, EnsurePool(db))
	return db
}

type recordingNotifier struct {
	events []notify.Event
}

func (r *recordingNotifier) Publish(ev notify.Event) {
	r.events = append(r.events, ev)
}

type payment struct {
	address string
	amount  uint64
}

type stubBank struct {
	err      error
	payments []payment
}

func (b *stubBank) Pay(address string, amount uint64) error {
	if b.err != nil {
		return b.err
	}
	b.payments = append(b.payments, payment{address: address, amount: amount})
	return nil
}

func newTestController(t *testing.T) (*Controller, *recordingNotifier, *stubBank) {
	t.Helper()
	db := newTestDB(t)
	bank := &stubBank{}
	notifier := &recordingNotifier{}
	ctrl := NewController(db, OperatorPolicy{Operator: operator}, bank, notifier, log.New(io.Discard, "", 0))
	return ctrl, notifier, bank
}
