package notify

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsEvents(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	epoch := uint64(3)
	sent := NewEvent(RewardDeposited, "op1", 42, &epoch)
	hub.Publish(sent)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, RewardDeposited, got.Type)
	assert.Equal(t, "op1", got.Account)
	assert.Equal(t, uint64(42), got.Amount)
	require.NotNil(t, got.Epoch)
	assert.Equal(t, epoch, *got.Epoch)
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	hub := NewHub(log.New(io.Discard, "", 0))
	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	// Publishing with no clients is a no-op.
	hub.Publish(NewEvent(StakeDeposited, "alice", 1, nil))
}
