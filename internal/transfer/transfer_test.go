package transfer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustodianClientPay(t *testing.T) {
	var got struct {
		Address string `json:"address"`
		Amount  uint64 `json:"amount"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewCustodianClient(srv.URL)
	require.NoError(t, client.Pay("alice", 110))
	assert.Equal(t, "alice", got.Address)
	assert.Equal(t, uint64(110), got.Amount)
}

func TestCustodianClientRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient funds", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewCustodianClient(srv.URL)
	err := client.Pay("alice", 110)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestCustodianClientNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewCustodianClient(srv.URL)
	assert.Error(t, client.Pay("alice", 1))
}
