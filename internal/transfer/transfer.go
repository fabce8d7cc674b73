package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Transferrer moves native currency out of the ledger to an account. An
// implementation must either fully succeed or return an error; the caller
// rolls the ledger back on failure.
type Transferrer interface {
	Pay(address string, amount uint64) error
}

// CustodianClient pays withdrawals through an external custodian's REST
// endpoint.
type CustodianClient struct {
	URL    string
	Client *http.Client
}

func NewCustodianClient(url string) *CustodianClient {
	return &CustodianClient{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CustodianClient) Pay(address string, amount uint64) error {
	body, err := json.Marshal(map[string]interface{}{
		"address": address,
		"amount":  amount,
	})
	if err != nil {
		return err
	}
	resp, err := c.Client.Post(c.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("custodian returned status %d", resp.StatusCode)
	}
	return nil
}
