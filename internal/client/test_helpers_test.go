package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// Test static errors.
var (
	ErrTestUnexpectedCall = errors.New("unexpected transport call")
	ErrTestConnection     = errors.New("connection reset by peer")
)

const (
	testPhone   = "+79991234567"
	testAccount = "79991234567"
	testToken   = "test-token"
)

// scriptedResponse is what fakeTransport answers to one call.
type scriptedResponse struct {
	raw string
	err error
}

// fakeTransport answers calls from a script, in order, and records every
// request it receives.
type fakeTransport struct {
	mu        sync.Mutex
	responses []scriptedResponse
	requests  []*qiwi.Request
}

func newFakeTransport(responses ...scriptedResponse) *fakeTransport {
	return &fakeTransport{responses: responses}
}

// Call implements qiwi.Transport.
func (f *fakeTransport) Call(ctx context.Context, req *qiwi.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)

	if len(f.requests) > len(f.responses) {
		return "", &qiwi.NetworkError{Err: ErrTestUnexpectedCall}
	}

	response := f.responses[len(f.requests)-1]

	return response.raw, response.err
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func (f *fakeTransport) request(i int) *qiwi.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.requests[i]
}

func ok(raw string) scriptedResponse {
	return scriptedResponse{raw: raw}
}

func failWith(err error) scriptedResponse {
	return scriptedResponse{err: err}
}

func testCredential() qiwi.Credential {
	return qiwi.Credential{Phone: testPhone, Token: testToken}
}

// historyEntry builds the JSON form of a history entry.
func historyEntry(txnID uint64) map[string]interface{} {
	return map[string]interface{}{
		"txnId":      txnID,
		"personId":   79991234567,
		"date":       "2024-03-01T12:00:00+03:00",
		"errorCode":  0,
		"error":      nil,
		"status":     "SUCCESS",
		"type":       "OUT",
		"statusText": "Success",
		"trmTxnId":   fmt.Sprintf("%d", txnID),
		"account":    "+79990000000",
		"sum":        map[string]interface{}{"amount": 100.5, "currency": 643},
		"commission": map[string]interface{}{"amount": 0, "currency": 643},
		"total":      map[string]interface{}{"amount": 100.5, "currency": 643},
		"provider": map[string]interface{}{
			"id":        99,
			"shortName": "QIWI Wallet",
			"longName":  "QIWI Wallet",
		},
		"comment": "lunch",
	}
}

// historyPage builds the JSON form of a history page. A nil nextDate or
// nextID is sent as null.
func historyPage(t *testing.T, nextDate *string, nextID *uint64, txnIDs ...uint64) string {
	t.Helper()

	data := make([]map[string]interface{}, 0, len(txnIDs))
	for _, id := range txnIDs {
		data = append(data, historyEntry(id))
	}

	raw, err := json.Marshal(map[string]interface{}{
		"data":        data,
		"nextTxnDate": nextDate,
		"nextTxnId":   nextID,
	})
	require.NoError(t, err)

	return string(raw)
}

func strPtr(s string) *string {
	return &s
}

func uint64Ptr(n uint64) *uint64 {
	return &n
}

func txnIDs(entries []qiwi.PaymentHistoryEntry) []uint64 {
	ids := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.TxnID)
	}

	return ids
}
