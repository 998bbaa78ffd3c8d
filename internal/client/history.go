package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// HistoryClient implements qiwi.HistoryClient for one wallet.
type HistoryClient struct {
	caller  *Caller
	account string
}

// NewHistoryClient creates a history client for the wallet identified by
// account (phone digits without the leading plus).
func NewHistoryClient(caller *Caller, account string) *HistoryClient {
	return &HistoryClient{
		caller:  caller,
		account: account,
	}
}

// PaymentHistory implements qiwi.HistoryClient.PaymentHistory.
func (c *HistoryClient) PaymentHistory(ctx context.Context) *qiwi.PaymentHistoryIterator {
	return qiwi.NewPaymentHistoryIterator(ctx, c)
}

// FetchHistoryPage implements qiwi.HistoryPageFetcher.
func (c *HistoryClient) FetchHistoryPage(ctx context.Context, cursor *qiwi.PaginationCursor) (*qiwi.PaymentHistoryData, error) {
	req := qiwi.NewGetRequest(historyEndpoint(c.account), historyParams(cursor))

	page, err := Call[qiwi.PaymentHistoryData](ctx, c.caller, req)
	if err != nil {
		return nil, fmt.Errorf("fetching payment history: %w", err)
	}

	return &page, nil
}

func historyEndpoint(account string) string {
	return "payment-history/v2/persons/" + account + "/payments"
}

// historyParams always asks for a full page and echoes the cursor back
// unmodified when there is one.
func historyParams(cursor *qiwi.PaginationCursor) map[string]string {
	params := map[string]string{
		"rows": strconv.Itoa(qiwi.HistoryPageSize),
	}

	if cursor != nil {
		params["nextTxnDate"] = cursor.NextTxnDate
		params["nextTxnId"] = strconv.FormatUint(cursor.NextTxnID, 10)
	}

	return params
}
