package client

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// paymentMethod pays from the wallet's ruble account.
type paymentMethod struct {
	Type      string        `json:"type"`
	AccountID qiwi.Currency `json:"accountId"`
}

var walletPaymentMethod = paymentMethod{Type: "Account", AccountID: qiwi.CurrencyRUB}

type purchaseTotals struct {
	Total qiwi.Money `json:"total"`
}

// CommissionQuoteRequest is the body of the online commission endpoint.
type CommissionQuoteRequest struct {
	Account        string         `json:"account"`
	PaymentMethod  paymentMethod  `json:"paymentMethod"`
	PurchaseTotals purchaseTotals `json:"purchaseTotals"`
}

// TransferFields holds the provider-specific payment fields.
type TransferFields struct {
	Account string `json:"account"`
}

// TransferPayload is the body of the payment endpoint.
type TransferPayload struct {
	ID            string         `json:"id"`
	Sum           qiwi.Money     `json:"sum"`
	PaymentMethod paymentMethod  `json:"paymentMethod"`
	Fields        TransferFields `json:"fields"`
	Comment       string         `json:"comment,omitempty"`
}

// PaymentsClient implements qiwi.PaymentsClient.
type PaymentsClient struct {
	caller *Caller
	now    func() time.Time
}

// NewPaymentsClient creates a new payments client.
func NewPaymentsClient(caller *Caller) *PaymentsClient {
	return &PaymentsClient{
		caller: caller,
		now:    time.Now,
	}
}

// CommissionInfo implements qiwi.PaymentsClient.CommissionInfo.
func (c *PaymentsClient) CommissionInfo(ctx context.Context, provider qiwi.ProviderID) (*qiwi.CommissionInfo, error) {
	path := "sinap/providers/" + provider.String() + "/form"

	form, err := Call[qiwi.CommissionInfoWrapper](ctx, c.caller, qiwi.NewGetRequest(path, nil))
	if err != nil {
		return nil, fmt.Errorf("getting commission info for provider %s: %w", provider, err)
	}

	return form.Commission, nil
}

// CommissionQuote implements qiwi.PaymentsClient.CommissionQuote.
func (c *PaymentsClient) CommissionQuote(ctx context.Context, provider qiwi.ProviderID, account string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, qiwi.ErrNonPositiveAmount
	}

	path := "sinap/providers/" + provider.String() + "/onlineCommission"
	body := &CommissionQuoteRequest{
		Account:       qiwi.AccountID(account),
		PaymentMethod: walletPaymentMethod,
		PurchaseTotals: purchaseTotals{
			Total: qiwi.Money{Amount: amount, Currency: qiwi.CurrencyRUB},
		},
	}

	quote, err := Call[qiwi.CommissionQuote](ctx, c.caller, qiwi.NewPostRequest(path, body))
	if err != nil {
		return decimal.Zero, fmt.Errorf("quoting commission for provider %s: %w", provider, err)
	}

	return quote.QwCommission.Amount, nil
}

// Transfer implements qiwi.PaymentsClient.Transfer.
func (c *PaymentsClient) Transfer(ctx context.Context, request *qiwi.TransferRequest) (*qiwi.TransferData, error) {
	if request == nil || request.Direction == nil {
		return nil, qiwi.ErrDirectionRequired
	}

	if !request.Amount.IsPositive() {
		return nil, qiwi.ErrNonPositiveAmount
	}

	provider, currency, account := request.Direction.Terms()
	path := "sinap/api/v2/terms/" + provider.String() + "/payments"

	body := &TransferPayload{
		ID:            c.transferID(request),
		Sum:           qiwi.Money{Amount: request.Amount, Currency: currency},
		PaymentMethod: walletPaymentMethod,
		Fields:        TransferFields{Account: account},
		Comment:       request.Comment,
	}

	data, err := Call[qiwi.TransferData](ctx, c.caller, qiwi.NewPostRequest(path, body))
	if err != nil {
		return nil, fmt.Errorf("transferring to %s via provider %s: %w", account, provider, err)
	}

	return &data, nil
}

func (c *PaymentsClient) transferID(request *qiwi.TransferRequest) string {
	if request.ID != nil {
		return fmt.Sprintf("%d", *request.ID)
	}

	return fmt.Sprintf("%d", c.now().Unix()*constants.TransferIDMultiplier)
}
