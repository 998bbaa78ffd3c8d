package qiwi

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// ProfileClient provides access to the wallet owner's profile.
type ProfileClient interface {
	ProfileInfo(ctx context.Context) (*ProfileInfo, error)
}

// HistoryClient provides access to the payment history.
type HistoryClient interface {
	// PaymentHistory returns a lazy iterator over all payments, newest
	// first as ordered by the server.
	PaymentHistory(ctx context.Context) *PaymentHistoryIterator
	HistoryPageFetcher
}

// PaymentsClient provides commission lookups and transfers.
type PaymentsClient interface {
	CommissionInfo(ctx context.Context, provider ProviderID) (*CommissionInfo, error)
	CommissionQuote(ctx context.Context, provider ProviderID, account string, amount decimal.Decimal) (decimal.Decimal, error)
	Transfer(ctx context.Context, request *TransferRequest) (*TransferData, error)
}

// Client is the QIWI wallet API client.
type Client interface {
	ProfileClient
	HistoryClient
	PaymentsClient

	// User returns the wallet owner the client acts for.
	User() Credential
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Credential identifies and authenticates the wallet owner.
type Credential struct {
	Phone string `json:"phone" validate:"required,e164" yaml:"phone"`
	Token string `json:"token" validate:"required"      yaml:"token"`
}

// Validate checks that the phone is in E.164 form and a token is present.
func (c Credential) Validate() error {
	if c.Phone == "" {
		return ErrPhoneRequired
	}

	if c.Token == "" {
		return ErrTokenRequired
	}

	err := validate.Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPhone, c.Phone)
	}

	return nil
}

// Account returns the person identifier used in endpoint paths.
func (c Credential) Account() string {
	return AccountID(c.Phone)
}

// Config represents client configuration for building a qiwi.Client.
//
// Per-request timeouts should generally be controlled via the context
// passed to client methods; HTTPTimeout bounds a single round trip.
// The core never retries. RetryMax enables a transport-level retry policy
// for connection errors, 429 and 5xx responses and defaults to 0.
type Config struct {
	// APIEndpoint is the base address; defaults to https://edge.qiwi.com.
	APIEndpoint string

	// Phone and Token authenticate the wallet owner.
	Phone string
	Token string

	HTTPTimeout  time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is provided.
	Debug  bool
	Logger Logger

	UserAgent string

	// MetricsRegisterer, when set, receives the transport's request
	// counter and latency histogram.
	MetricsRegisterer prometheus.Registerer
}

// Credential returns the credential part of the configuration.
func (c *Config) Credential() Credential {
	return Credential{Phone: c.Phone, Token: c.Token}
}
