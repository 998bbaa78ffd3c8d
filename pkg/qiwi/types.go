package qiwi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderID identifies a payment provider (a wallet, a mobile carrier...).
type ProviderID uint64

// ProviderQiwiWallet is the provider used for wallet-to-wallet transfers.
const ProviderQiwiWallet ProviderID = 99

// String implements fmt.Stringer.
func (p ProviderID) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

// ParseProviderID parses a decimal provider id.
func ParseProviderID(s string) (ProviderID, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid provider id %q: %w", s, err)
	}

	return ProviderID(id), nil
}

// Currency is an ISO 4217 numeric currency code. The API sends it both as a
// JSON number and as a string; it is always written as a string.
type Currency int

// Currencies accepted by the wallet.
const (
	CurrencyRUB Currency = 643
	CurrencyUSD Currency = 840
	CurrencyEUR Currency = 978
	CurrencyKZT Currency = 398
)

var currencyNames = map[Currency]string{
	CurrencyRUB: "RUB",
	CurrencyUSD: "USD",
	CurrencyEUR: "EUR",
	CurrencyKZT: "KZT",
}

// String returns the alphabetic code when known.
func (c Currency) String() string {
	if name, ok := currencyNames[c]; ok {
		return name
	}

	return strconv.Itoa(int(c))
}

// ParseCurrency accepts an alphabetic ("RUB") or numeric ("643") code.
func ParseCurrency(s string) (Currency, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for code, name := range currencyNames {
		if name == s {
			return code, nil
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown currency %q", s)
	}

	return Currency(n), nil
}

// MarshalJSON writes the numeric code as a string.
func (c Currency) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(c)))
}

// UnmarshalJSON reads the numeric code from a number or a string.
func (c *Currency) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*c = 0

		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid currency code %s: %w", data, err)
	}

	*c = Currency(n)

	return nil
}

// AccountID renders a phone number the way the API expects account and
// person identifiers: digits only, without the leading plus.
func AccountID(phone string) string {
	return strings.TrimPrefix(strings.TrimSpace(phone), "+")
}

// Money is an amount in a given currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"   yaml:"amount"`
	Currency Currency        `json:"currency" yaml:"currency"`
}

// MarshalJSON writes the amount as a JSON number, which is what the API
// accepts in request bodies.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   json.Number `json:"amount"`
		Currency Currency    `json:"currency"`
	}{
		Amount:   json.Number(m.Amount.String()),
		Currency: m.Currency,
	})
}

// String renders the amount with its currency.
func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency.String()
}

// ProfileInfo is the response of the current profile endpoint.
type ProfileInfo struct {
	AuthInfo     *AuthInfo     `json:"authInfo"     validate:"required" yaml:"auth_info"`
	ContractInfo *ContractInfo `json:"contractInfo"                     yaml:"contract_info,omitempty"`
	UserInfo     *UserInfo     `json:"userInfo"                         yaml:"user_info,omitempty"`
}

// AuthInfo describes the authentication settings of the wallet.
type AuthInfo struct {
	PersonID         uint64     `json:"personId"         yaml:"person_id"`
	BoundEmail       *string    `json:"boundEmail"       yaml:"bound_email,omitempty"`
	IPAddress        string     `json:"ip"               yaml:"ip"`
	LastLoginDate    *time.Time `json:"lastLoginDate"    yaml:"last_login_date,omitempty"`
	RegistrationDate *time.Time `json:"registrationDate" yaml:"registration_date,omitempty"`
}

// ContractInfo describes the wallet contract.
type ContractInfo struct {
	Blocked            bool                 `json:"blocked"            yaml:"blocked"`
	ContractID         uint64               `json:"contractId"         yaml:"contract_id"`
	CreationDate       *time.Time           `json:"creationDate"       yaml:"creation_date,omitempty"`
	IdentificationInfo []IdentificationInfo `json:"identificationInfo" yaml:"identification_info,omitempty"`
}

// IdentificationInfo is the identification level granted by a bank.
type IdentificationInfo struct {
	BankAlias           string `json:"bankAlias"           yaml:"bank_alias"`
	IdentificationLevel string `json:"identificationLevel" yaml:"identification_level"`
}

// UserInfo holds user preferences.
type UserInfo struct {
	DefaultPayCurrency Currency `json:"defaultPayCurrency" yaml:"default_pay_currency"`
	Email              *string  `json:"email"              yaml:"email,omitempty"`
	FirstTxnID         uint64   `json:"firstTxnId"         yaml:"first_txn_id"`
	Language           string   `json:"language"           yaml:"language"`
	Operator           string   `json:"operator"           yaml:"operator"`
}

// PaymentHistoryData is a single page of the payment history listing.
// NextTxnDate and NextTxnID form the continuation cursor; the listing ends
// when either is missing.
type PaymentHistoryData struct {
	Data        []PaymentHistoryEntry `json:"data"        validate:"required"`
	NextTxnDate *string               `json:"nextTxnDate"`
	NextTxnID   *uint64               `json:"nextTxnId"`
}

// Cursor returns the continuation cursor of the page, or nil when this is
// the last page.
func (d *PaymentHistoryData) Cursor() *PaginationCursor {
	if d.NextTxnDate == nil || d.NextTxnID == nil {
		return nil
	}

	return &PaginationCursor{NextTxnDate: *d.NextTxnDate, NextTxnID: *d.NextTxnID}
}

// PaymentHistoryEntry is one transaction in the payment history.
type PaymentHistoryEntry struct {
	TxnID      uint64    `json:"txnId"      yaml:"txn_id"`
	PersonID   uint64    `json:"personId"   yaml:"person_id"`
	Date       time.Time `json:"date"       yaml:"date"`
	ErrorCode  int       `json:"errorCode"  yaml:"error_code"`
	Error      *string   `json:"error"      yaml:"error,omitempty"`
	Status     string    `json:"status"     yaml:"status"`
	Type       string    `json:"type"       yaml:"type"`
	StatusText string    `json:"statusText" yaml:"status_text"`
	TrmTxnID   string    `json:"trmTxnId"   yaml:"trm_txn_id"`
	Account    string    `json:"account"    yaml:"account"`
	Sum        Money     `json:"sum"        yaml:"sum"`
	Commission Money     `json:"commission" yaml:"commission"`
	Total      Money     `json:"total"      yaml:"total"`
	Provider   Provider  `json:"provider"   yaml:"provider"`
	Comment    *string   `json:"comment"    yaml:"comment,omitempty"`
}

// Provider describes the counterparty provider of a transaction.
type Provider struct {
	ID        ProviderID `json:"id"        yaml:"id"`
	ShortName string     `json:"shortName" yaml:"short_name"`
	LongName  string     `json:"longName"  yaml:"long_name"`
	LogoURL   string     `json:"logoUrl"   yaml:"logo_url,omitempty"`
	SiteURL   string     `json:"siteUrl"   yaml:"site_url,omitempty"`
}

// CommissionInfo describes the commission terms of a provider.
type CommissionInfo struct {
	Ranges []CommissionRange `json:"ranges" yaml:"ranges"`
}

// CommissionRange is the commission applied from Bound upwards.
type CommissionRange struct {
	Bound decimal.Decimal `json:"bound" yaml:"bound"`
	Fixed decimal.Decimal `json:"fixed" yaml:"fixed"`
	Rate  decimal.Decimal `json:"rate"  yaml:"rate"`
	Min   decimal.Decimal `json:"min"   yaml:"min"`
	Max   decimal.Decimal `json:"max"   yaml:"max"`
}

// CommissionInfoWrapper is the provider form response; only the
// commission part is of interest.
type CommissionInfoWrapper struct {
	Commission *CommissionInfo `json:"commission" validate:"required"`
}

// CommissionQuote is the online commission calculation for a payment.
type CommissionQuote struct {
	ProviderID    ProviderID `json:"providerId"`
	WithdrawSum   *Money     `json:"withdrawSum"`
	EnrollmentSum *Money     `json:"enrollmentSum"`
	QwCommission  *Money     `json:"qwCommission" validate:"required"`
}

// TransferDirection selects the provider, currency and account of a transfer.
type TransferDirection interface {
	Terms() (provider ProviderID, currency Currency, account string)
}

// WalletTransfer sends money to another wallet.
type WalletTransfer struct {
	ToPhone    string
	ToCurrency Currency
}

// Terms implements TransferDirection.
func (w WalletTransfer) Terms() (ProviderID, Currency, string) {
	return ProviderQiwiWallet, w.ToCurrency, w.ToPhone
}

// CellularTransfer tops up a mobile phone balance through its carrier.
type CellularTransfer struct {
	Carrier ProviderID
	ToPhone string
}

// Terms implements TransferDirection.
func (c CellularTransfer) Terms() (ProviderID, Currency, string) {
	return c.Carrier, CurrencyRUB, c.ToPhone
}

// TransferRequest describes a payment. When ID is nil a time based id is
// generated.
type TransferRequest struct {
	ID        *uint64
	Amount    decimal.Decimal
	Direction TransferDirection
	Comment   string
}

// TransferData is the accepted payment returned by the transfer endpoint.
type TransferData struct {
	ID          string            `json:"id"          validate:"required" yaml:"id"`
	Terms       string            `json:"terms"                           yaml:"terms"`
	Fields      map[string]string `json:"fields"                          yaml:"fields"`
	Sum         Money             `json:"sum"                             yaml:"sum"`
	Source      string            `json:"source"                          yaml:"source"`
	Comment     string            `json:"comment"                         yaml:"comment,omitempty"`
	Transaction *TransferTxn      `json:"transaction" validate:"required" yaml:"transaction"`
}

// TransferTxn identifies the transaction created for a transfer.
type TransferTxn struct {
	ID    string `json:"id"    yaml:"id"`
	State struct {
		Code string `json:"code" yaml:"code"`
	} `json:"state" yaml:"state"`
}
