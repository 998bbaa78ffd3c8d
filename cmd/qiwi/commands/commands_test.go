package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

func TestVersionCommand(t *testing.T) {
	useTempConfig(t)

	out, err := runCommand(t, NewVersionCommand("1.2.3", "abc123", "2024-03-01"))
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")

	viper.Set("output", constants.FormatJSON)

	out, err = runCommand(t, NewVersionCommand("1.2.3", "abc123", "2024-03-01"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc123","built":"2024-03-01"}`, out)
}

func TestCommissionCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sinap/providers/99/form", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "99",
			"commission": {"ranges": [{"bound": 0, "fixed": 0, "rate": 0.02, "min": 50, "max": 0}]}
		}`))
	}))
	defer server.Close()

	useTempConfig(t)
	loginTo(server.URL)

	out, err := runCommand(t, NewCommissionCommand(), "99")
	require.NoError(t, err)
	assert.Contains(t, out, "0.02")
	assert.Contains(t, out, "50")

	viper.Set("output", constants.FormatJSON)

	out, err = runCommand(t, NewCommissionCommand(), "99")
	require.NoError(t, err)

	var info qiwi.CommissionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Len(t, info.Ranges, 1)
	assert.Equal(t, "0.02", info.Ranges[0].Rate.String())
}

func TestCommissionCommand_Args(t *testing.T) {
	useTempConfig(t)
	loginTo("http://127.0.0.1:1")

	_, err := runCommand(t, NewCommissionCommand())
	require.Error(t, err)

	_, err = runCommand(t, NewCommissionCommand(), "wallet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid provider id")
}

func TestQuoteCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sinap/providers/99/onlineCommission", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"providerId": 99,
			"withdrawSum": {"amount": 102, "currency": "643"},
			"enrollmentSum": {"amount": 100, "currency": "643"},
			"qwCommission": {"amount": 2, "currency": "643"}
		}`))
	}))
	defer server.Close()

	useTempConfig(t)
	loginTo(server.URL)
	viper.Set("output", constants.FormatJSON)

	out, err := runCommand(t, NewQuoteCommand(), "99", "+79990000000", "100")
	require.NoError(t, err)

	var quote struct {
		Provider   int    `json:"provider"`
		Account    string `json:"account"`
		Amount     string `json:"amount"`
		Commission string `json:"commission"`
		Total      string `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &quote))
	assert.Equal(t, 99, quote.Provider)
	assert.Equal(t, "+79990000000", quote.Account)
	assert.Equal(t, "2", quote.Commission)
	assert.Equal(t, "102", quote.Total)
}

func TestQuoteCommand_InvalidAmount(t *testing.T) {
	useTempConfig(t)
	loginTo("http://127.0.0.1:1")

	_, err := runCommand(t, NewQuoteCommand(), "99", "+79990000000", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid amount "lots"`)

	_, err = runCommand(t, NewQuoteCommand(), "99", "+79990000000")
	require.Error(t, err)
}

func TestCommandStructure(t *testing.T) {
	t.Parallel()

	history := NewHistoryCommand()
	assert.Equal(t, "history", history.Name())
	assert.Contains(t, history.Aliases, "payments")

	for _, flag := range []string{"limit", "publish-nats", "nats-url", "nats-subject"} {
		assert.NotNil(t, history.Flags().Lookup(flag), flag)
	}

	transfer := NewTransferCommand()
	for _, flag := range []string{"to", "amount", "currency", "carrier", "comment", "id"} {
		assert.NotNil(t, transfer.Flags().Lookup(flag), flag)
	}

	config := NewConfigCommand()
	assert.NotNil(t, findSubcommand(config, "show"))
	assert.NotNil(t, findSubcommand(config, "path"))
	assert.Nil(t, findSubcommand(config, "missing"))
}
