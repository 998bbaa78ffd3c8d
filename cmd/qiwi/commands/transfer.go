package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// transferFlags holds the flags of the transfer command.
type transferFlags struct {
	to       string
	amount   string
	currency string
	carrier  uint64
	comment  string
	id       uint64
}

// NewTransferCommand creates the transfer command.
func NewTransferCommand() *cobra.Command {
	flags := &transferFlags{}

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send money",
		Long: `Send money to another QIWI wallet, or top up a mobile phone with --carrier.

Wallet transfers are made in --currency (RUB by default). Mobile top-ups are
always made in rubles through the carrier's provider id.`,
		Example: `  qiwi transfer --to +79990000000 --amount 100 --comment "lunch"
  qiwi transfer --to 9990000000 --amount 50 --carrier 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.request(cmd.Flags().Changed("currency"))
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := client.Transfer(cmd.Context(), request)
			if err != nil {
				return describeError("transfer failed", err)
			}

			return outputTransfer(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().StringVar(&flags.to, "to", "", "recipient phone number")
	cmd.Flags().StringVar(&flags.amount, "amount", "", "amount to send")
	cmd.Flags().StringVar(&flags.currency, "currency", "RUB", "currency of a wallet transfer (RUB, USD, EUR, KZT or numeric code)")
	cmd.Flags().Uint64Var(&flags.carrier, "carrier", 0, "mobile carrier provider id; makes this a phone top-up")
	cmd.Flags().StringVar(&flags.comment, "comment", "", "payment comment")
	cmd.Flags().Uint64Var(&flags.id, "id", 0, "client payment id (default: current time in milliseconds)")

	return cmd
}

// request validates the flags and builds the transfer request.
func (f *transferFlags) request(currencyChanged bool) (*qiwi.TransferRequest, error) {
	if f.to == "" {
		return nil, constants.ErrRecipientRequired
	}

	if f.amount == "" {
		return nil, constants.ErrAmountRequired
	}

	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", f.amount, err)
	}

	request := &qiwi.TransferRequest{
		Amount:  amount,
		Comment: f.comment,
	}

	if f.id != 0 {
		id := f.id
		request.ID = &id
	}

	if f.carrier != 0 {
		if currencyChanged {
			return nil, constants.ErrConflictingCarrier
		}

		request.Direction = qiwi.CellularTransfer{Carrier: qiwi.ProviderID(f.carrier), ToPhone: f.to}

		return request, nil
	}

	currency, err := qiwi.ParseCurrency(f.currency)
	if err != nil {
		return nil, err
	}

	request.Direction = qiwi.WalletTransfer{ToPhone: f.to, ToCurrency: currency}

	return request, nil
}

func outputTransfer(w io.Writer, data *qiwi.TransferData) error {
	done, err := renderStructured(w, data)
	if done {
		return err
	}

	rows := [][2]string{
		{"Payment ID", data.ID},
		{"Provider", data.Terms},
		{"Account", data.Fields["account"]},
		{"Amount", data.Sum.String()},
		{"Source", data.Source},
	}

	if data.Transaction != nil {
		rows = append(rows,
			[2]string{"Transaction ID", data.Transaction.ID},
			[2]string{"State", data.Transaction.State.Code},
		)
	}

	return renderKeyValueTable(w, rows)
}
