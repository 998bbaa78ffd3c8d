package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// NewCommissionCommand creates the commission command.
func NewCommissionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commission PROVIDER_ID",
		Short: "Show provider commission terms",
		Long:  "Display the commission ranges applied by a payment provider (99 is QIWI Wallet)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := qiwi.ParseProviderID(args[0])
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			info, err := client.CommissionInfo(cmd.Context(), provider)
			if err != nil {
				return describeError("failed to get commission info", err)
			}

			return outputCommissionInfo(cmd.OutOrStdout(), info)
		},
	}
}

// NewQuoteCommand creates the commission quote command.
func NewQuoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quote PROVIDER_ID ACCOUNT AMOUNT",
		Short: "Calculate the commission of a payment",
		Long:  "Ask the API for the exact commission of paying AMOUNT rubles to ACCOUNT through a provider",
		Args:  cobra.ExactArgs(constants.QuoteArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := qiwi.ParseProviderID(args[0])
			if err != nil {
				return err
			}

			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[2], err)
			}

			client, cleanup, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			commission, err := client.CommissionQuote(cmd.Context(), provider, args[1], amount)
			if err != nil {
				return describeError("failed to quote commission", err)
			}

			quote := struct {
				Provider   qiwi.ProviderID `json:"provider"   yaml:"provider"`
				Account    string          `json:"account"    yaml:"account"`
				Amount     decimal.Decimal `json:"amount"     yaml:"amount"`
				Commission decimal.Decimal `json:"commission" yaml:"commission"`
				Total      decimal.Decimal `json:"total"      yaml:"total"`
			}{
				Provider:   provider,
				Account:    args[1],
				Amount:     amount,
				Commission: commission,
				Total:      amount.Add(commission),
			}

			out := cmd.OutOrStdout()

			done, err := renderStructured(out, quote)
			if done {
				return err
			}

			return renderKeyValueTable(out, [][2]string{
				{"Provider", provider.String()},
				{"Account", quote.Account},
				{"Amount", quote.Amount.String()},
				{"Commission", quote.Commission.String()},
				{"Total", quote.Total.String()},
			})
		},
	}
}

func outputCommissionInfo(w io.Writer, info *qiwi.CommissionInfo) error {
	done, err := renderStructured(w, info)
	if done {
		return err
	}

	if info == nil || len(info.Ranges) == 0 {
		_, _ = io.WriteString(w, "No commission\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("From", "Fixed", "Rate", "Min", "Max")

	for _, r := range info.Ranges {
		_ = table.Append(r.Bound.String(), r.Fixed.String(), r.Rate.String(), r.Min.String(), r.Max.String())
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
