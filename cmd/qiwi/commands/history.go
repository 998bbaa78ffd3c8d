package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/qiwi-client/internal/constants"
	"github.com/fivetwenty-io/qiwi-client/internal/export"
	"github.com/fivetwenty-io/qiwi-client/internal/logging"
	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// NewHistoryCommand creates the payment history command.
func NewHistoryCommand() *cobra.Command {
	var (
		limit       int
		publishNATS bool
		natsURL     string
		natsSubject string
	)

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"payments"},
		Short:   "List payment history",
		Long: `List payments of the wallet, newest first.

Pages are fetched on demand until --limit entries have been shown (0 shows
the whole history). With --publish-nats every entry is published as a JSON
message to a NATS subject instead of being printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			it := client.PaymentHistory(cmd.Context())

			if publishNATS {
				return publishHistory(cmd, client.User(), it, limit, natsURL, natsSubject)
			}

			entries, err := collectHistory(it, limit)
			if len(entries) > 0 || err == nil {
				renderErr := outputHistory(cmd.OutOrStdout(), entries)
				if renderErr != nil {
					return renderErr
				}
			}

			if err != nil {
				return describeError(fmt.Sprintf("failed to fetch history after %d entries", len(entries)), err)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.HistoryPageSize, "maximum number of entries, 0 for all")
	cmd.Flags().BoolVar(&publishNATS, "publish-nats", false, "publish entries to NATS instead of printing them")
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (default from config nats.url)")
	cmd.Flags().StringVar(&natsSubject, "nats-subject", "", "NATS subject (default from config nats.subject)")

	return cmd
}

// collectHistory reads up to limit entries (all when limit <= 0). Entries
// read before a failure are returned with the error.
func collectHistory(it *qiwi.PaymentHistoryIterator, limit int) ([]qiwi.PaymentHistoryEntry, error) {
	var entries []qiwi.PaymentHistoryEntry

	for (limit <= 0 || len(entries) < limit) && it.HasNext() {
		entry, err := it.Next()
		if err != nil {
			return entries, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func publishHistory(cmd *cobra.Command, user qiwi.Credential, it *qiwi.PaymentHistoryIterator, limit int, natsURL, natsSubject string) error {
	config := loadConfig()
	if config.NATS != nil {
		if natsURL == "" {
			natsURL = config.NATS.URL
		}

		if natsSubject == "" {
			natsSubject = config.NATS.Subject
		}
	}

	if natsSubject == "" {
		return constants.ErrNATSSubjectRequired
	}

	zapLogger, sync := logging.New(false)
	defer func() {
		_ = sync()
	}()

	publisher, err := export.Connect(&export.NATSConfig{
		URL:     natsURL,
		Subject: natsSubject,
		Name:    "qiwi-cli",
		Timeout: constants.ShortHTTPTimeout,
	}, user.Account(), logging.NewZapLogger(zapLogger))
	if err != nil {
		return err
	}

	defer func() {
		_ = publisher.Close()
	}()

	published, err := publisher.PublishHistory(cmd.Context(), it, limit)
	if err != nil {
		return describeError(fmt.Sprintf("failed to publish history after %d entries", published), err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Published %d entries to %s\n", published, natsSubject)

	return nil
}

func outputHistory(w io.Writer, entries []qiwi.PaymentHistoryEntry) error {
	done, err := renderStructured(w, entries)
	if done {
		return err
	}

	return renderHistoryTable(w, entries)
}

func renderHistoryTable(w io.Writer, entries []qiwi.PaymentHistoryEntry) error {
	if len(entries) == 0 {
		_, _ = io.WriteString(w, "No payments found\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Txn ID", "Date", "Type", "Status", "Account", "Amount", "Commission", "Provider", "Comment")

	for _, entry := range entries {
		_ = table.Append(
			strconv.FormatUint(entry.TxnID, 10),
			entry.Date.Format(dateLayout),
			entry.Type,
			entry.Status,
			entry.Account,
			entry.Sum.String(),
			entry.Commission.String(),
			entry.Provider.ShortName,
			valueOrNA(entry.Comment),
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
