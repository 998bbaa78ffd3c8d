// Package export publishes wallet data to external systems.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
)

// Static errors for err113 compliance.
var (
	ErrNATSURLRequired     = errors.New("NATS URL is required")
	ErrNATSSubjectRequired = errors.New("NATS subject is required")
)

// Message headers set on every published entry.
const (
	HeaderMsgID   = "Nats-Msg-Id"
	HeaderAccount = "Qiwi-Account"
	HeaderStatus  = "Qiwi-Status"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// NATSConfig configures the connection used by Connect.
type NATSConfig struct {
	// URL is the server address, e.g. nats://127.0.0.1:4222
	URL string

	// Subject receives one message per history entry
	Subject string

	// Name identifies the connection on the server
	Name string

	// Timeout bounds the initial connect
	Timeout time.Duration
}

// NATSPublisher publishes payment history entries as JSON messages.
type NATSPublisher struct {
	conn    Conn
	subject string
	account string
	logger  qiwi.Logger
}

// Connect dials the NATS server described by config.
func Connect(config *NATSConfig, account string, logger qiwi.Logger) (*NATSPublisher, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSURLRequired
	}

	opts := []nats.Option{}
	if config.Name != "" {
		opts = append(opts, nats.Name(config.Name))
	}

	if config.Timeout > 0 {
		opts = append(opts, nats.Timeout(config.Timeout))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", config.URL, err)
	}

	publisher, err := NewNATSPublisher(conn, config.Subject, account, logger)
	if err != nil {
		conn.Close()

		return nil, err
	}

	return publisher, nil
}

// NewNATSPublisher creates a publisher over an established connection.
func NewNATSPublisher(conn Conn, subject, account string, logger qiwi.Logger) (*NATSPublisher, error) {
	if subject == "" {
		return nil, ErrNATSSubjectRequired
	}

	return &NATSPublisher{
		conn:    conn,
		subject: subject,
		account: account,
		logger:  logger,
	}, nil
}

// PublishEntry publishes a single entry. The transaction id is used as the
// message id so that a JetStream stream can drop duplicates.
func (p *NATSPublisher) PublishEntry(entry qiwi.PaymentHistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding transaction %d: %w", entry.TxnID, err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(HeaderMsgID, strconv.FormatUint(entry.TxnID, 10))
	msg.Header.Set(HeaderStatus, entry.Status)

	if p.account != "" {
		msg.Header.Set(HeaderAccount, p.account)
	}

	err = p.conn.PublishMsg(msg)
	if err != nil {
		return fmt.Errorf("publishing transaction %d: %w", entry.TxnID, err)
	}

	return nil
}

// PublishHistory drains it into the subject, publishing at most limit
// entries (all of them when limit <= 0), and flushes the connection. It
// returns the number of entries published; on error the entries published
// before the failure stay published.
func (p *NATSPublisher) PublishHistory(ctx context.Context, it *qiwi.PaymentHistoryIterator, limit int) (int, error) {
	published := 0

	for limit <= 0 || published < limit {
		entry, err := it.Next()
		if errors.Is(err, qiwi.ErrNoMoreItems) {
			break
		}

		if err != nil {
			return published, err
		}

		err = p.PublishEntry(entry)
		if err != nil {
			return published, err
		}

		published++
	}

	err := p.conn.FlushWithContext(ctx)
	if err != nil {
		return published, fmt.Errorf("flushing NATS connection: %w", err)
	}

	if p.logger != nil {
		p.logger.Info("Published payment history", map[string]interface{}{
			"subject": p.subject,
			"entries": published,
			"pages":   it.Pages(),
		})
	}

	return published, nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	err := p.conn.Drain()
	if err != nil {
		return fmt.Errorf("draining NATS connection: %w", err)
	}

	return nil
}
