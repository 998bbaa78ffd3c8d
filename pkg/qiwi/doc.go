// Package qiwi provides types, interfaces, and helpers for working with the
// QIWI personal wallet API.
//
// # Overview
//
// The package defines the wallet models (ProfileInfo, PaymentHistoryEntry,
// TransferData...), the Client interface, the Transport capability and the
// response Envelope. A concrete client is built by the qiwiclient package,
// which wires configuration, transport and authentication.
//
//	cli, err := qiwiclient.New(ctx, &qiwi.Config{Phone: "+79991234567", Token: token})
//	if err != nil { log.Fatal(err) }
//
//	profile, err := cli.ProfileInfo(ctx)
//
// # Responses
//
// Every endpoint answers with either the expected JSON object or
// {"errorCode": "..."}. DecodeEnvelope tries the expected shape first and
// falls back to the error shape; Envelope.Result turns a reported error
// code into a *QiwiError.
//
// # Payment history
//
// The history is paginated with an opaque (nextTxnDate, nextTxnId) cursor.
// PaymentHistoryIterator fetches pages lazily:
//
//	it := cli.PaymentHistory(ctx)
//	for it.HasNext() {
//	  entry, err := it.Next()
//	  if err != nil { break }
//	  _ = entry
//	}
//
// # Errors
//
// Failures below the domain layer are wrapped in *TransportError (network
// failures, HTTP error statuses, undecodable responses). Error codes the
// server reports are returned as *QiwiError. Use IsQiwiError,
// IsNetworkError and IsParseError to branch on them.
package qiwi
