// Package qiwiclient provides the primary entry point for constructing a
// QIWI personal wallet API client that implements the qiwi.Client interface.
//
// It layers configuration, HTTP transport and bearer authentication on top
// of the interfaces and types defined in the qiwi package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/qiwi-client/pkg/qiwi"
//	  "github.com/fivetwenty-io/qiwi-client/pkg/qiwiclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := qiwiclient.NewWithToken(ctx, "+79991234567", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  profile, err := cli.ProfileInfo(ctx)
//	  if err != nil { log.Fatal(err) }
//	  log.Println(profile.AuthInfo.PersonID)
//
//	  entries, err := cli.PaymentHistory(ctx).All()
//	  if code, ok := qiwi.IsQiwiError(err); ok {
//	    log.Printf("server rejected the request: %s", code)
//	  }
//	  log.Printf("%d payments", len(entries))
//	}
//
// Configuration
//
// qiwi.Config carries the endpoint (https://edge.qiwi.com by default), the
// wallet credential, timeouts, an optional transport retry budget, a
// Logger and a prometheus Registerer for request metrics. New validates
// the credential: the phone must be in E.164 form and the token must not
// be empty. No request is made until a method is called.
//
// Custom transports
//
// NewWithTransport accepts any qiwi.Transport, which makes it possible to
// record, replay or proxy traffic. A transport reports HTTP error statuses
// with a *qiwi.StatusError carrying the body so that server error codes
// still surface as *qiwi.QiwiError.
package qiwiclient
