// Package store contains the client-side gateway to the Billed store.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see Store) for bill records:
//     List, Create (placeholder record + attachment) and Update.
//  2. A concrete REST implementation (see RESTClient) which also implements
//     Authenticator (login / register) and carries the session bearer token.
//  3. A gRPC health probe (see HealthChecker) used for online/offline status.
//
// # Error Handling
//
// Failures are reported with the sentinels from internal/common, matched
// with errors.Is:
//
//   - common.ErrTransport: the store could not be reached.
//   - common.ErrServer: the store answered with a non-success status or an
//     undecodable body.
//   - common.ErrValidation: the store rejected the payload (400/415/422).
//   - common.ErrUnauthorized: missing or expired token (also matches ErrServer).
//
// HTTP failures are *StatusError values carrying the status code and the
// store's message. No call is retried here; callers decide.
package store
