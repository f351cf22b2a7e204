// Package client contains the transport layer of the bidsync client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     decision backend: app constants, posts, paged options, contributions,
//     text validation, setup intents and option deletion.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects an access token via an interceptor, transparently
//     refreshes expired tokens, and maps gRPC status codes to sentinel errors.
//  3. Converters between wire messages and client models, shared with the
//     push subscriber.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// A call can fail three ways: a gRPC status error, a response without the
// expected payload, or a non-success status enum. The first two surface as
// errors matching ErrUnavailable, ErrUnauthorized or ErrNoData with
// errors.Is; status enums are returned to the caller as values.
//
// All operations accept context.Context and honor cancellation.
package client
