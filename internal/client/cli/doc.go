// Package cli provides the interactive bidsync command-line client.
//
// It wires configuration, the local cache, the backend connection, push
// updates and an interactive REPL that keeps working when the backend is
// unreachable. Typical flow: restore the stored session (or browse as a
// guest), open a post, then bid, pledge or vote on its options while live
// updates are printed as they arrive.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
