// Package cli provides the interactive Bookwise terminal client.
//
// It wires configuration, the HTTP API client and a health watcher into a
// REPL. Typical flow: log in, ask for recommendations, save the ones worth
// keeping and export the list.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
