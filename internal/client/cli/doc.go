// Package cli provides the interactive countrytap command-line client.
//
// It wires configuration, the REST Countries client, the local store and the
// services behind a REPL. Typical flow: restore the saved session, load the
// full country list, then execute user commands.
//
// Key features:
//   - Debounced search in ten modes, combined with a region/language/name filter
//   - Paged country list and a detail view with neighbouring countries
//   - Mock sign-in with email/password or a demo identity provider
//   - Favorites for the signed-in user, reported through toasts
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
