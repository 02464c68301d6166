// Package client contains the remote directory client and local database
// bootstrap for countrytap.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic read-only contract (see the Client interface) for
//     the country directory: FetchAll, FetchByName, FetchByRegion,
//     FetchByCode, FetchByCodes and the mode dispatching Search.
//  2. A concrete REST Countries v3.1 implementation (see HTTPClient) that
//     escapes path segments, collapses identical in-flight requests and
//     maps HTTP statuses to sentinel errors. It never retries.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     opening an SQLite or PostgreSQL database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Collection lookups treat HTTP 404 as an empty result. FetchAll reports
// every failure as ErrNetwork. FetchByCode reports every failure as
// ErrNotFound, additionally wrapping ErrNetwork for transport problems.
// Match both with errors.Is.
//
// See Also
//
//   - Interface:  Client
//   - HTTP impl:  HTTPClient
//   - DB helpers: InitDatabase, RunMigrations
//   - Errors:     ErrNetwork, ErrNotFound
package client
