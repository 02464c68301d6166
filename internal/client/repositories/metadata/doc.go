// Package metadata provides the key/value repositories backing the local
// store: SQLite (default), PostgreSQL, S3-compatible object storage and an
// in-memory map.
//
// All implementations share the Repository contract and wrap driver errors
// with the affected key, e.g. "failed to get metadata[k]: ...".
package metadata
