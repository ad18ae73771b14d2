// Package storage defines persistence contracts for admin panel sessions and
// the operator activity log.
//
// Panel code depends on these interfaces so handlers stay testable without a
// concrete SQLite schema.
package storage
