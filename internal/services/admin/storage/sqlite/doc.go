// Package sqlite provides SQLite-backed admin persistence.
//
// It stores panel sessions and activity only; user records stay with the
// upstream API.
package sqlite
