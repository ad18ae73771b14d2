// Package user defines the flat user record managed by the admin panel and
// the pure list transitions applied when the upstream confirms a change.
package user
