// Package panel holds the per-session admin panel state: the cached users
// list, the new-user draft, the edit dialog and the live-location replay.
//
// Upstream calls always run outside the panel lock; their confirmed results
// are applied through Reduce in completion order.
package panel
