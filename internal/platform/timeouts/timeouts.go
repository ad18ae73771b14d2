// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// APIRequest caps the time allowed for a single call from the admin panel
// to the upstream users API.
const APIRequest = 5 * time.Second

// ReplayInterval is the cadence between replayed live-location samples.
const ReplayInterval = time.Second

// PanelSessionTTL is how long an idle panel keeps its state.
const PanelSessionTTL = 2 * time.Hour

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
