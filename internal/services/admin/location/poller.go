package location

import (
	"context"
	"time"
)

// Source fetches the raw newline-delimited sample payload.
type Source interface {
	LiveLocation(ctx context.Context) ([]byte, error)
}

// Poller fetches the sample payload on demand and replays it onto a feed.
type Poller struct {
	source   Source
	feed     *Feed
	replayer *Replayer
}

// NewPoller wires source, feed and replay cadence together.
func NewPoller(source Source, feed *Feed, interval time.Duration) *Poller {
	return &Poller{
		source:   source,
		feed:     feed,
		replayer: NewReplayer(feed, interval),
	}
}

// Feed returns the marker feed the poller publishes to.
func (p *Poller) Feed() *Feed {
	return p.feed
}

// Trigger cancels any pending replay, fetches the payload once and schedules
// its samples. It returns the number of scheduled samples.
func (p *Poller) Trigger(ctx context.Context) (int, error) {
	p.replayer.Stop()
	p.feed.Reset()

	payload, err := p.source.LiveLocation(ctx)
	if err != nil {
		return 0, err
	}
	samples := ParseSamples(payload)
	if !p.replayer.Start(samples) {
		return 0, context.Canceled
	}
	return len(samples), nil
}

// Replaying reports whether samples are still pending.
func (p *Poller) Replaying() bool {
	return p.replayer.Running()
}

// Close cancels the pending replay and disconnects feed subscribers.
func (p *Poller) Close() {
	p.replayer.Close()
	p.feed.Close()
}
