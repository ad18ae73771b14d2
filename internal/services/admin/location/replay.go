package location

import (
	"context"
	"sync"
	"time"
)

// Sink receives replayed samples.
type Sink interface {
	Publish(Point)
	PublishError(error)
}

// Replayer shows samples on a sink at Index × interval after Start. Only one
// replay runs at a time; starting a new one or stopping cancels the pending
// samples of the previous one.
type Replayer struct {
	interval time.Duration
	sink     Sink

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	closed     bool
	wg         sync.WaitGroup
}

// NewReplayer builds a replayer. A non-positive interval shows every sample
// immediately.
func NewReplayer(sink Sink, interval time.Duration) *Replayer {
	if interval < 0 {
		interval = 0
	}
	return &Replayer{interval: interval, sink: sink}
}

// Start cancels any running replay and schedules samples. It reports whether
// the replay was scheduled; a closed replayer schedules nothing.
func (r *Replayer) Start(samples []Sample) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.stopLocked()
	if len(samples) == 0 {
		return true
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	generation := r.generation
	started := time.Now()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		r.run(ctx, generation, started, samples)
	}()
	return true
}

// Stop cancels the running replay, if any.
func (r *Replayer) Stop() {
	r.mu.Lock()
	r.stopLocked()
	r.mu.Unlock()
}

// Close stops the replayer for good and waits for its goroutine to exit.
func (r *Replayer) Close() {
	r.mu.Lock()
	r.closed = true
	r.stopLocked()
	r.mu.Unlock()
	r.wg.Wait()
}

// Running reports whether samples are still pending.
func (r *Replayer) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

func (r *Replayer) stopLocked() {
	r.generation++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Replayer) run(ctx context.Context, generation uint64, started time.Time, samples []Sample) {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for _, sample := range samples {
		due := started.Add(time.Duration(sample.Index) * r.interval)
		timer.Reset(time.Until(due))
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if !r.deliver(generation, sample) {
			return
		}
	}

	r.mu.Lock()
	if r.generation == generation {
		r.cancel = nil
	}
	r.mu.Unlock()
}

// deliver publishes sample unless the replay was superseded in the meantime.
func (r *Replayer) deliver(generation uint64, sample Sample) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != generation {
		return false
	}
	if sample.Err != nil {
		r.sink.PublishError(sample.Err)
		return true
	}
	r.sink.Publish(sample.Point)
	return true
}
