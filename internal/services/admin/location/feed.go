package location

import "sync"

// defaultSubscriberBuffer is the per-subscriber queue length.
const defaultSubscriberBuffer = 8

// Update is one marker event delivered to subscribers. Exactly one of Point
// or Err is meaningful.
type Update struct {
	Point Point
	Err   error
}

// Feed holds the current marker position and broadcasts changes.
type Feed struct {
	mu      sync.Mutex
	current Point
	has     bool
	lastErr error
	subs    map[uint64]chan Update
	nextID  uint64
	closed  bool
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[uint64]chan Update)}
}

// Current returns the latest position, if any sample was shown yet.
func (f *Feed) Current() (Point, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, f.has
}

// LastError returns the most recent replay error since the last Reset.
func (f *Feed) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Reset clears the replay error. The position is kept.
func (f *Feed) Reset() {
	f.mu.Lock()
	f.lastErr = nil
	f.mu.Unlock()
}

// Publish overwrites the marker position and notifies subscribers.
func (f *Feed) Publish(p Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.current = p
	f.has = true
	f.broadcastLocked(Update{Point: p})
}

// PublishError records a replay error and notifies subscribers. The
// position is left unchanged.
func (f *Feed) PublishError(err error) {
	if err == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.lastErr = err
	f.broadcastLocked(Update{Err: err})
}

// Subscribe registers a listener. The current position, when one exists, is
// queued first. The returned cancel func is idempotent.
func (f *Feed) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, defaultSubscriberBuffer)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	if f.has {
		ch <- Update{Point: f.current}
	}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if sub, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Subscribers reports the number of active listeners.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close disconnects every subscriber and ignores later publishes.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}

// broadcastLocked delivers u to every subscriber, dropping the oldest queued
// update of a full subscriber.
func (f *Feed) broadcastLocked(u Update) {
	for _, ch := range f.subs {
		select {
		case ch <- u:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- u:
		default:
		}
	}
}
