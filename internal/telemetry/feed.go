package telemetry

import (
	"sync/atomic"
	"time"
)

// Feed is the last-write-wins holder of the current snapshot.
// Readers never block writers; a zero Feed reports an all-zero snapshot.
type Feed struct {
	latest atomic.Pointer[Snapshot]
	count  atomic.Uint64
	now    func() time.Time
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{now: time.Now}
}

// Publish replaces the current snapshot. ReceivedAt is stamped when unset.
func (f *Feed) Publish(s Snapshot) {
	if s.ReceivedAt.IsZero() {
		now := time.Now
		if f.now != nil {
			now = f.now
		}
		s.ReceivedAt = now().UTC()
	}
	f.latest.Store(&s)
	f.count.Add(1)
}

// Latest returns the most recently published snapshot.
func (f *Feed) Latest() Snapshot {
	if s := f.latest.Load(); s != nil {
		return *s
	}
	return Snapshot{}
}

// Received reports whether any snapshot has been published.
func (f *Feed) Received() bool {
	return f.latest.Load() != nil
}

// Count returns the number of snapshots published so far.
func (f *Feed) Count() uint64 {
	return f.count.Load()
}
