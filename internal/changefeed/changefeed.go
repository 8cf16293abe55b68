package changefeed

import (
	"context"
	"sync"
)

// Table names carried on the feed. These match the storage tables the mobile
// clients write to, so a signal maps 1:1 onto a re-fetch of that table.
const (
	TableEvents    = "events"
	TableTimeline  = "timeline_events"
	TableCheckins  = "checkins"
	TableReactions = "timeline_event_reactions"
)

// Signal is an opaque "rows changed" notification. It carries no diff; the
// receiver is expected to re-fetch whatever it derived from the table.
type Signal struct {
	Table   string `json:"table"`
	EventID uint   `json:"event_id,omitempty"`
}

// Feed publishes and delivers change signals for backend tables.
type Feed interface {
	// Publish emits a signal to every matching subscriber.
	Publish(ctx context.Context, sig Signal) error

	// Subscribe registers fn for signals on table. A non-nil eventID narrows
	// delivery to signals scoped to that event; nil receives everything on
	// the table. fn runs on the subscription's own goroutine, in arrival
	// order.
	Subscribe(ctx context.Context, table string, eventID *uint, fn func(Signal)) (*Subscription, error)
}

// Subscription is the handle returned by Feed.Subscribe. Close is idempotent.
type Subscription struct {
	id    string
	table string
	stop  func()
	once  sync.Once
}

func (s *Subscription) ID() string    { return s.id }
func (s *Subscription) Table() string { return s.table }

// Close tears the subscription down. Signals still buffered at close time
// are discarded; a callback already executing may finish concurrently, but
// no new callback starts after Close returns.
func (s *Subscription) Close() {
	s.once.Do(s.stop)
}

func matches(sig Signal, table string, eventID *uint) bool {
	if sig.Table != table {
		return false
	}
	if eventID == nil {
		return true
	}
	return sig.EventID == *eventID
}
