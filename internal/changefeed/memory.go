package changefeed

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryFeed is an in-process Feed for single-replica deployments and tests.
// Since every write in that setup goes through this process, local dispatch
// is equivalent to the Redis fan-out.
type MemoryFeed struct {
	mu   sync.Mutex
	subs map[string]map[string]*memorySub // table -> sub id -> sub
}

type memorySub struct {
	eventID *uint
	ch      chan Signal
	done    chan struct{}
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[string]map[string]*memorySub)}
}

// Publish delivers the signal to every matching subscriber. Delivery is
// non-blocking: a signal is only a refresh hint, and a full buffer means a
// refresh is already pending for that subscriber.
func (f *MemoryFeed) Publish(_ context.Context, sig Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subs[sig.Table] {
		if !matches(sig, sig.Table, sub.eventID) {
			continue
		}
		select {
		case sub.ch <- sig:
		default:
		}
	}
	return nil
}

func (f *MemoryFeed) Subscribe(_ context.Context, table string, eventID *uint, fn func(Signal)) (*Subscription, error) {
	sub := &memorySub{
		eventID: eventID,
		ch:      make(chan Signal, 16),
		done:    make(chan struct{}),
	}
	id := uuid.NewString()

	f.mu.Lock()
	if f.subs[table] == nil {
		f.subs[table] = make(map[string]*memorySub)
	}
	f.subs[table][id] = sub
	f.mu.Unlock()

	// Signals still buffered at close time are discarded, not drained:
	// no new callback starts once the subscription is closed.
	go func() {
		for {
			select {
			case sig := <-sub.ch:
				select {
				case <-sub.done:
					return
				default:
				}
				fn(sig)
			case <-sub.done:
				return
			}
		}
	}()

	return &Subscription{
		id:    id,
		table: table,
		stop: func() {
			f.mu.Lock()
			delete(f.subs[table], id)
			f.mu.Unlock()
			close(sub.done)
		},
	}, nil
}
