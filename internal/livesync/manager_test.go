package livesync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nmoralesv/event-night-backend/internal/changefeed"
	"github.com/nmoralesv/event-night-backend/internal/checkin"
	"github.com/nmoralesv/event-night-backend/internal/event"
	"github.com/nmoralesv/event-night-backend/internal/timeline"
)

// ---- fakes ----

type fakeEvents struct {
	mu     sync.Mutex
	events map[uint]event.Event
	active []uint
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{events: map[uint]event.Event{}}
}

func (f *fakeEvents) add(id uint, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[id] = event.Event{ID: id, EventName: name, EventDate: time.Now()}
}

func (f *fakeEvents) remove(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.events, id)
}

func (f *fakeEvents) setActive(ids ...uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = ids
}

func (f *fakeEvents) GetEventByID(id uint) (*event.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakeEvents) ActiveEvents(context.Context, time.Time) ([]event.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []event.Event
	for _, id := range f.active {
		if e, ok := f.events[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeTimeline struct {
	mu      sync.Mutex
	entries map[uint][]timeline.Entry
	gates   map[uint]chan struct{}
	loads   int
}

func newFakeTimeline() *fakeTimeline {
	return &fakeTimeline{entries: map[uint][]timeline.Entry{}, gates: map[uint]chan struct{}{}}
}

func (f *fakeTimeline) set(eventID uint, descriptions ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timeline.Entry
	for i, d := range descriptions {
		out = append(out, timeline.Entry{
			TimelineEntry: timeline.TimelineEntry{ID: uint(i + 1), EventID: eventID, Description: d},
			Reactions:     timeline.ReactionTally{},
		})
	}
	f.entries[eventID] = out
}

// gate makes the next single load for eventID block until the channel is
// closed; loads after that one run through.
func (f *fakeTimeline) gate(eventID uint) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[eventID] = ch
	return ch
}

func (f *fakeTimeline) LoadTimeline(_ context.Context, eventID uint) ([]timeline.Entry, error) {
	f.mu.Lock()
	gate := f.gates[eventID]
	if gate != nil {
		delete(f.gates, eventID)
	}
	f.loads++
	out := f.entries[eventID]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return out, nil
}

type fakeGuests struct {
	mu     sync.Mutex
	guests map[uint][]checkin.Guest
}

func newFakeGuests() *fakeGuests {
	return &fakeGuests{guests: map[uint][]checkin.Guest{}}
}

func (f *fakeGuests) set(eventID uint, emails ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []checkin.Guest
	for i, email := range emails {
		out = append(out, checkin.Guest{UserID: uint(i + 1), Email: email, CheckedIn: time.Now()})
	}
	f.guests[eventID] = out
}

func (f *fakeGuests) ListGuests(_ context.Context, eventID uint) ([]checkin.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.guests[eventID], nil
}

func newTestManager() (*Manager, *fakeEvents, *fakeTimeline, *fakeGuests, *changefeed.MemoryFeed) {
	events := newFakeEvents()
	tl := newFakeTimeline()
	guests := newFakeGuests()
	feed := changefeed.NewMemoryFeed()
	m := NewManager(events, tl, guests, feed, NewHub())
	return m, events, tl, guests, feed
}

func waitForSnapshot(t *testing.T, m *Manager, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := m.Snapshot()
		if cond(snap) {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("snapshot never reached expected state; last: %+v", m.Snapshot())
	return Snapshot{}
}

// ---- tests ----

func TestStartAutoSelectsActiveEvent(t *testing.T) {
	m, events, tl, guests, _ := newTestManager()
	defer m.Close()

	events.add(1, "Friday Night")
	events.setActive(1)
	tl.set(1, "Doors open")
	guests.set(1, "a@example.com", "b@example.com")

	require.NoError(t, m.Start(context.Background()))

	snap := waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil })
	assert.Equal(t, uint(1), snap.Event.ID)
	assert.Len(t, snap.Entries, 1)
	assert.Equal(t, 2, snap.GuestCount)
	assert.False(t, snap.Manual)
}

func TestStartWithNothingActive(t *testing.T) {
	m, _, _, _, _ := newTestManager()
	defer m.Close()

	require.NoError(t, m.Start(context.Background()))
	assert.Nil(t, m.Snapshot().Event)
}

func TestTimelineSignalRefreshesView(t *testing.T) {
	m, events, tl, _, feed := newTestManager()
	defer m.Close()

	events.add(1, "Friday Night")
	events.setActive(1)
	tl.set(1, "Doors open")
	require.NoError(t, m.Start(context.Background()))
	waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil })

	tl.set(1, "Doors open", "DJ Nova at midnight")
	require.NoError(t, feed.Publish(context.Background(), changefeed.Signal{Table: changefeed.TableTimeline, EventID: 1}))

	snap := waitForSnapshot(t, m, func(s Snapshot) bool { return len(s.Entries) == 2 })
	assert.Equal(t, "DJ Nova at midnight", snap.Entries[1].Description)
}

func TestReactionSignalRefreshesRegardlessOfEvent(t *testing.T) {
	m, events, tl, _, feed := newTestManager()
	defer m.Close()

	events.add(1, "Friday Night")
	events.setActive(1)
	tl.set(1, "Doors open")
	require.NoError(t, m.Start(context.Background()))
	waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil })

	tl.set(1, "Doors open", "updated")
	// Reaction signals carry another event's ID; the view refreshes anyway.
	require.NoError(t, feed.Publish(context.Background(), changefeed.Signal{Table: changefeed.TableReactions, EventID: 99}))

	waitForSnapshot(t, m, func(s Snapshot) bool { return len(s.Entries) == 2 })
}

func TestSelectDetachesOldEventFeeds(t *testing.T) {
	m, events, tl, _, feed := newTestManager()
	defer m.Close()

	events.add(1, "Friday Night")
	events.add(2, "Warehouse Special")
	events.setActive(1)
	tl.set(1, "old event entry")
	tl.set(2, "pinned event entry")

	require.NoError(t, m.Start(context.Background()))
	waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil && s.Event.ID == 1 })

	require.NoError(t, m.Select(context.Background(), 2))
	snap := waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil && s.Event.ID == 2 })
	assert.True(t, snap.Manual)

	// A late signal for the old event must not touch the pinned view.
	tl.set(1, "old", "event", "grew")
	require.NoError(t, feed.Publish(context.Background(), changefeed.Signal{Table: changefeed.TableTimeline, EventID: 1}))
	time.Sleep(50 * time.Millisecond)

	snap = m.Snapshot()
	require.NotNil(t, snap.Event)
	assert.Equal(t, uint(2), snap.Event.ID)
	assert.Len(t, snap.Entries, 1)
}

func TestSlowRefreshFromOldSelectionDiscarded(t *testing.T) {
	m, events, tl, _, feed := newTestManager()
	defer m.Close()

	events.add(1, "Friday Night")
	events.add(2, "Warehouse Special")
	events.setActive(1)
	tl.set(1, "stale data")
	tl.set(2, "fresh data")

	require.NoError(t, m.Start(context.Background()))
	waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil && s.Event.ID == 1 })

	// Hold event 1's next refresh mid-fetch, then move the selection.
	gate := tl.gate(1)
	require.NoError(t, feed.Publish(context.Background(), changefeed.Signal{Table: changefeed.TableTimeline, EventID: 1}))
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, m.Select(context.Background(), 2))
	waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil && s.Event.ID == 2 })

	close(gate)
	time.Sleep(50 * time.Millisecond)

	snap := m.Snapshot()
	require.NotNil(t, snap.Event)
	assert.Equal(t, uint(2), snap.Event.ID, "a refresh that finished after the selection moved must be discarded")
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "fresh data", snap.Entries[0].Description)
}

func TestRapidSignalsLastCompletedRefreshWins(t *testing.T) {
	m, events, tl, _, feed := newTestManager()
	defer m.Close()

	events.add(1, "Friday Night")
	events.setActive(1)
	tl.set(1, "view from the slow fetch")

	require.NoError(t, m.Start(context.Background()))
	waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil })

	// First signal's refresh reads the timeline, then stalls mid-fetch.
	gate := tl.gate(1)
	require.NoError(t, feed.Publish(context.Background(), changefeed.Signal{Table: changefeed.TableTimeline, EventID: 1}))
	time.Sleep(20 * time.Millisecond)

	// Second signal for the same event refreshes unhindered and lands.
	tl.set(1, "view from the slow fetch", "view from the fast fetch")
	require.NoError(t, feed.Publish(context.Background(), changefeed.Signal{Table: changefeed.TableReactions, EventID: 1}))
	waitForSnapshot(t, m, func(s Snapshot) bool { return len(s.Entries) == 2 })

	// The stalled refresh now completes and, still matching the selection,
	// overwrites the view: whichever refresh finishes last wins.
	close(gate)
	snap := waitForSnapshot(t, m, func(s Snapshot) bool { return len(s.Entries) == 1 })
	assert.Equal(t, "view from the slow fetch", snap.Entries[0].Description)
	require.NotNil(t, snap.Event)
	assert.Equal(t, uint(1), snap.Event.ID)
}

func TestPinnedEventDeletedFallsBackToAuto(t *testing.T) {
	m, events, tl, _, feed := newTestManager()
	defer m.Close()

	events.add(1, "Friday Night")
	events.add(2, "Pop-up")
	events.setActive(1)
	tl.set(1, "auto entry")

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Select(context.Background(), 2))
	waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil && s.Event.ID == 2 })

	events.remove(2)
	require.NoError(t, feed.Publish(context.Background(), changefeed.Signal{Table: changefeed.TableEvents}))

	snap := waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil && s.Event.ID == 1 })
	assert.False(t, snap.Manual)
}

func TestClearSelectionReturnsToAuto(t *testing.T) {
	m, events, _, _, _ := newTestManager()
	defer m.Close()

	events.add(1, "Friday Night")
	events.add(2, "Pop-up")
	events.setActive(1)

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Select(context.Background(), 2))
	waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil && s.Event.ID == 2 })

	m.ClearSelection(context.Background())
	snap := waitForSnapshot(t, m, func(s Snapshot) bool { return s.Event != nil && s.Event.ID == 1 })
	assert.False(t, snap.Manual)
}

func TestSelectUnknownEvent(t *testing.T) {
	m, _, _, _, _ := newTestManager()
	defer m.Close()

	require.NoError(t, m.Start(context.Background()))
	err := m.Select(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHubReceivesSnapshots(t *testing.T) {
	m, events, tl, _, _ := newTestManager()
	defer m.Close()

	ch := m.Hub.Register()
	defer m.Hub.Unregister(ch)

	events.add(1, "Friday Night")
	events.setActive(1)
	tl.set(1, "Doors open")
	require.NoError(t, m.Start(context.Background()))

	select {
	case payload := <-ch:
		assert.Contains(t, string(payload), "Friday Night")
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot broadcast to stream clients")
	}
}

func TestCloseIdempotent(t *testing.T) {
	m, events, _, _, feed := newTestManager()

	events.add(1, "Friday Night")
	events.setActive(1)
	require.NoError(t, m.Start(context.Background()))

	m.Close()
	m.Close()

	// Signals after close must not panic or resurrect the view.
	require.NoError(t, feed.Publish(context.Background(), changefeed.Signal{Table: changefeed.TableTimeline, EventID: 1}))
	time.Sleep(20 * time.Millisecond)
}
