package livesync

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/nmoralesv/event-night-backend/internal/changefeed"
	"github.com/nmoralesv/event-night-backend/internal/checkin"
	"github.com/nmoralesv/event-night-backend/internal/event"
	"github.com/nmoralesv/event-night-backend/internal/metrics"
	"github.com/nmoralesv/event-night-backend/internal/timeline"
)

var ErrNoActiveEvent = errors.New("no event is live right now")

// Snapshot is the assembled "tonight" view served to the dashboard.
type Snapshot struct {
	Event      *event.Event     `json:"event"`
	Entries    []timeline.Entry `json:"timeline"`
	Guests     []checkin.Guest  `json:"guests"`
	GuestCount int              `json:"guest_count"`
	Manual     bool             `json:"manual_selection"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// EventSource answers which events exist and which are live.
type EventSource interface {
	GetEventByID(id uint) (*event.Event, error)
	ActiveEvents(ctx context.Context, now time.Time) ([]event.Event, error)
}

// TimelineSource loads the assembled timeline for an event.
type TimelineSource interface {
	LoadTimeline(ctx context.Context, eventID uint) ([]timeline.Entry, error)
}

// GuestSource loads the checked-in guest list for an event.
type GuestSource interface {
	ListGuests(ctx context.Context, eventID uint) ([]checkin.Guest, error)
}

// Manager keeps the live view of the currently selected event fresh. It owns
// one change-feed subscription per source table for the selected event, plus
// a lifetime subscription on the events table that re-evaluates which event
// should be live. Selection is automatic (first event inside its active
// window) unless a staff member pins one manually.
type Manager struct {
	Events   EventSource
	Timeline TimelineSource
	Checkins GuestSource
	Feed     changefeed.Feed
	Hub      *Hub
	Now      func() time.Time

	mu        sync.Mutex
	selected  *uint
	manual    bool
	snapshot  Snapshot
	subs      []*changefeed.Subscription
	eventsSub *changefeed.Subscription
	closed    bool
}

func NewManager(events EventSource, tl TimelineSource, ci GuestSource, feed changefeed.Feed, hub *Hub) *Manager {
	return &Manager{
		Events:   events,
		Timeline: tl,
		Checkins: ci,
		Feed:     feed,
		Hub:      hub,
		Now:      time.Now,
	}
}

// Start picks the initial event and begins tracking the events table. Call
// Close to release the subscriptions.
func (m *Manager) Start(ctx context.Context) error {
	sub, err := m.Feed.Subscribe(ctx, changefeed.TableEvents, nil, func(sig changefeed.Signal) {
		metrics.FeedSignals.WithLabelValues(changefeed.TableEvents).Inc()
		m.onEventsChanged(ctx)
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.eventsSub = sub
	m.mu.Unlock()

	m.autoSelect(ctx)
	return nil
}

// Select pins the live view to a specific event until cleared.
func (m *Manager) Select(ctx context.Context, eventID uint) error {
	if _, err := m.Events.GetEventByID(eventID); err != nil {
		return err
	}
	m.setSelection(ctx, &eventID, true)
	return nil
}

// ClearSelection drops a manual pin and falls back to automatic selection.
func (m *Manager) ClearSelection(ctx context.Context) {
	m.mu.Lock()
	m.manual = false
	m.mu.Unlock()
	m.autoSelect(ctx)
}

// Snapshot returns the most recently applied view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// Close tears down every subscription. Safe to call more than once.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.closeSubsLocked()
	if m.eventsSub != nil {
		m.eventsSub.Close()
		m.eventsSub = nil
	}
}

// autoSelect re-runs the active-window query and moves the live view to the
// first active event, or clears it when nothing is live.
func (m *Manager) autoSelect(ctx context.Context) {
	m.mu.Lock()
	if m.manual {
		pinned := m.selected
		m.mu.Unlock()
		if pinned != nil {
			m.refresh(ctx, *pinned)
		}
		return
	}
	m.mu.Unlock()

	active, err := m.Events.ActiveEvents(ctx, m.Now())
	if err != nil {
		log.Printf("❌ Live sync: failed to query active events: %v", err)
		return
	}

	if len(active) == 0 {
		m.setSelection(ctx, nil, false)
		return
	}
	id := active[0].ID
	m.setSelection(ctx, &id, false)
}

// onEventsChanged handles signals on the events table. A pinned event may
// have been edited or deleted; an automatic selection may need to move.
func (m *Manager) onEventsChanged(ctx context.Context) {
	m.mu.Lock()
	manual := m.manual
	pinned := m.selected
	m.mu.Unlock()

	if manual && pinned != nil {
		if _, err := m.Events.GetEventByID(*pinned); err != nil {
			log.Printf("⚠️ Live sync: pinned event %d no longer exists, falling back to auto", *pinned)
			m.ClearSelection(ctx)
			return
		}
		m.refresh(ctx, *pinned)
		return
	}
	m.autoSelect(ctx)
}

// setSelection swaps the live event. Old subscriptions are disposed before
// the new ones attach so a stale feed can never write into the new view.
func (m *Manager) setSelection(ctx context.Context, eventID *uint, manual bool) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}

	same := (m.selected == nil && eventID == nil) ||
		(m.selected != nil && eventID != nil && *m.selected == *eventID)

	m.closeSubsLocked()
	m.selected = eventID
	m.manual = manual

	if eventID == nil {
		m.snapshot = Snapshot{UpdatedAt: m.Now()}
		m.mu.Unlock()
		m.broadcast(Snapshot{UpdatedAt: m.Now()})
		return
	}

	id := *eventID
	m.mu.Unlock()

	if !same {
		log.Printf("🔄 Live sync: now tracking event %d (manual=%v)", id, manual)
	}

	refreshFn := func(table string) func(changefeed.Signal) {
		return func(sig changefeed.Signal) {
			metrics.FeedSignals.WithLabelValues(table).Inc()
			m.refresh(ctx, id)
		}
	}

	var subs []*changefeed.Subscription

	sub, err := m.Feed.Subscribe(ctx, changefeed.TableTimeline, &id, refreshFn(changefeed.TableTimeline))
	if err != nil {
		log.Printf("❌ Live sync: timeline subscription failed: %v", err)
	} else {
		subs = append(subs, sub)
	}

	sub, err = m.Feed.Subscribe(ctx, changefeed.TableCheckins, &id, refreshFn(changefeed.TableCheckins))
	if err != nil {
		log.Printf("❌ Live sync: checkins subscription failed: %v", err)
	} else {
		subs = append(subs, sub)
	}

	// Reaction signals are not scoped to an event, so any reaction anywhere
	// refreshes the view. Cheap to re-fetch, and it cannot miss an update.
	sub, err = m.Feed.Subscribe(ctx, changefeed.TableReactions, nil, refreshFn(changefeed.TableReactions))
	if err != nil {
		log.Printf("❌ Live sync: reactions subscription failed: %v", err)
	} else {
		subs = append(subs, sub)
	}

	m.mu.Lock()
	if m.closed || m.selected == nil || *m.selected != id {
		// Selection moved while we were subscribing.
		for _, s := range subs {
			s.Close()
		}
		m.mu.Unlock()
		return
	}
	m.subs = subs
	m.mu.Unlock()

	m.refresh(ctx, id)
}

func (m *Manager) closeSubsLocked() {
	for _, s := range m.subs {
		s.Close()
	}
	m.subs = nil
}

// refresh re-fetches everything for eventID and applies it, unless the
// selection has moved on by the time the fetch completes. Overlapping
// refreshes for the same event are harmless: each is a full re-fetch, so the
// last one to finish leaves the freshest data in place.
func (m *Manager) refresh(ctx context.Context, eventID uint) {
	ev, err := m.Events.GetEventByID(eventID)
	if err != nil {
		metrics.TimelineRefreshes.WithLabelValues("error").Inc()
		log.Printf("❌ Live sync: refresh failed to load event %d: %v", eventID, err)
		return
	}

	entries, err := m.Timeline.LoadTimeline(ctx, eventID)
	if err != nil {
		metrics.TimelineRefreshes.WithLabelValues("error").Inc()
		log.Printf("❌ Live sync: refresh failed to load timeline for event %d: %v", eventID, err)
		return
	}

	guests, err := m.Checkins.ListGuests(ctx, eventID)
	if err != nil {
		metrics.TimelineRefreshes.WithLabelValues("error").Inc()
		log.Printf("❌ Live sync: refresh failed to load guests for event %d: %v", eventID, err)
		return
	}

	snap := Snapshot{
		Event:      ev,
		Entries:    entries,
		Guests:     guests,
		GuestCount: len(guests),
		UpdatedAt:  m.Now(),
	}

	m.mu.Lock()
	if m.closed || m.selected == nil || *m.selected != eventID {
		m.mu.Unlock()
		metrics.TimelineRefreshes.WithLabelValues("stale").Inc()
		return
	}
	snap.Manual = m.manual
	m.snapshot = snap
	m.mu.Unlock()

	metrics.TimelineRefreshes.WithLabelValues("applied").Inc()
	m.broadcast(snap)
}

func (m *Manager) broadcast(snap Snapshot) {
	if m.Hub == nil {
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Printf("⚠️ Live sync: failed to marshal snapshot: %v", err)
		return
	}
	m.Hub.Broadcast(payload)
}
