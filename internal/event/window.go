package event

import (
	"sort"
	"time"
)

// An event counts as "tonight" from shortly before doors until well past
// close, so a party running into the next afternoon still shows up on the
// live dashboard.
const (
	ActiveLead = 2 * time.Hour
	ActiveTail = 36 * time.Hour
)

// ActiveWindow returns the inclusive time range during which the event is
// considered live.
func (e *Event) ActiveWindow() (start, end time.Time) {
	return e.EventDate.Add(-ActiveLead), e.EventDate.Add(ActiveTail)
}

// ActiveAt reports whether now falls inside the event's live window,
// boundary-inclusive at both ends.
func (e *Event) ActiveAt(now time.Time) bool {
	start, end := e.ActiveWindow()
	return !now.Before(start) && !now.After(end)
}

// SelectActive filters events whose live window contains now, ordered by
// start time ascending. Multiple events may be simultaneously active; the
// first element is the default selection for the tonight view.
func SelectActive(now time.Time, events []Event) []Event {
	active := make([]Event, 0, len(events))
	for _, e := range events {
		if e.ActiveAt(now) {
			active = append(active, e)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].EventDate.Before(active[j].EventDate)
	})
	return active
}
