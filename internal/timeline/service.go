package timeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/nmoralesv/event-night-backend/internal/auditlog"
	"github.com/nmoralesv/event-night-backend/internal/changefeed"
)

// Service aggregates timeline entries with their reaction tallies and
// handles the staff write operations.
type Service struct {
	Entries   EntryStore
	Reactions ReactionStore
	Feed      changefeed.Feed
	AuditSvc  auditlog.Service
	Now       func() time.Time // injectable clock for set-time anchoring
}

func NewService(entries EntryStore, reactions ReactionStore, feed changefeed.Feed, auditSvc auditlog.Service) *Service {
	return &Service{
		Entries:   entries,
		Reactions: reactions,
		Feed:      feed,
		AuditSvc:  auditSvc,
		Now:       time.Now,
	}
}

// ===========================
// 📊 Load Timeline with reaction tallies
//
// Entries come back newest first. Reaction tallies are fetched concurrently,
// one store call per entry, and joined before returning; a failed tally fetch
// degrades that entry to zero reactions instead of failing the load.
func (s *Service) LoadTimeline(ctx context.Context, eventID uint) ([]Entry, error) {
	rows, err := s.Entries.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(rows))
	var wg sync.WaitGroup

	for i := range rows {
		createdAt := rows[i].CreatedAt.UnixMilli()
		entries[i] = Entry{
			TimelineEntry: rows[i],
			Reactions:     ReactionTally{},
			CreatedAtUnix: createdAt,
			Key:           EntryKey{ID: rows[i].ID, CreatedAt: createdAt},
		}

		wg.Add(1)
		go func(i int, entryID uint) {
			defer wg.Done()
			reactions, err := s.Reactions.ListByEntry(ctx, entryID)
			if err != nil {
				log.Printf("⚠️  timeline: reactions unavailable for entry %d: %v", entryID, err)
				return
			}
			tally := ReactionTally{}
			for _, r := range reactions {
				tally[r.Reaction]++
			}
			entries[i].Reactions = tally
		}(i, rows[i].ID)
	}

	wg.Wait()
	return entries, nil
}

// ResolveClock anchors a bare HH:MM clock string to now's calendar date.
// Storage only ever sees the resulting full timestamp.
func ResolveClock(now time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, errors.New("invalid scheduled_time format. Use HH:MM in 24-hour format")
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

func (s *Service) publishChanged(ctx context.Context, eventID uint) {
	if s.Feed == nil {
		return
	}
	_ = s.Feed.Publish(ctx, changefeed.Signal{Table: changefeed.TableTimeline, EventID: eventID})
}

// ===========================
// 📣 Add Announcement
func (s *Service) AddAnnouncement(ctx context.Context, req *AddAnnouncementRequest, staffID uint, ip string) ([]Entry, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("description is required")
	}

	entry := &TimelineEntry{
		EventID:       req.EventID,
		Description:   req.Description,
		EventCategory: CategoryAnnouncement,
		UserID:        &staffID,
	}

	if err := s.Entries.Insert(ctx, entry); err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, &req.EventID, "ANNOUNCEMENT_POSTED",
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &staffID, &req.EventID, "ANNOUNCEMENT_POSTED",
		map[string]interface{}{"entry_id": entry.ID}, ip, "success")

	s.publishChanged(ctx, req.EventID)
	return s.LoadTimeline(ctx, req.EventID)
}

// ===========================
// 🎧 Add DJ Set Time
func (s *Service) AddSetTime(ctx context.Context, req *AddSetTimeRequest, staffID uint, ip string) ([]Entry, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("description is required")
	}

	scheduledFor, err := ResolveClock(s.Now(), req.ScheduledTime)
	if err != nil {
		return nil, err
	}

	entry := &TimelineEntry{
		EventID:       req.EventID,
		Description:   req.Description,
		EventCategory: CategorySetTime,
		ScheduledFor:  &scheduledFor,
		IsScheduled:   true,
		UserID:        &staffID,
	}

	if err := s.Entries.Insert(ctx, entry); err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, &req.EventID, "SET_TIME_POSTED",
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &staffID, &req.EventID, "SET_TIME_POSTED",
		map[string]interface{}{"entry_id": entry.ID, "scheduled_for": scheduledFor.Format(time.RFC3339)},
		ip, "success")

	s.publishChanged(ctx, req.EventID)
	return s.LoadTimeline(ctx, req.EventID)
}

// ===========================
// 🛠 Update Entry
//
// scheduled_for survives only on set_time entries; any other category gets
// it cleared on every update.
func (s *Service) UpdateEntry(ctx context.Context, id uint, req *UpdateEntryRequest, staffID uint, ip string) ([]Entry, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("description is required")
	}

	entry, err := s.Entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Description = req.Description

	if entry.EventCategory == CategorySetTime {
		if req.ScheduledTime != "" {
			scheduledFor, err := ResolveClock(s.Now(), req.ScheduledTime)
			if err != nil {
				return nil, err
			}
			entry.ScheduledFor = &scheduledFor
			entry.IsScheduled = true
		}
	} else {
		entry.ScheduledFor = nil
		entry.IsScheduled = false
	}

	if err := s.Entries.Update(ctx, entry); err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, &entry.EventID, "TIMELINE_ENTRY_UPDATED",
			map[string]interface{}{"entry_id": id, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &staffID, &entry.EventID, "TIMELINE_ENTRY_UPDATED",
		map[string]interface{}{"entry_id": id}, ip, "success")

	s.publishChanged(ctx, entry.EventID)
	return s.LoadTimeline(ctx, entry.EventID)
}

// ===========================
// ❌ Delete Entry
func (s *Service) DeleteEntry(ctx context.Context, id uint, staffID uint, ip string) ([]Entry, error) {
	entry, err := s.Entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.Entries.Delete(ctx, id); err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, &entry.EventID, "TIMELINE_ENTRY_DELETED",
			map[string]interface{}{"entry_id": id, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &staffID, &entry.EventID, "TIMELINE_ENTRY_DELETED",
		map[string]interface{}{"entry_id": id}, ip, "success")

	s.publishChanged(ctx, entry.EventID)
	return s.LoadTimeline(ctx, entry.EventID)
}
