package event

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/nmoralesv/event-night-backend/internal/auditlog"
	"github.com/nmoralesv/event-night-backend/internal/changefeed"
)

// Service wraps business logic for events
type Service struct {
	Repo     *Repository
	Feed     changefeed.Feed
	AuditSvc auditlog.Service
}

func NewService(r *Repository, feed changefeed.Feed, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		Feed:     feed,
		AuditSvc: auditSvc,
	}
}

// parseEventTimestamp combines the date and optional clock fields into the
// stored start timestamp.
func parseEventTimestamp(dateStr, timeStr string) (time.Time, error) {
	eventDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, errors.New("invalid event_date format. Use YYYY-MM-DD")
	}

	if timeStr == "" {
		return eventDate, nil
	}

	clock, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, errors.New("invalid event_time format. Use HH:MM in 24-hour format")
	}

	return time.Date(
		eventDate.Year(), eventDate.Month(), eventDate.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC,
	), nil
}

func marshalLineup(lineup []string) datatypes.JSON {
	cleaned := make([]string, 0, len(lineup))
	for _, artist := range lineup {
		if strings.TrimSpace(artist) != "" {
			cleaned = append(cleaned, artist)
		}
	}
	raw, _ := json.Marshal(cleaned)
	return datatypes.JSON(raw)
}

func marshalPriceTiers(tiers map[string]float64) datatypes.JSON {
	cleaned := make(map[string]float64, len(tiers))
	for label, price := range tiers {
		if strings.TrimSpace(label) != "" {
			cleaned[label] = price
		}
	}
	raw, _ := json.Marshal(cleaned)
	return datatypes.JSON(raw)
}

func (s *Service) publishChanged(ctx context.Context, eventID uint) {
	if s.Feed == nil {
		return
	}
	_ = s.Feed.Publish(ctx, changefeed.Signal{Table: changefeed.TableEvents, EventID: eventID})
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest, staffID uint, ip string) (*Event, error) {
	eventDate, err := parseEventTimestamp(req.EventDate, req.EventTime)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, nil, "EVENT_CREATED",
			map[string]interface{}{"event_name": req.EventName, "error": err.Error()},
			ip, "failure")
		return nil, err
	}

	e := &Event{
		EventName:   req.EventName,
		EventDate:   eventDate,
		Location:    req.Location,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Lineup:      marshalLineup(req.Lineup),
		PriceTiers:  marshalPriceTiers(req.PriceTiers),
		DressCode:   req.DressCode,
	}

	if err := s.Repo.CreateEvent(e); err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, nil, "EVENT_CREATED",
			map[string]interface{}{"event_name": req.EventName, "error": err.Error()},
			ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &staffID, &e.ID, "EVENT_CREATED",
		map[string]interface{}{
			"event_name": e.EventName,
			"event_date": e.EventDate.Format(time.RFC3339),
			"location":   e.Location,
		},
		ip, "success")

	s.publishChanged(ctx, e.ID)
	return e, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) GetEventByID(id uint) (*Event, error) {
	return s.Repo.GetEventByID(id)
}

// ===========================
// 📄 List Events
func (s *Service) ListEvents() ([]Event, error) {
	return s.Repo.ListEvents()
}

// ===========================
// 📆 Upcoming Events (start >= now, earliest first)
func (s *Service) GetUpcomingEvents(now time.Time) ([]Event, error) {
	return s.Repo.GetUpcomingEvents(now)
}

// ===========================
// 🌙 Active Events for the tonight view
func (s *Service) ActiveEvents(ctx context.Context, now time.Time) ([]Event, error) {
	all, err := s.Repo.ListEvents()
	if err != nil {
		return nil, err
	}
	return SelectActive(now, all), nil
}

// ===========================
// 🛠 Update Event
func (s *Service) UpdateEvent(ctx context.Context, id uint, req *UpdateEventRequest, staffID uint, ip string) (*Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, &id, "EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": "event not found"},
			ip, "failure")
		return nil, err
	}

	eventDate, err := parseEventTimestamp(req.EventDate, req.EventTime)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, &id, "EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": err.Error()},
			ip, "failure")
		return nil, err
	}

	e.EventName = req.EventName
	e.EventDate = eventDate
	e.Location = req.Location
	e.Description = req.Description
	e.Lineup = marshalLineup(req.Lineup)
	e.PriceTiers = marshalPriceTiers(req.PriceTiers)
	e.DressCode = req.DressCode
	if req.ImageURL != nil {
		e.ImageURL = req.ImageURL
	}

	if err := s.Repo.UpdateEvent(e); err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, &id, "EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": err.Error()},
			ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &staffID, &id, "EVENT_UPDATED",
		map[string]interface{}{"event_id": id, "event_name": e.EventName},
		ip, "success")

	s.publishChanged(ctx, e.ID)
	return e, nil
}

// ===========================
// ❌ Delete Event
func (s *Service) DeleteEvent(ctx context.Context, id uint, staffID uint, ip string) error {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, &id, "EVENT_DELETED",
			map[string]interface{}{"event_id": id, "error": "event not found"},
			ip, "failure")
		return err
	}

	if err := s.Repo.DeleteEvent(id); err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, &id, "EVENT_DELETED",
			map[string]interface{}{"event_id": id, "event_name": e.EventName, "error": err.Error()},
			ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(ctx, &staffID, &id, "EVENT_DELETED",
		map[string]interface{}{"event_id": id, "event_name": e.EventName},
		ip, "success")

	s.publishChanged(ctx, id)
	return nil
}
