package reports

import (
	"context"

	"github.com/nmoralesv/event-night-backend/internal/checkin"
	"github.com/nmoralesv/event-night-backend/internal/event"
	"github.com/nmoralesv/event-night-backend/internal/user"
)

type Service struct {
	Events   *event.Service
	Checkins *checkin.Service
	Users    *user.Service
	Exporter Exporter
}

func NewService(events *event.Service, checkins *checkin.Service, users *user.Service, exporter Exporter) *Service {
	return &Service{Events: events, Checkins: checkins, Users: users, Exporter: exporter}
}

func (s *Service) GuestListReport(ctx context.Context, eventID uint, format string) ([]byte, string, string, error) {
	ev, err := s.Events.GetEventByID(eventID)
	if err != nil {
		return nil, "", "", err
	}
	guests, err := s.Checkins.ListGuests(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}

	if format == "excel" {
		return s.Exporter.GuestListExcel(ev, guests)
	}
	return s.Exporter.GuestListPDF(ev, guests)
}

func (s *Service) UsersReport(ctx context.Context) ([]byte, string, string, error) {
	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, "", "", err
	}
	return s.Exporter.UsersExcel(users)
}
