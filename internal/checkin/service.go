package checkin

import "context"

type Service struct {
	Repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{Repo: repo}
}

func (s *Service) ListGuests(ctx context.Context, eventID uint) ([]Guest, error) {
	guests, err := s.Repo.ListGuestsByEvent(eventID)
	if err != nil {
		return nil, err
	}
	if guests == nil {
		guests = []Guest{}
	}
	return guests, nil
}

func (s *Service) CountGuests(ctx context.Context, eventID uint) (int64, error) {
	return s.Repo.CountByEvent(eventID)
}
