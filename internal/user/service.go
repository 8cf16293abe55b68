package user

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/nmoralesv/event-night-backend/internal/auditlog"
)

var ErrUserNotFound = errors.New("user not found")

type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(repo *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: repo, AuditSvc: auditSvc}
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.Repo.ListUsers()
}

func (s *Service) GetUserByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.Repo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uint, req *UpdateUserRequest, staffID uint, ip string) (*User, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = req.FirstName
	}
	if req.LastName != nil {
		u.LastName = req.LastName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.DateOfBirth != nil {
		u.DateOfBirth = req.DateOfBirth
	}
	if req.AvatarURL != nil {
		u.AvatarURL = req.AvatarURL
	}
	if req.PushToken != nil {
		u.PushToken = req.PushToken
	}

	if err := s.Repo.UpdateUser(u); err != nil {
		log.Printf("❌ Failed to update user %d: %v", id, err)
		s.AuditSvc.LogAction(ctx, &staffID, nil, "USER_UPDATED",
			map[string]interface{}{"user_id": id, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &staffID, nil, "USER_UPDATED",
		map[string]interface{}{"user_id": id, "email": u.Email}, ip, "success")
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uint, staffID uint, ip string) error {
	if err := s.Repo.DeleteUser(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		log.Printf("❌ Failed to delete user %d: %v", id, err)
		s.AuditSvc.LogAction(ctx, &staffID, nil, "USER_DELETED",
			map[string]interface{}{"user_id": id, "error": err.Error()}, ip, "failure")
		return err
	}

	log.Printf("✅ User %d deleted", id)
	s.AuditSvc.LogAction(ctx, &staffID, nil, "USER_DELETED",
		map[string]interface{}{"user_id": id}, ip, "success")
	return nil
}

func (s *Service) ListPushTokens(ctx context.Context) ([]string, error) {
	return s.Repo.ListPushTokens()
}
