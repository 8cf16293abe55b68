package allowlist

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/nmoralesv/event-night-backend/internal/auditlog"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrAlreadyApproved = errors.New("email is already approved")
	ErrEmailNotFound   = errors.New("approved email not found")
)

// EmailStore is the persistence surface the service needs. *Repository is
// the gorm-backed implementation.
type EmailStore interface {
	ListEmails() ([]ApprovedEmail, error)
	CreateEmail(e *ApprovedEmail) error
	GetByEmail(email string) (*ApprovedEmail, error)
	GetByID(id uint) (*ApprovedEmail, error)
	UpdateEmail(e *ApprovedEmail) error
	DeleteEmail(id uint) error
}

type Service struct {
	Repo     EmailStore
	AuditSvc auditlog.Service
}

func NewService(repo EmailStore, auditSvc auditlog.Service) *Service {
	return &Service{Repo: repo, AuditSvc: auditSvc}
}

// normalizeEmail lowercases and trims an address so the unique index
// catches case-only duplicates.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func (s *Service) ListEmails(ctx context.Context) ([]ApprovedEmail, error) {
	emails, err := s.Repo.ListEmails()
	if err != nil {
		return nil, err
	}
	if emails == nil {
		emails = []ApprovedEmail{}
	}
	return emails, nil
}

func (s *Service) AddEmail(ctx context.Context, req *AddEmailRequest, staffID uint, ip string) (*ApprovedEmail, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, nil, "ALLOWLIST_ADDED",
			map[string]interface{}{"email": req.Email, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrAlreadyApproved
	}

	entry := &ApprovedEmail{Email: email, AddedBy: &staffID}
	if err := s.Repo.CreateEmail(entry); err != nil {
		log.Printf("❌ Failed to approve email %s: %v", email, err)
		s.AuditSvc.LogAction(ctx, &staffID, nil, "ALLOWLIST_ADDED",
			map[string]interface{}{"email": email, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	log.Printf("✅ Email approved: %s", email)
	s.AuditSvc.LogAction(ctx, &staffID, nil, "ALLOWLIST_ADDED",
		map[string]interface{}{"email": email}, ip, "success")
	return entry, nil
}

// UpdateEmail replaces the address on an existing allowlist entry. The new
// address goes through the same normalization and duplicate check as AddEmail.
func (s *Service) UpdateEmail(ctx context.Context, id uint, req *UpdateEmailRequest, staffID uint, ip string) (*ApprovedEmail, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &staffID, nil, "ALLOWLIST_UPDATED",
			map[string]interface{}{"id": id, "email": req.Email, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	entry, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}

	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil && existing.ID != id {
		return nil, ErrAlreadyApproved
	}

	entry.Email = email
	if err := s.Repo.UpdateEmail(entry); err != nil {
		log.Printf("❌ Failed to update approved email %d: %v", id, err)
		s.AuditSvc.LogAction(ctx, &staffID, nil, "ALLOWLIST_UPDATED",
			map[string]interface{}{"id": id, "email": email, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	log.Printf("✅ Approved email %d updated to %s", id, email)
	s.AuditSvc.LogAction(ctx, &staffID, nil, "ALLOWLIST_UPDATED",
		map[string]interface{}{"id": id, "email": email}, ip, "success")
	return entry, nil
}

func (s *Service) RemoveEmail(ctx context.Context, id uint, staffID uint, ip string) error {
	if err := s.Repo.DeleteEmail(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmailNotFound
		}
		s.AuditSvc.LogAction(ctx, &staffID, nil, "ALLOWLIST_REMOVED",
			map[string]interface{}{"id": id, "error": err.Error()}, ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(ctx, &staffID, nil, "ALLOWLIST_REMOVED",
		map[string]interface{}{"id": id}, ip, "success")
	return nil
}

// IsApproved reports whether an address is on the allowlist.
func (s *Service) IsApproved(ctx context.Context, rawEmail string) (bool, error) {
	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return false, err
	}
	if _, err := s.Repo.GetByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
