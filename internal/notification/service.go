package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/nmoralesv/event-night-backend/internal/auditlog"
	"github.com/nmoralesv/event-night-backend/internal/metrics"
)

var ErrNoRecipients = errors.New("no registered push tokens")

// TokenSource supplies the device tokens a broadcast should reach.
type TokenSource interface {
	ListPushTokens(ctx context.Context) ([]string, error)
}

// LogStore persists broadcast attempts.
type LogStore interface {
	CreateLog(l *NotificationLog) error
	UpdateLog(l *NotificationLog) error
	ListLogs(limit int) ([]NotificationLog, error)
}

type Service struct {
	Repo     LogStore
	Tokens   TokenSource
	Push     Channel
	AuditSvc auditlog.Service
}

func NewService(repo LogStore, tokens TokenSource, push Channel, auditSvc auditlog.Service) *Service {
	return &Service{Repo: repo, Tokens: tokens, Push: push, AuditSvc: auditSvc}
}

// BroadcastPush sends a push notification to every registered device and
// records the attempt. staffID is nil for queue-driven sends.
func (s *Service) BroadcastPush(ctx context.Context, req *PushRequest, staffID *uint, ip string) (*NotificationLog, error) {
	tokens, err := s.Tokens.ListPushTokens(ctx)
	if err != nil {
		metrics.PushSends.WithLabelValues("error").Inc()
		return nil, err
	}
	if len(tokens) == 0 {
		metrics.PushSends.WithLabelValues("empty").Inc()
		return nil, ErrNoRecipients
	}

	recipients, _ := json.Marshal(tokens)
	entry := &NotificationLog{
		UserID:     staffID,
		EventID:    req.EventID,
		Channel:    "push",
		Title:      req.Title,
		Body:       req.Body,
		Recipients: recipients,
		Status:     "pending",
	}
	if err := s.Repo.CreateLog(entry); err != nil {
		log.Printf("❌ Failed to create notification log: %v", err)
		return nil, err
	}

	sendErr := s.Push.Send(tokens, req.Title, req.Body)
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = "failed"
		entry.Error = &msg
		metrics.PushSends.WithLabelValues("failed").Inc()
		s.AuditSvc.LogAction(ctx, staffID, req.EventID, "PUSH_SENT",
			map[string]interface{}{"title": req.Title, "recipients": len(tokens), "error": msg}, ip, "failure")
	} else {
		entry.Status = "sent"
		metrics.PushSends.WithLabelValues("sent").Inc()
		s.AuditSvc.LogAction(ctx, staffID, req.EventID, "PUSH_SENT",
			map[string]interface{}{"title": req.Title, "recipients": len(tokens)}, ip, "success")
	}

	if err := s.Repo.UpdateLog(entry); err != nil {
		log.Printf("⚠️ Failed to update notification log %d: %v", entry.ID, err)
	}

	if sendErr != nil {
		return entry, sendErr
	}
	log.Printf("✅ Push broadcast %d delivered to %d devices", entry.ID, len(tokens))
	return entry, nil
}

func (s *Service) ListLogs(ctx context.Context, limit int) ([]NotificationLog, error) {
	return s.Repo.ListLogs(limit)
}
