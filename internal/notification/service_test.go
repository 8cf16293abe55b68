package notification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmoralesv/event-night-backend/internal/auditlog"
)

type fakeLogStore struct {
	created []*NotificationLog
	updated []*NotificationLog
}

func (f *fakeLogStore) CreateLog(l *NotificationLog) error {
	l.ID = uint(len(f.created) + 1)
	f.created = append(f.created, l)
	return nil
}

func (f *fakeLogStore) UpdateLog(l *NotificationLog) error {
	f.updated = append(f.updated, l)
	return nil
}

func (f *fakeLogStore) ListLogs(int) ([]NotificationLog, error) {
	var out []NotificationLog
	for _, l := range f.created {
		out = append(out, *l)
	}
	return out, nil
}

type fakeTokens struct {
	tokens []string
	err    error
}

func (f *fakeTokens) ListPushTokens(context.Context) ([]string, error) {
	return f.tokens, f.err
}

type fakeChannel struct {
	sent  [][]string
	title string
	body  string
	err   error
}

func (f *fakeChannel) Send(recipients []string, title, body string) error {
	f.sent = append(f.sent, recipients)
	f.title = title
	f.body = body
	return f.err
}

type noopAudit struct{}

func (noopAudit) LogAction(context.Context, *uint, *uint, string, map[string]interface{}, string, string) error {
	return nil
}
func (noopAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return &auditlog.PaginatedAuditLogs{}, nil
}
func (noopAudit) GetAuditLogByID(context.Context, uint) (*auditlog.AuditLog, error) {
	return nil, errors.New("not found")
}
func (noopAudit) PurgeOlderThan(context.Context, time.Duration) (int64, error) { return 0, nil }

func TestBroadcastPushSends(t *testing.T) {
	store := &fakeLogStore{}
	channel := &fakeChannel{}
	tokens := &fakeTokens{tokens: []string{strings.Repeat("a", 40), strings.Repeat("b", 40)}}
	svc := NewService(store, tokens, channel, noopAudit{})

	staffID := uint(9)
	entry, err := svc.BroadcastPush(context.Background(), &PushRequest{Title: "Last call", Body: "Bar closes in 30"}, &staffID, "1.2.3.4")
	require.NoError(t, err)

	require.Len(t, channel.sent, 1)
	assert.Len(t, channel.sent[0], 2)
	assert.Equal(t, "Last call", channel.title)

	assert.Equal(t, "sent", entry.Status)
	assert.Nil(t, entry.Error)
	require.Len(t, store.updated, 1)
}

func TestBroadcastPushNoTokens(t *testing.T) {
	svc := NewService(&fakeLogStore{}, &fakeTokens{}, &fakeChannel{}, noopAudit{})

	_, err := svc.BroadcastPush(context.Background(), &PushRequest{Title: "t", Body: "b"}, nil, "ip")
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestBroadcastPushDeliveryFailureRecorded(t *testing.T) {
	store := &fakeLogStore{}
	channel := &fakeChannel{err: errors.New("fcm down")}
	tokens := &fakeTokens{tokens: []string{strings.Repeat("a", 40)}}
	svc := NewService(store, tokens, channel, noopAudit{})

	entry, err := svc.BroadcastPush(context.Background(), &PushRequest{Title: "t", Body: "b"}, nil, "ip")
	require.Error(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, "failed", entry.Status)
	require.NotNil(t, entry.Error)
	assert.Contains(t, *entry.Error, "fcm down")
}

func TestIsValidToken(t *testing.T) {
	assert.True(t, isValidToken(strings.Repeat("x", 40)))
	assert.True(t, isValidToken("  "+strings.Repeat("x", 40)+"  "), "surrounding whitespace is trimmed")

	assert.False(t, isValidToken(""))
	assert.False(t, isValidToken("short"))
	assert.False(t, isValidToken(strings.Repeat("x", 10)+" "+strings.Repeat("x", 30)))
}
