package allowlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nmoralesv/event-night-backend/internal/auditlog"
)

type noopAudit struct{}

func (noopAudit) LogAction(context.Context, *uint, *uint, string, map[string]interface{}, string, string) error {
	return nil
}
func (noopAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return &auditlog.PaginatedAuditLogs{}, nil
}
func (noopAudit) GetAuditLogByID(context.Context, uint) (*auditlog.AuditLog, error) {
	return nil, gorm.ErrRecordNotFound
}
func (noopAudit) PurgeOlderThan(context.Context, time.Duration) (int64, error) { return 0, nil }

// fakeStore keeps entries in a map, enough to drive the service paths.
type fakeStore struct {
	entries map[uint]*ApprovedEmail
	nextID  uint
}

func newFakeStore(emails ...string) *fakeStore {
	f := &fakeStore{entries: make(map[uint]*ApprovedEmail), nextID: 1}
	for _, e := range emails {
		id := f.nextID
		f.nextID++
		f.entries[id] = &ApprovedEmail{ID: id, Email: e}
	}
	return f
}

func (f *fakeStore) ListEmails() ([]ApprovedEmail, error) {
	out := make([]ApprovedEmail, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeStore) CreateEmail(e *ApprovedEmail) error {
	e.ID = f.nextID
	f.nextID++
	f.entries[e.ID] = e
	return nil
}

func (f *fakeStore) GetByEmail(email string) (*ApprovedEmail, error) {
	for _, e := range f.entries {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) GetByID(id uint) (*ApprovedEmail, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) UpdateEmail(e *ApprovedEmail) error {
	if _, ok := f.entries[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *e
	f.entries[e.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteEmail(id uint) error {
	if _, ok := f.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.entries, id)
	return nil
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"guest@example.com", "guest@example.com"},
		{"  Guest@Example.COM  ", "guest@example.com"},
		{"first.last+list@club.nightlife", "first.last+list@club.nightlife"},
	}

	for _, tc := range cases {
		got, err := normalizeEmail(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestNormalizeEmailRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "not-an-email", "@example.com", "a b@example.com", "guest@"} {
		_, err := normalizeEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, "input %q", bad)
	}
}

func TestUpdateEmailReplacesAddress(t *testing.T) {
	store := newFakeStore("old@club.com", "other@club.com")
	svc := NewService(store, noopAudit{})

	entry, err := svc.UpdateEmail(context.Background(), 1,
		&UpdateEmailRequest{Email: "  New@Club.COM "}, 9, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "new@club.com", entry.Email)

	stored, err := store.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "new@club.com", stored.Email)
}

func TestUpdateEmailUnknownID(t *testing.T) {
	svc := NewService(newFakeStore("old@club.com"), noopAudit{})

	_, err := svc.UpdateEmail(context.Background(), 42,
		&UpdateEmailRequest{Email: "new@club.com"}, 9, "10.0.0.1")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestUpdateEmailDuplicateConflict(t *testing.T) {
	svc := NewService(newFakeStore("old@club.com", "taken@club.com"), noopAudit{})

	_, err := svc.UpdateEmail(context.Background(), 1,
		&UpdateEmailRequest{Email: "taken@club.com"}, 9, "10.0.0.1")
	assert.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestUpdateEmailToItselfIsFine(t *testing.T) {
	svc := NewService(newFakeStore("same@club.com"), noopAudit{})

	entry, err := svc.UpdateEmail(context.Background(), 1,
		&UpdateEmailRequest{Email: "Same@Club.com"}, 9, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "same@club.com", entry.Email)
}

func TestUpdateEmailRejectsInvalid(t *testing.T) {
	svc := NewService(newFakeStore("old@club.com"), noopAudit{})

	_, err := svc.UpdateEmail(context.Background(), 1,
		&UpdateEmailRequest{Email: "not-an-email"}, 9, "10.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}
