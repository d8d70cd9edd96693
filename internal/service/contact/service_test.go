package contact

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/pkg/email"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memContactRepo struct {
	contact.ContactRepository

	mu       sync.Mutex
	contacts map[string]contact.Contact
	notes    map[string][]contact.Note
	counts   map[string][]contact.CountBy
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{
		contacts: map[string]contact.Contact{},
		notes:    map[string][]contact.Note{},
		counts:   map[string][]contact.CountBy{},
	}
}

func (m *memContactRepo) Create(_ context.Context, c contact.Contact) (contact.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = "contact-1"
	c.CreatedAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m.contacts[c.ID] = c
	return c, nil
}

func (m *memContactRepo) GetByID(_ context.Context, id string) (contact.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok {
		return contact.Contact{}, contact.ErrContactNotFound
	}
	return c, nil
}

func (m *memContactRepo) ListNotes(_ context.Context, id string) ([]contact.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notes[id], nil
}

func (m *memContactRepo) AddNote(_ context.Context, id, note, addedBy string) (contact.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := contact.Note{ID: int64(len(m.notes[id]) + 1), Note: note, AddedBy: &addedBy}
	m.notes[id] = append(m.notes[id], n)
	return n, nil
}

func (m *memContactRepo) Assign(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok {
		return contact.ErrContactNotFound
	}
	c.AssignedTo = &userID
	m.contacts[id] = c
	return nil
}

func (m *memContactRepo) CountBy(_ context.Context, column string) ([]contact.CountBy, error) {
	return m.counts[column], nil
}

type memUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type recordingMailer struct {
	sent chan string
}

func (r *recordingMailer) SendContactNotification(msg email.ContactMessage) error {
	r.sent <- "notification:" + msg.Subject
	return nil
}

func (r *recordingMailer) SendContactAcknowledgement(msg email.ContactMessage) error {
	r.sent <- "acknowledgement:" + msg.Email
	return nil
}

const (
	adminID  = "0195b7a4-0000-7000-8000-000000000001"
	memberID = "0195b7a4-0000-7000-8000-000000000002"
)

func newTestService(mailer email.EmailService) (*ContactServiceImpl, *memContactRepo) {
	repo := newMemContactRepo()
	users := &memUserRepo{users: map[string]user.User{
		adminID:  {ID: adminID, Name: "Admin", Role: user.RoleAdmin},
		memberID: {ID: memberID, Name: "Member", Role: user.RoleUser},
	}}
	svc := NewContactService(passthroughTx{}, repo, users, nil, mailer).(*ContactServiceImpl)
	return svc, repo
}

func validRequest() contact.CreateContactRequest {
	return contact.CreateContactRequest{
		Name:      "  Laylo Karimova ",
		Email:     "Laylo@Example.com",
		Subject:   "Mobile app",
		Message:   "We would like an estimate for an iOS app.",
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
	}
}

func TestCreate_AppliesDefaultsAndSendsMail(t *testing.T) {
	mailer := &recordingMailer{sent: make(chan string, 2)}
	svc, _ := newTestService(mailer)

	created, err := svc.Create(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "Laylo Karimova", created.Name)
	assert.Equal(t, "laylo@example.com", created.Email)
	assert.Equal(t, contact.StatusNew, created.Status)
	assert.Equal(t, contact.PriorityMedium, created.Priority)
	assert.Equal(t, contact.SourceWebsite, created.Source)
	require.NotNil(t, created.IPAddress)
	assert.Equal(t, "203.0.113.7", *created.IPAddress)

	got := []string{}
	for len(got) < 2 {
		select {
		case m := <-mailer.sent:
			got = append(got, m)
		case <-time.After(time.Second):
			t.Fatalf("expected two mails, got %v", got)
		}
	}
	assert.ElementsMatch(t, []string{"notification:Mobile app", "acknowledgement:laylo@example.com"}, got)
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc, repo := newTestService(nil)
	req := validRequest()
	req.Message = "short"
	req.Email = "not-an-email"

	_, err := svc.Create(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, repo.contacts)
}

func TestAssign(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	t.Run("admin assignee", func(t *testing.T) {
		assigned, err := svc.Assign(ctx, created.ID, adminID)
		require.NoError(t, err)
		require.NotNil(t, assigned.AssignedTo)
		assert.Equal(t, adminID, *assigned.AssignedTo)
	})

	t.Run("non-admin assignee", func(t *testing.T) {
		_, err := svc.Assign(ctx, created.ID, memberID)
		assert.ErrorIs(t, err, contact.ErrAssigneeNotAdmin)
	})

	t.Run("unknown assignee", func(t *testing.T) {
		_, err := svc.Assign(ctx, created.ID, "0195b7a4-0000-7000-8000-0000000000ff")
		assert.ErrorIs(t, err, contact.ErrAssigneeNotFound)
	})

	t.Run("malformed assignee", func(t *testing.T) {
		_, err := svc.Assign(ctx, created.ID, "nope")
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestAddNote_ReturnsContactWithNotes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)
	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	updated, err := svc.AddNote(ctx, created.ID, adminID, contact.AddNoteRequest{Note: "  Called back  "})

	require.NoError(t, err)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, "Called back", updated.Notes[0].Note)

	_, err = svc.AddNote(ctx, "missing", adminID, contact.AddNoteRequest{Note: "x"})
	assert.ErrorIs(t, err, contact.ErrContactNotFound)
}

func TestStats_SumsStatusCounts(t *testing.T) {
	svc, repo := newTestService(nil)
	repo.counts["status"] = []contact.CountBy{{Key: "new", Count: 4}, {Key: "closed", Count: 6}}
	repo.counts["priority"] = []contact.CountBy{{Key: "high", Count: 10}}

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(4), stats.New)
	assert.Len(t, stats.ByPriority, 1)
}
