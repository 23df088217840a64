package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub/internal/domain"
)

// fakeEventStore is an in-memory EventStore for tests.
type fakeEventStore struct {
	mu        sync.Mutex
	byID      map[string]*domain.Event
	nextID    int
	err       error // if set, every call returns this error
	listCalls int
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventStore) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	e.CreatedAt = time.Now()
	f.nextID++
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventStore) filter(keep func(*domain.Event) bool) []*domain.Event {
	out := []*domain.Event{}
	for _, e := range f.byID {
		if keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Datetime.Before(out[j].Datetime) })
	return out
}

func (f *fakeEventStore) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(func(e *domain.Event) bool { return e.Status == status }), nil
}

func (f *fakeEventStore) ListByIDs(ctx context.Context, ids []string, status domain.EventStatus) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(func(e *domain.Event) bool { return e.Status == status && slices.Contains(ids, e.ID) }), nil
}

func (f *fakeEventStore) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if e.Status != domain.StatusPending {
		return nil, domain.ErrAlreadyReviewed
	}
	e.Status = status
	cp := *e
	return &cp, nil
}

// fakeParticipantStore enforces the (event, user) uniqueness like the real stores.
type fakeParticipantStore struct {
	mu     sync.Mutex
	rows   []*domain.EventParticipant
	emails map[string]string
	err    error
	batch  int
}

func (f *fakeParticipantStore) Create(ctx context.Context, p *domain.EventParticipant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, r := range f.rows {
		if r.EventID == p.EventID && r.UserID == p.UserID {
			return domain.ErrAlreadyJoined
		}
	}
	p.ID = fmt.Sprintf("p-%d", len(f.rows)+1)
	p.CreatedAt = time.Now()
	f.rows = append(f.rows, p)
	return nil
}

func (f *fakeParticipantStore) ListByUserID(ctx context.Context, userID string) ([]*domain.EventParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.EventParticipant
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeParticipantStore) ListWithEmailsByEventIDs(ctx context.Context, eventIDs []string) ([]*domain.EventParticipantWithEmail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batch++
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.EventParticipantWithEmail
	for _, r := range f.rows {
		email, ok := f.emails[r.UserID]
		if !ok || !slices.Contains(eventIDs, r.EventID) {
			continue
		}
		out = append(out, &domain.EventParticipantWithEmail{EventID: r.EventID, UserID: r.UserID, Email: email})
	}
	return out, nil
}

func (f *fakeParticipantStore) count(eventID, userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.rows {
		if r.EventID == eventID && r.UserID == userID {
			n++
		}
	}
	return n
}

type fakeDirectory struct {
	emails map[string]string
}

func (f *fakeDirectory) EmailByID(ctx context.Context, userID string) (string, error) {
	if e, ok := f.emails[userID]; ok {
		return e, nil
	}
	return "", domain.ErrNotFound
}

// staticIdentity is an IdentitySource whose identity tests can swap.
type staticIdentity struct {
	mu       sync.Mutex
	identity *domain.Identity
}

func (s *staticIdentity) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *staticIdentity) set(id *domain.Identity) {
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
}

type mockEmailService struct {
	sent []*domain.EventStatusEmailData
	err  error
}

func (m *mockEmailService) SendEventStatusChanged(ctx context.Context, data *domain.EventStatusEmailData) error {
	m.sent = append(m.sent, data)
	return m.err
}

type serviceFixture struct {
	events       *fakeEventStore
	participants *fakeParticipantStore
	directory    *fakeDirectory
	identity     *staticIdentity
	email        *mockEmailService
	svc          domain.EventService
}

var (
	userA = &domain.Identity{ID: "user-a", Email: "a@x.com", Roles: []string{domain.RoleUser}}
	userB = &domain.Identity{ID: "user-b", Email: "b@x.com", Roles: []string{domain.RoleUser}}
	admin = &domain.Identity{ID: "admin-1", Email: "admin@x.com", Roles: []string{domain.RoleUser, domain.RoleAdmin}}
)

func newServiceFixture(identity *domain.Identity) *serviceFixture {
	emails := map[string]string{userA.ID: userA.Email, userB.ID: userB.Email, admin.ID: admin.Email}
	f := &serviceFixture{
		events:       newFakeEventStore(),
		participants: &fakeParticipantStore{emails: emails},
		directory:    &fakeDirectory{emails: emails},
		identity:     &staticIdentity{identity: identity},
		email:        &mockEmailService{},
	}
	f.svc = NewEventService(f.events, f.participants, f.directory, f.identity, f.email, nil)
	return f
}

func validDraft(name string) domain.EventDraft {
	return domain.EventDraft{
		Name:        name,
		Type:        "Social",
		Description: "Team kickoff event",
		Datetime:    time.Now().Add(48 * time.Hour),
	}
}

func (f *serviceFixture) seed(t *testing.T, name string, status domain.EventStatus, at time.Time) *domain.Event {
	t.Helper()
	ev := &domain.Event{Name: name, Type: "Meetup", Description: "seeded event body", Datetime: at, Status: status, CreatedBy: userA.ID}
	require.NoError(t, f.events.Create(context.Background(), ev))
	return ev
}

func TestEventService_CreateStampsPendingAndOwner(t *testing.T) {
	f := newServiceFixture(userA)

	ev, err := f.svc.Create(context.Background(), validDraft("Launch"))
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, domain.StatusPending, ev.Status)
	assert.Equal(t, userA.ID, ev.CreatedBy)

	stored, err := f.svc.GetByID(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, "Launch", stored.Name)
}

func TestEventService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.EventDraft)
		wantMsg string
	}{
		{name: "short name", mutate: func(d *domain.EventDraft) { d.Name = "ab" }, wantMsg: "Event name must be at least 3 characters"},
		{name: "missing type", mutate: func(d *domain.EventDraft) { d.Type = "" }, wantMsg: "Please select an event type"},
		{name: "short description", mutate: func(d *domain.EventDraft) { d.Description = "too short" }, wantMsg: "Description must be at least 10 characters"},
		{name: "missing datetime", mutate: func(d *domain.EventDraft) { d.Datetime = time.Time{} }, wantMsg: "Please select a date and time"},
		{name: "past datetime", mutate: func(d *domain.EventDraft) { d.Datetime = time.Now().Add(-time.Hour) }, wantMsg: "Event date must be in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(userA)
			draft := validDraft("Launch")
			tt.mutate(&draft)

			_, err := f.svc.Create(context.Background(), draft)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Empty(t, f.events.byID)
		})
	}
}

func TestEventService_RequiresIdentity(t *testing.T) {
	f := newServiceFixture(nil)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, validDraft("Launch"))
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = f.svc.Join(ctx, "ev-1")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, f.participants.rows)

	_, err = f.svc.ListJoinedByCurrentUser(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestEventService_JoinTwiceFailsWithAlreadyJoined(t *testing.T) {
	f := newServiceFixture(userA)
	ev := f.seed(t, "Meetup", domain.StatusApproved, time.Now().Add(time.Hour))

	p, err := f.svc.Join(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, userA.ID, p.UserID)

	_, err = f.svc.Join(context.Background(), ev.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyJoined)
	assert.Equal(t, domain.ErrAlreadyJoined, err, "already-joined is returned unwrapped")
	assert.Equal(t, 1, f.participants.count(ev.ID, userA.ID))
}

func TestEventService_ConcurrentJoinsLeaveOneRow(t *testing.T) {
	f := newServiceFixture(userA)
	ev := f.seed(t, "Meetup", domain.StatusApproved, time.Now().Add(time.Hour))

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Join(context.Background(), ev.ID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyJoined)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, f.participants.count(ev.ID, userA.ID))
}

func TestEventService_UpdateStatus(t *testing.T) {
	t.Run("approved moves event between lists", func(t *testing.T) {
		f := newServiceFixture(admin)
		ev := f.seed(t, "Launch", domain.StatusPending, time.Now().Add(time.Hour))

		updated, err := f.svc.UpdateStatus(context.Background(), ev.ID, domain.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, updated.Status)

		approved, err := f.svc.ListApproved(context.Background())
		require.NoError(t, err)
		assert.Len(t, approved, 1)
		pending, err := f.svc.ListPending(context.Background())
		require.NoError(t, err)
		assert.Empty(t, pending)

		require.Len(t, f.email.sent, 1)
		assert.Equal(t, userA.Email, f.email.sent[0].Email)
		assert.Equal(t, domain.StatusApproved, f.email.sent[0].Status)
	})

	t.Run("rejected is omitted from both lists but retrievable", func(t *testing.T) {
		f := newServiceFixture(admin)
		ev := f.seed(t, "Launch", domain.StatusPending, time.Now().Add(time.Hour))

		_, err := f.svc.UpdateStatus(context.Background(), ev.ID, domain.StatusRejected)
		require.NoError(t, err)

		approved, _ := f.svc.ListApproved(context.Background())
		pending, _ := f.svc.ListPending(context.Background())
		assert.Empty(t, approved)
		assert.Empty(t, pending)

		got, err := f.svc.GetByID(context.Background(), ev.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, got.Status)
	})

	t.Run("pending is not a review status", func(t *testing.T) {
		f := newServiceFixture(admin)
		_, err := f.svc.UpdateStatus(context.Background(), "ev-1", domain.StatusPending)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing event is a remote not-found", func(t *testing.T) {
		f := newServiceFixture(admin)
		_, err := f.svc.UpdateStatus(context.Background(), "nope", domain.StatusApproved)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, err, domain.ErrRemoteFailure)
	})

	t.Run("reviewed event cannot be reviewed again", func(t *testing.T) {
		f := newServiceFixture(admin)
		ev := f.seed(t, "Launch", domain.StatusPending, time.Now().Add(time.Hour))
		_, err := f.svc.UpdateStatus(context.Background(), ev.ID, domain.StatusRejected)
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(context.Background(), ev.ID, domain.StatusApproved)
		require.ErrorIs(t, err, domain.ErrAlreadyReviewed)
		assert.NotErrorIs(t, err, domain.ErrRemoteFailure)

		got, err := f.svc.GetByID(context.Background(), ev.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, got.Status)
		assert.Len(t, f.email.sent, 1)
	})

	t.Run("email failure does not fail the update", func(t *testing.T) {
		f := newServiceFixture(admin)
		f.email.err = errors.New("ses down")
		ev := f.seed(t, "Launch", domain.StatusPending, time.Now().Add(time.Hour))

		_, err := f.svc.UpdateStatus(context.Background(), ev.ID, domain.StatusApproved)
		require.NoError(t, err)
	})
}

func TestEventService_ListApprovedWithParticipants(t *testing.T) {
	f := newServiceFixture(userA)
	now := time.Now()
	later := f.seed(t, "Later", domain.StatusApproved, now.Add(2*time.Hour))
	sooner := f.seed(t, "Sooner", domain.StatusApproved, now.Add(time.Hour))
	f.seed(t, "Pending", domain.StatusPending, now.Add(time.Hour))

	ctx := context.Background()
	_, err := f.svc.Join(ctx, sooner.ID)
	require.NoError(t, err)
	f.identity.set(userB)
	_, err = f.svc.Join(ctx, sooner.ID)
	require.NoError(t, err)
	_, err = f.svc.Join(ctx, later.ID)
	require.NoError(t, err)
	// Participation of an identity without an email on record is omitted.
	f.identity.set(&domain.Identity{ID: "ghost"})
	_, err = f.svc.Join(ctx, later.ID)
	require.NoError(t, err)

	got, err := f.svc.ListApprovedWithParticipants(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Sooner", got[0].Name)
	assert.Len(t, got[0].Participants, 2)
	assert.Equal(t, "Later", got[1].Name)
	assert.Equal(t, []domain.Participant{{UserID: userB.ID, Email: userB.Email}}, got[1].Participants)
	assert.Equal(t, 1, f.participants.batch, "participants are loaded in one batch")
}

func TestEventService_ListApprovedWithParticipantsEmpty(t *testing.T) {
	f := newServiceFixture(userA)
	got, err := f.svc.ListApprovedWithParticipants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, f.participants.batch)
}

func TestEventService_ListJoinedByCurrentUser(t *testing.T) {
	f := newServiceFixture(userA)
	now := time.Now()
	approved := f.seed(t, "Approved", domain.StatusApproved, now.Add(time.Hour))
	pending := f.seed(t, "Pending", domain.StatusPending, now.Add(time.Hour))

	got, err := f.svc.ListJoinedByCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.svc.Join(context.Background(), approved.ID)
	require.NoError(t, err)
	_, err = f.svc.Join(context.Background(), pending.ID)
	require.NoError(t, err)

	got, err = f.svc.ListJoinedByCurrentUser(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, approved.ID, got[0].ID)
}

func TestEventService_RemoteErrorsAreWrapped(t *testing.T) {
	f := newServiceFixture(userA)
	dbErr := errors.New("connection refused")
	f.events.err = dbErr

	_, err := f.svc.ListApproved(context.Background())
	require.ErrorIs(t, err, domain.ErrRemoteFailure)
	require.ErrorIs(t, err, dbErr)

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "list approved events", re.Op)

	f.events.err = domain.ErrUninitialized
	_, err = f.svc.ListPending(context.Background())
	assert.Equal(t, domain.ErrUninitialized, err)
}
