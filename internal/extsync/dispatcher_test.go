package extsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/agendalivre/salon-scheduler/internal/domain/booking"
)

type fakeStore struct {
	mu sync.Mutex

	status     domain.SyncStatus
	calendarID *string
	platformID *string

	written chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{written: make(chan struct{}, 1)}
}

func (s *fakeStore) SetSyncResult(ctx context.Context, id uuid.UUID, status domain.SyncStatus, calendarEventID, platformBookingID *string) error {
	s.mu.Lock()
	s.status = status
	s.calendarID = calendarEventID
	s.platformID = platformBookingID
	s.mu.Unlock()

	select {
	case s.written <- struct{}{}:
	default:
	}
	return nil
}

type stubCollaborator struct {
	name string
	kind RefKind

	createID  *string
	createErr error

	deleteErr error
	deleted   *bool

	calls []string
}

func (c *stubCollaborator) Name() string  { return c.name }
func (c *stubCollaborator) Kind() RefKind { return c.kind }

func (c *stubCollaborator) CreateExternalEvent(ctx context.Context, id uuid.UUID) (*string, error) {
	c.calls = append(c.calls, "create")
	return c.createID, c.createErr
}

func (c *stubCollaborator) UpdateExternalEvent(ctx context.Context, id uuid.UUID) (*string, error) {
	c.calls = append(c.calls, "update")
	return c.createID, c.createErr
}

func (c *stubCollaborator) DeleteExternalEvent(ctx context.Context, id uuid.UUID) (*bool, error) {
	c.calls = append(c.calls, "delete")
	return c.deleted, c.deleteErr
}

func strptr(s string) *string { return &s }

func TestProcess_AllCollaboratorsSucceed(t *testing.T) {
	store := newFakeStore()
	calendar := &stubCollaborator{name: "google-calendar", kind: RefCalendar, createID: strptr("evt-1")}
	platform := &stubCollaborator{name: "booking-platform", kind: RefPlatform, createID: strptr("bk-9")}

	d := NewDispatcher(store, []Collaborator{calendar, platform}, zap.NewNop())
	d.process(context.Background(), Event{Type: EventCreated, AppointmentID: uuid.New()})

	assert.Equal(t, domain.SyncSynced, store.status)
	require.NotNil(t, store.calendarID)
	assert.Equal(t, "evt-1", *store.calendarID)
	require.NotNil(t, store.platformID)
	assert.Equal(t, "bk-9", *store.platformID)
}

func TestProcess_OneFailureDoesNotStopOthers(t *testing.T) {
	store := newFakeStore()
	failing := &stubCollaborator{name: "google-calendar", kind: RefCalendar, createErr: errors.New("api down")}
	platform := &stubCollaborator{name: "booking-platform", kind: RefPlatform, createID: strptr("bk-9")}

	d := NewDispatcher(store, []Collaborator{failing, platform}, zap.NewNop())
	d.process(context.Background(), Event{Type: EventCreated, AppointmentID: uuid.New()})

	// second collaborator still ran and its id was stored
	assert.Equal(t, []string{"create"}, platform.calls)
	require.NotNil(t, store.platformID)

	// but the aggregate outcome is failed
	assert.Equal(t, domain.SyncFailed, store.status)
	assert.Nil(t, store.calendarID)
}

func TestProcess_NilIDMeansNotConfigured(t *testing.T) {
	store := newFakeStore()
	unconfigured := &stubCollaborator{name: "google-calendar", kind: RefCalendar, createID: nil}

	d := NewDispatcher(store, []Collaborator{unconfigured}, zap.NewNop())
	d.process(context.Background(), Event{Type: EventCreated, AppointmentID: uuid.New()})

	// not configured is not a failure
	assert.Equal(t, domain.SyncSynced, store.status)
	assert.Nil(t, store.calendarID)
}

func TestProcess_UpdateVariant(t *testing.T) {
	store := newFakeStore()
	calendar := &stubCollaborator{name: "google-calendar", kind: RefCalendar, createID: strptr("evt-2")}

	d := NewDispatcher(store, []Collaborator{calendar}, zap.NewNop())
	d.process(context.Background(), Event{Type: EventUpdated, AppointmentID: uuid.New()})

	assert.Equal(t, []string{"update"}, calendar.calls)
	assert.Equal(t, domain.SyncSynced, store.status)
}

func TestDispatch_ProcessesThroughWorker(t *testing.T) {
	store := newFakeStore()
	d := NewDispatcher(store, nil, zap.NewNop())

	d.Dispatch(Event{Type: EventCreated, AppointmentID: uuid.New()})

	select {
	case <-store.written:
		assert.Equal(t, domain.SyncSynced, store.status)
	case <-time.After(2 * time.Second):
		t.Fatal("worker never recorded the sync result")
	}
}

func TestNotifyDeleted_RunsEveryCollaborator(t *testing.T) {
	store := newFakeStore()
	ok := true
	failing := &stubCollaborator{name: "google-calendar", kind: RefCalendar, deleteErr: errors.New("api down")}
	platform := &stubCollaborator{name: "booking-platform", kind: RefPlatform, deleted: &ok}

	d := NewDispatcher(store, []Collaborator{failing, platform}, zap.NewNop())
	d.NotifyDeleted(context.Background(), uuid.New())

	assert.Equal(t, []string{"delete"}, failing.calls)
	assert.Equal(t, []string{"delete"}, platform.calls)
}
