package extsync

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/agendalivre/salon-scheduler/internal/domain/booking"
)

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
)

type Event struct {
	Type          EventType
	AppointmentID uuid.UUID
	TenantID      uuid.UUID
}

// ResultStore persists the aggregate sync outcome on the appointment row.
// Satisfied by the booking repository.
type ResultStore interface {
	SetSyncResult(
		ctx context.Context,
		id uuid.UUID,
		status domain.SyncStatus,
		calendarEventID *string,
		platformBookingID *string,
	) error
}

// Dispatcher fans booking events out to the configured collaborators after
// the transaction has committed. Dispatch never blocks the request path and
// a collaborator failure never reaches the booking result; the outcome is
// recorded on sync_status only.
type Dispatcher struct {
	store         ResultStore
	collaborators []Collaborator
	log           *zap.Logger
	queue         chan Event
}

func NewDispatcher(store ResultStore, collaborators []Collaborator, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		store:         store,
		collaborators: collaborators,
		log:           log,
		queue:         make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.process(context.Background(), ev)
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// full queue: drop, the booking already succeeded
		d.log.Warn("sync queue full, dropping event",
			zap.String("type", string(ev.Type)),
			zap.String("appointment_id", ev.AppointmentID.String()),
		)
	}
}

func (d *Dispatcher) process(ctx context.Context, ev Event) {
	status := domain.SyncSynced
	var calendarEventID, platformBookingID *string

	for _, col := range d.collaborators {
		var extID *string
		var err error

		switch ev.Type {
		case EventCreated:
			extID, err = col.CreateExternalEvent(ctx, ev.AppointmentID)
		case EventUpdated:
			extID, err = col.UpdateExternalEvent(ctx, ev.AppointmentID)
		}

		if err != nil {
			status = domain.SyncFailed
			d.log.Warn("sync collaborator failed",
				zap.String("collaborator", col.Name()),
				zap.String("type", string(ev.Type)),
				zap.String("appointment_id", ev.AppointmentID.String()),
				zap.Error(err),
			)
			continue
		}

		if extID == nil {
			// not configured for this tenant
			continue
		}

		switch col.Kind() {
		case RefCalendar:
			calendarEventID = extID
		case RefPlatform:
			platformBookingID = extID
		}
	}

	if err := d.store.SetSyncResult(ctx, ev.AppointmentID, status, calendarEventID, platformBookingID); err != nil {
		d.log.Error("failed to record sync result",
			zap.String("appointment_id", ev.AppointmentID.String()),
			zap.Error(err),
		)
	}
}

// NotifyDeleted runs the delete variant inline, before the row is removed, so
// collaborators can still read their stored external references. Failures are
// logged and never stop the deletion.
func (d *Dispatcher) NotifyDeleted(ctx context.Context, appointmentID uuid.UUID) {
	for _, col := range d.collaborators {
		if _, err := col.DeleteExternalEvent(ctx, appointmentID); err != nil {
			d.log.Warn("sync collaborator delete failed",
				zap.String("collaborator", col.Name()),
				zap.String("appointment_id", appointmentID.String()),
				zap.Error(err),
			)
		}
	}
}
