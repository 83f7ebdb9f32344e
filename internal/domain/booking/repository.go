package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendalivre/salon-scheduler/internal/models"
)

// Repository is the storage contract of the scheduling engine. Lookups return
// (nil, nil) when the row does not exist; only infrastructure failures come
// back as errors.
type Repository interface {
	// -------- Entities --------
	GetTenantByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Tenant, error)

	GetProfessionalByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Professional, error)

	GetServiceByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Service, error)

	ProfessionalPerformsService(
		ctx context.Context,
		professionalID uuid.UUID,
		serviceID uuid.UUID,
	) (bool, error)

	// -------- Availability --------
	ListRules(
		ctx context.Context,
		professionalID uuid.UUID,
		weekday int,
	) ([]models.AvailabilityRule, error)

	// ListBusyAppointments returns non-cancelled appointments whose [start,end)
	// intersects [from,to), ordered by start. Same half-open predicate as the
	// write-path conflict count.
	ListBusyAppointments(
		ctx context.Context,
		professionalID uuid.UUID,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (read / write) --------
	GetAppointmentByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uuid.UUID,
	) error

	// CountConflicts counts non-cancelled appointments of the professional
	// overlapping [start,end), optionally excluding one row (an update's own).
	CountConflicts(
		ctx context.Context,
		professionalID uuid.UUID,
		start time.Time,
		end time.Time,
		excludeID *uuid.UUID,
	) (int64, error)

	// WithProfessionalLock runs fn inside one transaction that first takes a
	// row lock on the professional, serializing concurrent writers so the
	// conflict check and the write are a single atomic unit.
	WithProfessionalLock(
		ctx context.Context,
		professionalID uuid.UUID,
		fn func(tx Repository) error,
	) error

	// -------- Sync outcome --------
	SetSyncResult(
		ctx context.Context,
		id uuid.UUID,
		status SyncStatus,
		calendarEventID *string,
		platformBookingID *string,
	) error
}
