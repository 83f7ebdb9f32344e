package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/agendalivre/salon-scheduler/internal/domain/booking"
	"github.com/agendalivre/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func notFoundToNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// --------------------------------------------------
// Entities
// --------------------------------------------------

func (r *BookingGormRepository) GetTenantByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tenant).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &tenant, nil
}

func (r *BookingGormRepository) GetProfessionalByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&prof).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &prof, nil
}

func (r *BookingGormRepository) GetServiceByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&svc).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &svc, nil
}

func (r *BookingGormRepository) ProfessionalPerformsService(
	ctx context.Context,
	professionalID uuid.UUID,
	serviceID uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("professional_services").
		Where("professional_id = ? AND service_id = ?", professionalID, serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListRules(
	ctx context.Context,
	professionalID uuid.UUID,
	weekday int,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND weekday = ?", professionalID, weekday).
		Order("start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *BookingGormRepository) ListBusyAppointments(
	ctx context.Context,
	professionalID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"professional_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			professionalID, string(domain.StatusCancelled), to, from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, notFoundToNil(err)
	}
	return &ap, nil
}

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Appointment{}, "id = ?", id).Error
}

func (r *BookingGormRepository) CountConflicts(
	ctx context.Context,
	professionalID uuid.UUID,
	start time.Time,
	end time.Time,
	excludeID *uuid.UUID,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"professional_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			professionalID, string(domain.StatusCancelled), end, start,
		)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// WithProfessionalLock serializes writers on the same professional: the row
// lock is held from the conflict check through the insert/update, so two
// concurrent transactions cannot both pass the overlap check.
func (r *BookingGormRepository) WithProfessionalLock(
	ctx context.Context,
	professionalID uuid.UUID,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prof models.Professional
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", professionalID).
			First(&prof).Error; err != nil {
			return err
		}

		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Sync outcome
// --------------------------------------------------

func (r *BookingGormRepository) SetSyncResult(
	ctx context.Context,
	id uuid.UUID,
	status domain.SyncStatus,
	calendarEventID *string,
	platformBookingID *string,
) error {

	updates := map[string]any{"sync_status": string(status)}
	if calendarEventID != nil {
		updates["calendar_event_id"] = *calendarEventID
	}
	if platformBookingID != nil {
		updates["platform_booking_id"] = *platformBookingID
	}

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
