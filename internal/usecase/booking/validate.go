package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/agendalivre/salon-scheduler/internal/domain/booking"
	"github.com/agendalivre/salon-scheduler/internal/httperr"
	"github.com/agendalivre/salon-scheduler/internal/models"
	"github.com/agendalivre/salon-scheduler/internal/timezone"
)

// Stable business codes returned by the engine. The HTTP layer maps them to
// status and user wording.
const (
	CodeInvalidRequest          = "invalid_request"
	CodeInvalidDateTime         = "invalid_date_or_time"
	CodeServiceNotFound         = "service_not_found"
	CodeServiceNotInTenant      = "service_not_in_tenant"
	CodeServiceInactive         = "service_inactive"
	CodeProfessionalNotFound    = "professional_not_found"
	CodeProfessionalNotInTenant = "professional_not_in_tenant"
	CodeProfessionalInactive    = "professional_inactive"
	CodeProfessionalNotLinked   = "professional_not_linked"
	CodeNoHoursForDay           = "no_hours_for_day"
	CodeOutsideWorkingHours     = "outside_working_hours"
	CodeAppointmentNotFound     = "appointment_not_found"
	CodeAppointmentCancelled    = "appointment_cancelled"
	CodeTimeConflict            = "time_conflict"
)

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, httperr.ErrBusiness(CodeInvalidRequest)
	}
	return id, nil
}

func loadService(
	ctx context.Context,
	repo domain.Repository,
	tenantID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Service, error) {

	svc, err := repo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, httperr.ErrBusiness(CodeServiceNotFound)
	}
	if svc.TenantID != tenantID {
		return nil, httperr.ErrBusiness(CodeServiceNotInTenant)
	}
	if !svc.IsActive || svc.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness(CodeServiceInactive)
	}
	return svc, nil
}

func loadProfessional(
	ctx context.Context,
	repo domain.Repository,
	tenantID uuid.UUID,
	professionalID uuid.UUID,
) (*models.Professional, error) {

	prof, err := repo.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, httperr.ErrBusiness(CodeProfessionalNotFound)
	}
	if prof.TenantID != tenantID {
		return nil, httperr.ErrBusiness(CodeProfessionalNotInTenant)
	}
	if !prof.IsActive {
		return nil, httperr.ErrBusiness(CodeProfessionalInactive)
	}
	return prof, nil
}

func checkLink(
	ctx context.Context,
	repo domain.Repository,
	professionalID uuid.UUID,
	serviceID uuid.UUID,
) error {

	linked, err := repo.ProfessionalPerformsService(ctx, professionalID, serviceID)
	if err != nil {
		return err
	}
	if !linked {
		return httperr.ErrBusiness(CodeProfessionalNotLinked)
	}
	return nil
}

// checkWithinHours validates that [start,end) lies inside the union of the
// professional's work spans for start's business-local weekday and clear of
// break rows. Breaks are enforced as busy time here exactly as in the slot
// generator, so both paths agree.
func checkWithinHours(
	ctx context.Context,
	repo domain.Repository,
	professional *models.Professional,
	start time.Time,
	end time.Time,
) error {

	weekday := int(timezone.Weekday(start))

	work, breaks, err := resolveWorkSpans(ctx, repo, professional, weekday)
	if err != nil {
		return err
	}
	if len(work) == 0 {
		return httperr.ErrBusiness(CodeNoHoursForDay)
	}

	year, month, day, _, _, _ := timezone.Clock(start)

	workIntervals, err := spansToIntervals(work, year, month, day)
	if err != nil {
		return err
	}
	breakIntervals, err := spansToIntervals(breaks, year, month, day)
	if err != nil {
		return err
	}

	target := domain.Interval{Start: start, End: end}

	if !domain.Contained(domain.MergeSpans(workIntervals), target) {
		return httperr.ErrBusiness(CodeOutsideWorkingHours)
	}
	if domain.OverlapsAny(breakIntervals, target) {
		return httperr.ErrBusiness(CodeOutsideWorkingHours)
	}

	return nil
}

func localDate(t time.Time) string {
	return t.In(timezone.Location).Format("2006-01-02")
}
