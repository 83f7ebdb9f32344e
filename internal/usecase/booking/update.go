package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/agendalivre/salon-scheduler/internal/cache"
	domain "github.com/agendalivre/salon-scheduler/internal/domain/booking"
	"github.com/agendalivre/salon-scheduler/internal/extsync"
	"github.com/agendalivre/salon-scheduler/internal/httperr"
	"github.com/agendalivre/salon-scheduler/internal/models"
	"github.com/agendalivre/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// Nil fields keep the appointment's current value.
type UpdateBookingInput struct {
	AppointmentID string

	ProfessionalID *string
	ServiceID      *string
	Start          *string
	Notes          *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBooking struct {
	repo       domain.Repository
	dispatcher *extsync.Dispatcher
	cache      *cache.SlotCache
	log        *zap.Logger
}

func NewUpdateBooking(
	repo domain.Repository,
	dispatcher *extsync.Dispatcher,
	slotCache *cache.SlotCache,
	log *zap.Logger,
) *UpdateBooking {
	return &UpdateBooking{
		repo:       repo,
		dispatcher: dispatcher,
		cache:      slotCache,
		log:        log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateBooking) Execute(ctx context.Context, in UpdateBookingInput) (*models.Appointment, error) {

	appointmentID, err := parseID(in.AppointmentID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, httperr.ErrBusiness(CodeAppointmentNotFound)
	}
	if ap.Status == string(domain.StatusCancelled) {
		return nil, httperr.ErrBusiness(CodeAppointmentCancelled)
	}

	// --------------------------------------------------
	// 1. Merge patch over the current row
	// --------------------------------------------------
	finalProfessionalID := ap.ProfessionalID
	if in.ProfessionalID != nil {
		finalProfessionalID, err = parseID(*in.ProfessionalID)
		if err != nil {
			return nil, err
		}
	}

	finalServiceID := ap.ServiceID
	if in.ServiceID != nil {
		finalServiceID, err = parseID(*in.ServiceID)
		if err != nil {
			return nil, err
		}
	}

	finalStart := ap.StartTime
	if in.Start != nil {
		start, discardedOffset, perr := timezone.ParseLocal(*in.Start)
		if perr != nil {
			if errors.Is(perr, timezone.ErrInvalidDateTime) {
				return nil, httperr.ErrBusiness(CodeInvalidDateTime)
			}
			return nil, perr
		}
		if discardedOffset {
			uc.log.Warn("discarded non-local timezone offset on booking input",
				zap.String("start", *in.Start),
				zap.String("appointment_id", in.AppointmentID),
			)
		}
		finalStart = start
	}

	professionalChanged := finalProfessionalID != ap.ProfessionalID
	serviceChanged := finalServiceID != ap.ServiceID
	startChanged := !finalStart.Equal(ap.StartTime)

	// --------------------------------------------------
	// 2. Re-validate with the final values
	// --------------------------------------------------
	svc, err := loadService(ctx, uc.repo, ap.TenantID, finalServiceID)
	if err != nil {
		return nil, err
	}

	prof, err := loadProfessional(ctx, uc.repo, ap.TenantID, finalProfessionalID)
	if err != nil {
		return nil, err
	}

	if err := checkLink(ctx, uc.repo, finalProfessionalID, finalServiceID); err != nil {
		return nil, err
	}

	// end comes from the (possibly new) service duration even when the start
	// did not move
	finalEnd := ap.EndTime
	if professionalChanged || serviceChanged || startChanged {
		finalEnd = finalStart.Add(time.Duration(svc.DurationMinutes) * time.Minute)
	}
	endChanged := !finalEnd.Equal(ap.EndTime)

	if startChanged || professionalChanged || endChanged {
		if err := checkWithinHours(ctx, uc.repo, prof, finalStart, finalEnd); err != nil {
			return nil, err
		}
	}

	oldProfessionalID := ap.ProfessionalID
	oldDate := localDate(ap.StartTime)

	apply := func(row *models.Appointment) {
		row.ProfessionalID = finalProfessionalID
		row.ServiceID = finalServiceID
		row.StartTime = finalStart
		row.EndTime = finalEnd
		if in.Notes != nil {
			row.Notes = *in.Notes
		}
	}

	// --------------------------------------------------
	// 3. Write; conflict re-check only when the slot moved
	// --------------------------------------------------
	needsConflictCheck := startChanged || professionalChanged || endChanged

	if needsConflictCheck {
		err = uc.repo.WithProfessionalLock(ctx, finalProfessionalID, func(tx domain.Repository) error {
			conflicts, err := tx.CountConflicts(ctx, finalProfessionalID, finalStart, finalEnd, &appointmentID)
			if err != nil {
				return err
			}
			if conflicts > 0 {
				return httperr.ErrBusiness(CodeTimeConflict)
			}

			apply(ap)
			return tx.UpdateAppointment(ctx, ap)
		})
	} else {
		apply(ap)
		err = uc.repo.UpdateAppointment(ctx, ap)
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. After commit
	// --------------------------------------------------
	uc.dispatcher.Dispatch(extsync.Event{
		Type:          extsync.EventUpdated,
		AppointmentID: ap.ID,
		TenantID:      ap.TenantID,
	})

	uc.cache.Invalidate(ctx, oldProfessionalID, oldDate)
	if finalProfessionalID != oldProfessionalID || localDate(finalStart) != oldDate {
		uc.cache.Invalidate(ctx, finalProfessionalID, localDate(finalStart))
	}

	return ap, nil
}
