package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/agendalivre/salon-scheduler/internal/cache"
	domain "github.com/agendalivre/salon-scheduler/internal/domain/booking"
	"github.com/agendalivre/salon-scheduler/internal/extsync"
	"github.com/agendalivre/salon-scheduler/internal/httperr"
)

// ======================================================
// USE CASE
// ======================================================

type DeleteBooking struct {
	repo       domain.Repository
	dispatcher *extsync.Dispatcher
	cache      *cache.SlotCache
	log        *zap.Logger
}

func NewDeleteBooking(
	repo domain.Repository,
	dispatcher *extsync.Dispatcher,
	slotCache *cache.SlotCache,
	log *zap.Logger,
) *DeleteBooking {
	return &DeleteBooking{
		repo:       repo,
		dispatcher: dispatcher,
		cache:      slotCache,
		log:        log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute hard-deletes the appointment. Collaborators are notified while the
// row still exists so they can clean up their stored external references;
// their outcome never stops the deletion.
func (uc *DeleteBooking) Execute(ctx context.Context, rawID string) error {

	appointmentID, err := parseID(rawID)
	if err != nil {
		return err
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if ap == nil {
		return httperr.ErrBusiness(CodeAppointmentNotFound)
	}

	uc.dispatcher.NotifyDeleted(ctx, appointmentID)

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, ap.ProfessionalID, localDate(ap.StartTime))

	return nil
}
