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

type CreateBookingInput struct {
	TenantID       string
	ProfessionalID string
	ClientID       string
	ServiceID      string

	Start string // "YYYY-MM-DDTHH:mm[:ss]", business-local
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo       domain.Repository
	dispatcher *extsync.Dispatcher
	cache      *cache.SlotCache
	log        *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	dispatcher *extsync.Dispatcher,
	slotCache *cache.SlotCache,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:       repo,
		dispatcher: dispatcher,
		cache:      slotCache,
		log:        log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(ctx context.Context, in CreateBookingInput) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Shape validation
	// --------------------------------------------------
	tenantID, err := parseID(in.TenantID)
	if err != nil {
		return nil, err
	}
	professionalID, err := parseID(in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	clientID, err := parseID(in.ClientID)
	if err != nil {
		return nil, err
	}
	serviceID, err := parseID(in.ServiceID)
	if err != nil {
		return nil, err
	}

	start, discardedOffset, err := timezone.ParseLocal(in.Start)
	if err != nil {
		if errors.Is(err, timezone.ErrInvalidDateTime) {
			return nil, httperr.ErrBusiness(CodeInvalidDateTime)
		}
		return nil, err
	}
	if discardedOffset {
		uc.log.Warn("discarded non-local timezone offset on booking input",
			zap.String("start", in.Start),
			zap.String("tenant_id", in.TenantID),
		)
	}

	// --------------------------------------------------
	// 2. Referenced entities
	// --------------------------------------------------
	svc, err := loadService(ctx, uc.repo, tenantID, serviceID)
	if err != nil {
		return nil, err
	}

	prof, err := loadProfessional(ctx, uc.repo, tenantID, professionalID)
	if err != nil {
		return nil, err
	}

	if err := checkLink(ctx, uc.repo, professionalID, serviceID); err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	// --------------------------------------------------
	// 3. Working hours
	// --------------------------------------------------
	if err := checkWithinHours(ctx, uc.repo, prof, start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Conflict check + insert, one atomic unit
	// --------------------------------------------------
	var created *models.Appointment

	err = uc.repo.WithProfessionalLock(ctx, professionalID, func(tx domain.Repository) error {
		conflicts, err := tx.CountConflicts(ctx, professionalID, start, end, nil)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return httperr.ErrBusiness(CodeTimeConflict)
		}

		ap := &models.Appointment{
			TenantID:       tenantID,
			ProfessionalID: professionalID,
			ClientID:       clientID,
			ServiceID:      serviceID,
			StartTime:      start,
			EndTime:        end,
			Status:         string(domain.InitialStatus()),
			SyncStatus:     string(domain.SyncPending),
			Notes:          in.Notes,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. After commit: async sync, cache invalidation
	// --------------------------------------------------
	uc.dispatcher.Dispatch(extsync.Event{
		Type:          extsync.EventCreated,
		AppointmentID: created.ID,
		TenantID:      tenantID,
	})

	uc.cache.Invalidate(ctx, professionalID, localDate(start))

	return created, nil
}
