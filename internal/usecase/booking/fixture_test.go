package booking

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agendalivre/salon-scheduler/internal/extsync"
	"github.com/agendalivre/salon-scheduler/internal/models"
)

// 2024-03-18 is a Monday.
const (
	mondayDate    = "2024-03-18"
	mondayWeekday = 1
)

// fixture seeds one tenant with an active professional performing one 30-min
// service, working Mondays 09:00-12:00.
type fixture struct {
	repo       *fakeRepo
	dispatcher *extsync.Dispatcher

	tenant *models.Tenant
	prof   *models.Professional
	svc    *models.Service
}

func newFixture() *fixture {
	repo := newFakeRepo()

	tenant := &models.Tenant{
		ID:          uuid.New(),
		Name:        "Studio Aurora",
		Slug:        "studio-aurora",
		OwnerUserID: uuid.New(),
	}
	repo.tenants[tenant.ID] = tenant

	prof := &models.Professional{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		UserID:   tenant.OwnerUserID,
		Name:     "Marina",
		IsActive: true,
	}
	repo.professionals[prof.ID] = prof

	svc := &models.Service{
		ID:              uuid.New(),
		TenantID:        tenant.ID,
		Name:            "Corte",
		DurationMinutes: 30,
		IsActive:        true,
	}
	repo.services[svc.ID] = svc

	repo.links[linkKey(prof.ID, svc.ID)] = true

	repo.rules = append(repo.rules, models.AvailabilityRule{
		ID:             uuid.New(),
		ProfessionalID: prof.ID,
		Weekday:        mondayWeekday,
		StartTime:      "09:00",
		EndTime:        "12:00",
	})

	return &fixture{
		repo:       repo,
		dispatcher: extsync.NewDispatcher(repo, nil, zap.NewNop()),
		tenant:     tenant,
		prof:       prof,
		svc:        svc,
	}
}

func breakRule(f *fixture, start, end string) models.AvailabilityRule {
	return models.AvailabilityRule{
		ID:             uuid.New(),
		ProfessionalID: f.prof.ID,
		Weekday:        mondayWeekday,
		StartTime:      start,
		EndTime:        end,
		IsBreak:        true,
	}
}

func (f *fixture) addService(durationMinutes int) *models.Service {
	svc := &models.Service{
		ID:              uuid.New(),
		TenantID:        f.tenant.ID,
		Name:            "Extra",
		DurationMinutes: durationMinutes,
		IsActive:        true,
	}
	f.repo.services[svc.ID] = svc
	f.repo.links[linkKey(f.prof.ID, svc.ID)] = true
	return svc
}

func (f *fixture) addAppointment(start, end time.Time, status string) *models.Appointment {
	ap := &models.Appointment{
		ID:             uuid.New(),
		TenantID:       f.tenant.ID,
		ProfessionalID: f.prof.ID,
		ClientID:       uuid.New(),
		ServiceID:      f.svc.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         status,
		SyncStatus:     "pending",
	}
	f.repo.appointments[ap.ID] = ap
	return ap
}

func (f *fixture) createUC() *CreateBooking {
	return NewCreateBooking(f.repo, f.dispatcher, nil, zap.NewNop())
}

func (f *fixture) updateUC() *UpdateBooking {
	return NewUpdateBooking(f.repo, f.dispatcher, nil, zap.NewNop())
}

func (f *fixture) deleteUC() *DeleteBooking {
	return NewDeleteBooking(f.repo, f.dispatcher, nil, zap.NewNop())
}

func (f *fixture) listUC() *ListSlots {
	return NewListSlots(f.repo, nil, zap.NewNop())
}
