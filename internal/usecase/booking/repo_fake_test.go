package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/agendalivre/salon-scheduler/internal/domain/booking"
	"github.com/agendalivre/salon-scheduler/internal/models"
)

// fakeRepo is an in-memory Repository. WithProfessionalLock serializes
// callers on one mutex, mirroring the per-professional row lock of the real
// implementation.
type fakeRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	tenants       map[uuid.UUID]*models.Tenant
	professionals map[uuid.UUID]*models.Professional
	services      map[uuid.UUID]*models.Service
	links         map[string]bool
	rules         []models.AvailabilityRule
	appointments  map[uuid.UUID]*models.Appointment

	conflictCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants:       make(map[uuid.UUID]*models.Tenant),
		professionals: make(map[uuid.UUID]*models.Professional),
		services:      make(map[uuid.UUID]*models.Service),
		links:         make(map[string]bool),
		appointments:  make(map[uuid.UUID]*models.Appointment),
	}
}

func linkKey(professionalID, serviceID uuid.UUID) string {
	return professionalID.String() + "|" + serviceID.String()
}

func (f *fakeRepo) GetTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tenants[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetProfessionalByID(ctx context.Context, id uuid.UUID) (*models.Professional, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.professionals[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) ProfessionalPerformsService(ctx context.Context, professionalID, serviceID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.links[linkKey(professionalID, serviceID)], nil
}

func (f *fakeRepo) ListRules(ctx context.Context, professionalID uuid.UUID, weekday int) ([]models.AvailabilityRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityRule
	for _, r := range f.rules {
		if r.ProfessionalID == professionalID && r.Weekday == weekday {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBusyAppointments(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.StartTime.Before(to) && from.Before(ap.EndTime) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ap, ok := f.appointments[id]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appointments, id)
	return nil
}

func (f *fakeRepo) CountConflicts(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflictCalls++

	var count int64
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if excludeID != nil && ap.ID == *excludeID {
			continue
		}
		if ap.StartTime.Before(end) && start.Before(ap.EndTime) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) WithProfessionalLock(ctx context.Context, professionalID uuid.UUID, fn func(tx domain.Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}

func (f *fakeRepo) SetSyncResult(ctx context.Context, id uuid.UUID, status domain.SyncStatus, calendarEventID, platformBookingID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ap, ok := f.appointments[id]; ok {
		ap.SyncStatus = string(status)
		if calendarEventID != nil {
			ap.CalendarEventID = calendarEventID
		}
		if platformBookingID != nil {
			ap.PlatformBookingID = platformBookingID
		}
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) conflictCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conflictCalls
}
