package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/agendalivre/salon-scheduler/internal/cache"
	domain "github.com/agendalivre/salon-scheduler/internal/domain/booking"
	"github.com/agendalivre/salon-scheduler/internal/httperr"
	"github.com/agendalivre/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ListSlotsInput struct {
	ProfessionalID string
	ServiceID      string
	Date           string // "YYYY-MM-DD", business-local
}

// ======================================================
// USE CASE
// ======================================================

// ListSlots is the advisory read path: no lock is taken and a slot shown as
// free may be gone by the time Create runs. Create's own conflict check is
// authoritative.
type ListSlots struct {
	repo  domain.Repository
	cache *cache.SlotCache
	log   *zap.Logger
}

func NewListSlots(repo domain.Repository, slotCache *cache.SlotCache, log *zap.Logger) *ListSlots {
	return &ListSlots{repo: repo, cache: slotCache, log: log}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ListSlots) Execute(ctx context.Context, in ListSlotsInput) ([]string, error) {

	professionalID, err := parseID(in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	serviceID, err := parseID(in.ServiceID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(CodeInvalidDateTime)
	}
	year, month, day := date.Date()

	svc, err := uc.repo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, httperr.ErrBusiness(CodeServiceNotFound)
	}
	if !svc.IsActive || svc.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness(CodeServiceInactive)
	}

	prof, err := uc.repo.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, httperr.ErrBusiness(CodeProfessionalNotFound)
	}
	if !prof.IsActive {
		return nil, httperr.ErrBusiness(CodeProfessionalInactive)
	}

	if slots, ok := uc.cache.Get(ctx, professionalID, in.Date, svc.DurationMinutes); ok {
		return slots, nil
	}

	// weekday of the business-local calendar day, never of the UTC instant
	weekday := int(timezone.Weekday(timezone.FromClock(year, month, day, 0, 0, 0)))

	work, breaks, err := resolveWorkSpans(ctx, uc.repo, prof, weekday)
	if err != nil {
		return nil, err
	}
	if len(work) == 0 {
		return []string{}, nil
	}

	workIntervals, err := spansToIntervals(work, year, month, day)
	if err != nil {
		return nil, err
	}
	breakIntervals, err := spansToIntervals(breaks, year, month, day)
	if err != nil {
		return nil, err
	}

	// one query covering the whole day's span range
	rangeStart := workIntervals[0].Start
	rangeEnd := workIntervals[0].End
	for _, iv := range workIntervals[1:] {
		if iv.Start.Before(rangeStart) {
			rangeStart = iv.Start
		}
		if iv.End.After(rangeEnd) {
			rangeEnd = iv.End
		}
	}

	appointments, err := uc.repo.ListBusyAppointments(ctx, professionalID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(appointments)+len(breakIntervals))
	for _, ap := range appointments {
		busy = append(busy, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	busy = append(busy, breakIntervals...)

	var now *time.Time
	if n := timezone.Now(); localDate(n) == in.Date {
		now = &n
	}

	slots := domain.GenerateSlots(workIntervals, busy, svc.DurationMinutes, now)

	uc.cache.Set(ctx, professionalID, in.Date, svc.DurationMinutes, slots)

	return slots, nil
}
