package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/agendalivre/salon-scheduler/internal/domain/booking"
	"github.com/agendalivre/salon-scheduler/internal/models"
	"github.com/agendalivre/salon-scheduler/internal/timezone"
)

// resolveWorkSpans returns the professional's open work spans and break spans
// for a business-local weekday, both ordered by start.
//
// Primary source: availability rules (is_break=false rows are work, true rows
// are breaks). Fallback: when the professional has no rules at all, is the
// tenant's owning operator and the account is flagged single-operator, one
// span is synthesized from the tenant's weekly-hours map. The fallback exists
// for onboarding ergonomics only and never applies to multi-operator accounts.
//
// Empty results are a normal day off, not an error.
func resolveWorkSpans(
	ctx context.Context,
	repo domain.Repository,
	professional *models.Professional,
	weekday int,
) (work []domain.WorkSpan, breaks []domain.WorkSpan, err error) {

	rules, err := repo.ListRules(ctx, professional.ID, weekday)
	if err != nil {
		return nil, nil, err
	}

	if len(rules) == 0 {
		tenant, err := repo.GetTenantByID(ctx, professional.TenantID)
		if err != nil {
			return nil, nil, err
		}

		if tenant != nil && tenant.SingleOperator && professional.UserID == tenant.OwnerUserID {
			if wh, ok := tenant.WeeklyHours[weekday]; ok && wh.Start != "" && wh.End != "" {
				work = append(work, domain.WorkSpan{Start: wh.Start, End: wh.End})
			}
		}
		return work, nil, nil
	}

	for _, rule := range rules {
		span := domain.WorkSpan{Start: rule.StartTime, End: rule.EndTime}
		if rule.IsBreak {
			breaks = append(breaks, span)
		} else {
			work = append(work, span)
		}
	}

	// "HH:mm" sorts correctly as text
	sort.Slice(work, func(i, j int) bool { return work[i].Start < work[j].Start })
	sort.Slice(breaks, func(i, j int) bool { return breaks[i].Start < breaks[j].Start })

	return work, breaks, nil
}

// spansToIntervals anchors "HH:mm" spans on a business-local calendar day.
func spansToIntervals(spans []domain.WorkSpan, year int, month time.Month, day int) ([]domain.Interval, error) {
	intervals := make([]domain.Interval, 0, len(spans))
	for _, span := range spans {
		start, err := timezone.AtClock(year, month, day, span.Start)
		if err != nil {
			return nil, err
		}
		end, err := timezone.AtClock(year, month, day, span.End)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, domain.Interval{Start: start, End: end})
	}
	return intervals, nil
}
