package booking

import (
	"sort"
	"time"

	"github.com/agendalivre/salon-scheduler/internal/timezone"
)

// Candidate starts are aligned on a fixed grid from the span start.
const SlotStepMinutes = 15

// GenerateSlots enumerates valid "HH:mm" start times for a service of the
// given duration. spans are the day's open work windows already anchored as
// instants; busy holds everything the candidate may not overlap (existing
// appointments and break windows).
//
// A candidate [s, s+d) is accepted iff it ends inside its span, overlaps no
// busy interval (half-open test), and, when now is supplied because the
// caller asked about today, ends strictly after now.
//
// Results across spans are merged, deduplicated and sorted; overlapping
// source spans may produce the same start twice and dedup masks that.
func GenerateSlots(spans []Interval, busy []Interval, durationMinutes int, now *time.Time) []string {
	if durationMinutes <= 0 {
		return []string{}
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := SlotStepMinutes * time.Minute

	seen := make(map[string]bool)
	slots := []string{}

	for _, span := range spans {
		for cur := span.Start; !cur.Add(duration).After(span.End); cur = cur.Add(step) {
			candidate := Interval{Start: cur, End: cur.Add(duration)}

			if now != nil && !candidate.End.After(*now) {
				continue
			}

			conflict := false
			for _, b := range busy {
				if candidate.Overlaps(b) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			label := timezone.HHMM(cur)
			if !seen[label] {
				seen[label] = true
				slots = append(slots, label)
			}
		}
	}

	sort.Strings(slots)
	return slots
}
