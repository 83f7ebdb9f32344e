package booking

import "sort"

// MergeSpans collapses overlapping or adjacent instant spans into their union,
// sorted by start. Input is not mutated.
func MergeSpans(spans []Interval) []Interval {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Interval, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !s.Start.After(last.End) {
			if s.End.After(last.End) {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}

	return merged
}

// Contained reports whether target lies entirely inside one of the merged
// spans. Spans must already be merged so that a booking crossing two adjacent
// rules is still accepted.
func Contained(merged []Interval, target Interval) bool {
	for _, span := range merged {
		if !target.Start.Before(span.Start) && !target.End.After(span.End) {
			return true
		}
	}
	return false
}

// OverlapsAny reports whether target overlaps at least one of the spans.
func OverlapsAny(spans []Interval, target Interval) bool {
	for _, span := range spans {
		if target.Overlaps(span) {
			return true
		}
	}
	return false
}
