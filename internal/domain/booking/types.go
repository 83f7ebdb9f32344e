package booking

import "time"

// WorkSpan is one open window of a professional's day, business-local.
type WorkSpan struct {
	Start string `json:"start"` // "HH:mm"
	End   string `json:"end"`
}

// Interval is a half-open [Start, End) instant range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open semantics: [a1,a2) and [b1,b2) overlap iff
// a1 < b2 && b1 < a2. An interval starting exactly at another's end is
// adjacent, not overlapping.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}
