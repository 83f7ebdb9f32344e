package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalOverlaps(t *testing.T) {
	a := interval(t, "09:00", "10:00")

	tests := []struct {
		name string
		b    Interval
		want bool
	}{
		{"identical", interval(t, "09:00", "10:00"), true},
		{"contained", interval(t, "09:15", "09:45"), true},
		{"one minute at the start", interval(t, "08:30", "09:01"), true},
		{"one minute at the end", interval(t, "09:59", "10:30"), true},
		{"adjacent before", interval(t, "08:00", "09:00"), false},
		{"adjacent after", interval(t, "10:00", "11:00"), false},
		{"disjoint", interval(t, "11:00", "12:00"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(a))
		})
	}
}

func TestMergeSpans(t *testing.T) {
	t.Run("adjacent spans collapse", func(t *testing.T) {
		merged := MergeSpans([]Interval{
			interval(t, "13:00", "18:00"),
			interval(t, "09:00", "13:00"),
		})

		assert.Equal(t, []Interval{interval(t, "09:00", "18:00")}, merged)
	})

	t.Run("disjoint spans stay apart", func(t *testing.T) {
		merged := MergeSpans([]Interval{
			interval(t, "09:00", "12:00"),
			interval(t, "14:00", "18:00"),
		})

		assert.Len(t, merged, 2)
	})

	t.Run("contained span is absorbed", func(t *testing.T) {
		merged := MergeSpans([]Interval{
			interval(t, "09:00", "18:00"),
			interval(t, "10:00", "11:00"),
		})

		assert.Equal(t, []Interval{interval(t, "09:00", "18:00")}, merged)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, MergeSpans(nil))
	})
}

func TestContained(t *testing.T) {
	merged := MergeSpans([]Interval{
		interval(t, "09:00", "13:00"),
		interval(t, "13:00", "18:00"),
	})

	// crosses the seam of two adjacent rules
	assert.True(t, Contained(merged, interval(t, "12:30", "13:30")))

	assert.True(t, Contained(merged, interval(t, "09:00", "09:30")))
	assert.True(t, Contained(merged, interval(t, "17:30", "18:00")))
	assert.False(t, Contained(merged, interval(t, "08:45", "09:15")))
	assert.False(t, Contained(merged, interval(t, "17:45", "18:15")))
	assert.False(t, Contained(merged, interval(t, "19:00", "19:30")))
}

func TestOverlapsAny(t *testing.T) {
	breaks := []Interval{interval(t, "12:00", "13:00")}

	assert.True(t, OverlapsAny(breaks, interval(t, "12:30", "13:30")))
	assert.False(t, OverlapsAny(breaks, interval(t, "13:00", "14:00")))
	assert.False(t, OverlapsAny(nil, interval(t, "09:00", "10:00")))
}
