package timezone

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The whole product operates in a single region with a fixed UTC-3 offset and
// no daylight saving. Every wall-clock value a caller sends is interpreted
// under this offset, whatever timezone marker the string carries.
var Location = time.FixedZone("UTC-3", -3*60*60)

var ErrInvalidDateTime = errors.New("invalid date/time")

// YYYY-MM-DDTHH:mm[:ss[.sss]] with an optional zone suffix.
var dateTimeRe = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2})(?::(\d{2})(?:\.(\d{1,3}))?)?(Z|[+-]\d{2}:?\d{2})?$`,
)

// ParseLocal converts a caller-supplied date/time string into the stored
// instant. Any zone suffix on the input is discarded, never honored: the
// digits are always reinterpreted as business-local wall-clock time. The
// second return reports that a non-local suffix was dropped, so callers can
// flag it for observability.
func ParseLocal(s string) (time.Time, bool, error) {
	m := dateTimeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false, ErrInvalidDateTime
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	sec := 0
	if m[6] != "" {
		sec, _ = strconv.Atoi(m[6])
	}

	nsec := 0
	if m[7] != "" {
		// pad "5" -> 500ms, "55" -> 550ms
		millis, _ := strconv.Atoi(m[7] + strings.Repeat("0", 3-len(m[7])))
		nsec = millis * int(time.Millisecond)
	}

	if month < 1 || month > 12 ||
		day < 1 || day > 31 ||
		hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false, ErrInvalidDateTime
	}

	suffix := m[8]
	discarded := suffix != "" && suffix != "-03:00" && suffix != "-0300"

	t := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, Location)
	return t, discarded, nil
}

// FromClock builds the stored instant for structured business-local components.
func FromClock(year int, month time.Month, day, hour, minute, sec int) time.Time {
	return time.Date(year, month, day, hour, minute, sec, 0, Location)
}

// AtClock anchors an "HH:mm" string on a business-local calendar day. Used to
// materialize availability-span boundaries.
func AtClock(year int, month time.Month, day int, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, Location), nil
}

// Clock decomposes an instant into business-local components.
func Clock(t time.Time) (year int, month time.Month, day, hour, minute, sec int) {
	lt := t.In(Location)
	year, month, day = lt.Date()
	hour, minute, sec = lt.Clock()
	return
}

// Weekday is the business-local weekday of an instant. A weekday taken from
// the UTC instant can be off by one day near midnight and must not be used.
func Weekday(t time.Time) time.Weekday {
	return t.In(Location).Weekday()
}

// HHMM renders an instant's business-local wall clock.
func HHMM(t time.Time) string {
	return t.In(Location).Format("15:04")
}

func Now() time.Time {
	return time.Now().In(Location)
}
