package dateutil

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-hrms/internal/shared/apperror"
)

// OfficeLocation is the fixed office timezone (IST, UTC+5:30).
// Wall-clock inputs from clients are interpreted here before being
// stored as UTC instants.
var OfficeLocation = time.FixedZone("Asia/Kolkata", 5*3600+30*60)

var ErrInvalidDate = apperror.New(
	apperror.CodeInvalidInput,
	"invalid date, expected YYYY-MM-DD or DD-MM-YYYY",
	http.StatusBadRequest,
)

var ErrInvalidTime = apperror.New(
	apperror.CodeInvalidInput,
	"invalid time, expected HH:MM",
	http.StatusBadRequest,
)

// ParseDay parses a client-supplied date and normalizes it to UTC
// midnight. Accepted forms: YYYY-MM-DD, DD-MM-YYYY (disambiguated by
// which component exceeds 31), and full RFC3339 instants.
func ParseDay(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, ErrInvalidDate
	}

	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return Day(t), nil
	}

	parts := strings.Split(v, "-")
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidDate
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		nums[i] = n
	}

	var y, m, d int
	switch {
	case nums[0] > 31:
		y, m, d = nums[0], nums[1], nums[2]
	case nums[2] > 31:
		d, m, y = nums[0], nums[1], nums[2]
	default:
		return time.Time{}, ErrInvalidDate
	}

	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, ErrInvalidDate
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != time.Month(m) {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Day truncates an instant to its calendar date at UTC midnight.
// Every comparison and every stored date goes through this so overlap
// and uniqueness checks never diverge on time-of-day noise.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OfficeToday returns today's calendar date as seen from the office
// timezone, at UTC midnight.
func OfficeToday(now time.Time) time.Time {
	y, m, d := now.In(OfficeLocation).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CombineOfficeTime attaches an HH:MM wall-clock time in the office
// timezone to a calendar day and returns the UTC instant.
func CombineOfficeTime(day time.Time, clock string) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return time.Time{}, ErrInvalidTime
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil || hh < 0 || hh > 23 {
		return time.Time{}, ErrInvalidTime
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil || mm < 0 || mm > 59 {
		return time.Time{}, ErrInvalidTime
	}

	d := Day(day)
	local := time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, OfficeLocation)
	return local.UTC(), nil
}

// DaysInclusive counts the calendar days in [start, end], both ends
// included.
func DaysInclusive(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours()/24) + 1
}

// WeekdayName returns the weekday of a date as seen from the office
// timezone ("Monday".."Sunday"), matching how weekly-off rules are
// stored.
func WeekdayName(day time.Time) string {
	return Day(day).In(OfficeLocation).Weekday().String()
}

// FormatDay renders a date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return Day(t).Format("2006-01-02")
}
