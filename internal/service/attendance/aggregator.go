package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lumiere-salon/salon-backend-go/internal/domain/attendance"
)

// NoValue is shown wherever a time or duration cannot be derived.
const NoValue = "—"

// ParseTimeToMinutes converts a time of day into minutes since midnight.
// Accepted forms are "HH:MM", "HH:MM:SS" and ISO timestamps containing "T",
// of which only the time-of-day part is used. Seconds are validated but
// dropped. ok is false for empty or malformed input.
func ParseTimeToMinutes(s string) (minutes int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[i+1:]
		// Drop zone designator and fractional seconds.
		if j := strings.IndexAny(s, "Z+-"); j >= 0 {
			s = s[:j]
		}
		if j := strings.IndexByte(s, '.'); j >= 0 {
			s = s[:j]
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	limits := []int{23, 59, 59}
	values := make([]int, len(parts))
	for i, p := range parts {
		if p == "" || len(p) > 2 || !isDigits(p) {
			return 0, false
		}
		v, err := strconv.Atoi(p)
		if err != nil || v > limits[i] {
			return 0, false
		}
		values[i] = v
	}

	return values[0]*60 + values[1], true
}

// isDigits reports whether s is made of ASCII digits only. strconv.Atoi
// alone would accept a sign.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ComputeWorkHours returns the decimal hours between check-in and check-out.
// A check-out earlier than the check-in is rejected; overnight shifts are not
// wrapped to the next day.
func ComputeWorkHours(checkIn, checkOut string) (float64, bool) {
	in, ok := ParseTimeToMinutes(checkIn)
	if !ok {
		return 0, false
	}
	out, ok := ParseTimeToMinutes(checkOut)
	if !ok {
		return 0, false
	}
	if out < in {
		return 0, false
	}
	return float64(out-in) / 60, true
}

// DisplayWorkHours is the single source of work hours for a record: the live
// check-in/check-out computation, else the stored WorkHours value.
func DisplayWorkHours(r attendance.Record) (float64, bool) {
	if h, ok := ComputeWorkHours(r.CheckInValue(), r.CheckOutValue()); ok {
		return h, true
	}
	return r.WorkHours.Float()
}

// LateMinutes returns the minutes an employee was late on a record.
// A positive stored value wins. Otherwise it is derived from the check-in
// and the scheduled start, only for late records.
func LateMinutes(r attendance.Record, scheduledStart string) int {
	if stored := r.LateMinutes.Int(); stored > 0 {
		return stored
	}
	if r.Status != attendance.StatusLate {
		return 0
	}
	in, ok := ParseTimeToMinutes(r.CheckInValue())
	if !ok {
		return 0
	}
	start, ok := ParseTimeToMinutes(scheduledStart)
	if !ok {
		return 0
	}
	if in <= start {
		return 0
	}
	return in - start
}

// FormatHours renders decimal hours as "H:MM".
func FormatHours(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return NoValue
	}
	sign := ""
	if hours < 0 {
		sign = "-"
		hours = -hours
	}
	h := math.Floor(hours)
	m := math.Round((hours - h) * 60)
	if m >= 60 {
		h++
		m -= 60
	}
	return fmt.Sprintf("%s%d:%02d", sign, int(h), int(m))
}

// FormatOptionalHours renders hours, or NoValue when they could not be derived.
func FormatOptionalHours(hours float64, ok bool) string {
	if !ok {
		return NoValue
	}
	return FormatHours(hours)
}
