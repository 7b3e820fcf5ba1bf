package attendance

import "strings"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"
	StatusUnknown Status = "unknown"
)

// NormalizeStatus maps every spelling seen at the data-entry boundary onto a
// single Status. Both "تأخير" and "متأخر" mean late.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "present", "حاضر":
		return StatusPresent
	case "absent", "غائب":
		return StatusAbsent
	case "late", "تأخير", "متأخر":
		return StatusLate
	case "leave", "إجازة", "اجازة":
		return StatusLeave
	default:
		return StatusUnknown
	}
}

// IsPresent reports whether the day counts as worked. Late days are present days.
func (s Status) IsPresent() bool {
	return s == StatusPresent || s == StatusLate
}

// Label returns the Arabic label shown in the attendance sheet.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "حاضر"
	case StatusAbsent:
		return "غائب"
	case StatusLate:
		return "متأخر"
	case StatusLeave:
		return "إجازة"
	default:
		return "—"
	}
}
