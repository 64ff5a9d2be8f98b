package attendance

import "time"

// Status of a single student on a taken-attendance event.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"
)

// Valid reports whether the status is one of the supported values.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	default:
		return false
	}
}

const dayFormat = "2006-01-02"

type (
	// Attendee is one student's entry on a record.
	Attendee struct {
		StudentID string `json:"student_id"`
		Status    Status `json:"status"`
		Remark    string `json:"remark,omitempty"`
	}

	// Record is one taken-attendance event for a department on a calendar day.
	Record struct {
		ID         string     `json:"record_id"`
		Department string     `json:"department"`
		Date       time.Time  `json:"date"` // calendar day granularity
		Attendees  []Attendee `json:"attendees"`
	}

	// DayKey identifies one aggregate bucket. Aggregates are always keyed
	// by (date, department) so that an "all departments" query never
	// silently merges distinct departments into one bucket.
	DayKey struct {
		Date       string `json:"date"` // YYYY-MM-DD
		Department string `json:"department"`
	}

	// MonthKey identifies one month summary bucket.
	MonthKey struct {
		Month      string `json:"month"` // YYYY-MM
		Department string `json:"department"`
	}

	// DayAggregate holds the per-status tallies for one (date, department).
	// Present+Absent+Late+Excused == Total always.
	DayAggregate struct {
		Present int `json:"present"`
		Absent  int `json:"absent"`
		Late    int `json:"late"`
		Excused int `json:"excused"`
		Total   int `json:"total"`
	}
)

// DayKeyFor builds the aggregate key for a record's day and department.
func DayKeyFor(date time.Time, department string) DayKey {
	return DayKey{Date: date.UTC().Format(dayFormat), Department: department}
}

// MonthOf derives the month bucket a day key belongs to.
func (k DayKey) MonthOf() MonthKey {
	month := k.Date
	if len(month) >= 7 {
		month = month[:7]
	}
	return MonthKey{Month: month, Department: k.Department}
}

// PresentRate returns the fraction of attendees marked present or late,
// in [0, 1]. Late still means "in class" for attendance-rate purposes.
func (a DayAggregate) PresentRate() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Present+a.Late) / float64(a.Total)
}

func (a DayAggregate) add(other DayAggregate) DayAggregate {
	a.Present += other.Present
	a.Absent += other.Absent
	a.Late += other.Late
	a.Excused += other.Excused
	a.Total += other.Total
	return a
}
