package model

import "time"

type AttendanceStatus string

const (
	AttendanceStatusNotStarted AttendanceStatus = "not_started"
	AttendanceStatusWorking    AttendanceStatus = "working"
	AttendanceStatusBreak      AttendanceStatus = "break"
	AttendanceStatusFinished   AttendanceStatus = "finished"
)

// Report keys on AttendanceRecord.Reports.
const (
	ReportCheckIn  = "check_in"
	ReportCheckOut = "check_out"
)

// BreakInterval is one break period within a working day. End and
// DurationMinutes are set together, exactly once, when the user returns.
type BreakInterval struct {
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Note            string     `json:"note,omitempty"`
	ReturnNote      string     `json:"return_note,omitempty"`
}

// Open reports whether the break has not been closed yet.
func (b *BreakInterval) Open() bool { return b.End == nil }

// AttendanceRecord is one user's working day, keyed by (UserID, Date).
type AttendanceRecord struct {
	UserID            string            `json:"user_id"`
	Username          string            `json:"username"`
	Date              string            `json:"date"` // YYYY-MM-DD in the reference zone
	CheckIn           *time.Time        `json:"check_in,omitempty"`
	CheckOut          *time.Time        `json:"check_out,omitempty"`
	Breaks            []BreakInterval   `json:"breaks,omitempty"`
	TotalWorkHours    float64           `json:"total_work_hours,omitempty"`
	TotalBreakMinutes int               `json:"total_break_minutes,omitempty"`
	Reports           map[string]string `json:"reports,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Status derives the lifecycle state from the fields present, so a
// reloaded record can never disagree with its own timestamps.
func (r *AttendanceRecord) Status() AttendanceStatus {
	switch {
	case r == nil || r.CheckIn == nil:
		return AttendanceStatusNotStarted
	case r.CheckOut != nil:
		return AttendanceStatusFinished
	case r.OpenBreak() != nil:
		return AttendanceStatusBreak
	default:
		return AttendanceStatusWorking
	}
}

// OpenBreak returns the record's open break, or nil. At most one break
// may be open at any time.
func (r *AttendanceRecord) OpenBreak() *BreakInterval {
	for i := range r.Breaks {
		if r.Breaks[i].Open() {
			return &r.Breaks[i]
		}
	}
	return nil
}

// Clone returns a deep copy sharing no memory with the receiver, so a
// caller can read it after the owning lock is released.
func (r *AttendanceRecord) Clone() *AttendanceRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.CheckIn != nil {
		t := *r.CheckIn
		c.CheckIn = &t
	}
	if r.CheckOut != nil {
		t := *r.CheckOut
		c.CheckOut = &t
	}
	if r.Breaks != nil {
		c.Breaks = make([]BreakInterval, len(r.Breaks))
		copy(c.Breaks, r.Breaks)
		for i := range c.Breaks {
			if c.Breaks[i].End != nil {
				t := *c.Breaks[i].End
				c.Breaks[i].End = &t
			}
		}
	}
	if r.Reports != nil {
		c.Reports = make(map[string]string, len(r.Reports))
		for k, v := range r.Reports {
			c.Reports[k] = v
		}
	}
	return &c
}

type TransitionKind string

const (
	TransitionCheckIn    TransitionKind = "check_in"
	TransitionBreakStart TransitionKind = "break_start"
	TransitionBreakEnd   TransitionKind = "break_end"
	TransitionCheckOut   TransitionKind = "check_out"
)

// TransitionResult describes one applied state change. BreakMinutes is
// the length of the break closed by this transition (break end, or a
// check-out that auto-closed an open break).
type TransitionResult struct {
	Kind         TransitionKind
	Record       *AttendanceRecord
	At           time.Time
	Note         string
	BreakMinutes int
}
