package types

import "time"

// Identity is one enrolled person.  ID is the recognition label; ExternalID
// is the human-assigned roll/badge number and is unique across the table.
type Identity struct {
	ID          int64
	ExternalID  string
	DisplayName string
	EnrolledAt  time.Time
}

type Status string

const StatusPresent Status = "Present"

// AttendanceRecord is one durable presence event.  At most one exists per
// (IdentityID, Day); it is written once and never mutated.
type AttendanceRecord struct {
	IdentityID int64
	Day        string // YYYY-MM-DD
	Clock      string // HH:MM:SS
	Status     Status
	RecordedAt time.Time
}

// AttendanceRow is an attendance record joined with its identity, the shape
// the report and export surfaces consume.
type AttendanceRow struct {
	DisplayName string
	ExternalID  string
	Day         string
	Clock       string
	Status      Status
}

const (
	DayLayout   = "2006-01-02"
	ClockLayout = "15:04:05"
)

func DayOf(t time.Time) string { return t.Format(DayLayout) }

func ClockOf(t time.Time) string { return t.Format(ClockLayout) }
