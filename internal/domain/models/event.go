// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event status values.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// Event is a club-owned event with its embedded attendance sheet.
//
// The attendance sheet is the source of truth for derived per-department
// records; it is replaced wholesale by the attendance workflow, never
// edited in place. RegistrationsCount and TotalFeesCollected are
// monotonic counters maintained with $inc and are best-effort statistics,
// not invariant-critical values.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID      primitive.ObjectID `bson:"club_id" json:"club_id"`
	EventName   string             `bson:"event_name" json:"event_name"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	TeamSize    int                `bson:"team_size" json:"team_size"`
	Fee         int64              `bson:"fee" json:"fee"`

	Status             string `bson:"status" json:"status"` // upcoming | ongoing | completed
	RegistrationsCount int64  `bson:"registrations_count" json:"registrations_count"`
	TotalFeesCollected int64  `bson:"total_fees_collected" json:"total_fees_collected"`
	IsStarted          bool   `bson:"is_started" json:"is_started"`

	Attendance []AttendanceTeam `bson:"attendance,omitempty" json:"attendance,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AttendanceTeam is one team's row in an event's attendance sheet.
type AttendanceTeam struct {
	RegistrationID primitive.ObjectID `bson:"registration_id,omitempty" json:"registration_id,omitempty"`
	TeamName       string             `bson:"team_name" json:"team_name"`
	Members        []AttendanceMember `bson:"members" json:"members"`
}

// AttendanceMember is one member's presence record inside a team.
type AttendanceMember struct {
	Name       string `bson:"name" json:"name"`
	RollNo     string `bson:"roll_no" json:"roll_no"`
	Department string `bson:"department" json:"department"`
	IsPresent  bool   `bson:"is_present" json:"is_present"`
}

// DeriveStatus returns the event's effective status at the given instant.
//
// A persisted "completed" is sticky: the attendance workflow is the only
// writer of that value and no date-based recomputation may undo it. A
// started event is ongoing regardless of its date (clubs may start up to
// a day early), until its day passes. For anything else the status is a
// pure function of the event date versus now's UTC calendar day: past
// days are completed, the same day is ongoing, future days are upcoming.
func (e Event) DeriveStatus(now time.Time) string {
	if e.Status == StatusCompleted {
		return StatusCompleted
	}
	day := now.UTC().Truncate(24 * time.Hour)
	eventDay := e.Date.UTC().Truncate(24 * time.Hour)
	switch {
	case eventDay.Before(day):
		return StatusCompleted
	case e.IsStarted:
		return StatusOngoing
	case eventDay.Equal(day):
		return StatusOngoing
	default:
		return StatusUpcoming
	}
}

// WithDerivedStatus returns a copy of the event with Status recomputed
// for the given instant. Stores apply it on every read path that does
// not go through the attendance workflow.
func (e Event) WithDerivedStatus(now time.Time) Event {
	e.Status = e.DeriveStatus(now)
	return e
}
