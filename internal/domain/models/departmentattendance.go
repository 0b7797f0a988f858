// internal/domain/models/departmentattendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DepartmentAttendance is the per-department projection of one event's
// attendance sheet.
//
// It is a derived, fully rebuildable view: at most one document per
// (department, event_id), replaced wholesale whenever attendance is
// (re-)submitted for the event and deleted when the event is deleted.
// It is never a source of truth.
type DepartmentAttendance struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Department string             `bson:"department" json:"department"`
	EventID    primitive.ObjectID `bson:"event_id" json:"event_id"`
	EventName  string             `bson:"event_name" json:"event_name"`
	Date       time.Time          `bson:"date" json:"date"`

	Students []DepartmentStudent `bson:"students" json:"students"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DepartmentStudent is one student's attendance entry within a
// department's record, with the team name carried over from the
// enclosing team in the event sheet.
type DepartmentStudent struct {
	Name      string `bson:"name" json:"name"`
	RollNo    string `bson:"roll_no" json:"roll_no"`
	TeamName  string `bson:"team_name" json:"team_name"`
	IsPresent bool   `bson:"is_present" json:"is_present"`
}
