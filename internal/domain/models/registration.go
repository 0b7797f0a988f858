// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status values for a registration.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Registration is one team submission by a student for an event.
//
// Exactly one document may exist per (event_id, student_id), and within
// an event no roll number may appear in two registrations' member lists.
// Both constraints are unique indexes on the collection, so concurrent
// submissions are settled by the storage layer rather than by
// application-level checks.
type Registration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID     primitive.ObjectID `bson:"event_id" json:"event_id"`
	StudentID   primitive.ObjectID `bson:"student_id" json:"student_id"`
	TeamName    string             `bson:"team_name" json:"team_name"`
	TeamMembers []TeamMember       `bson:"team_members" json:"team_members"`

	PaymentStatus string `bson:"payment_status" json:"payment_status"` // pending | completed
	// Receipt is a reference stamped when the payment transition commits.
	Receipt string `bson:"receipt,omitempty" json:"receipt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TeamMember is one member of a registered team.
type TeamMember struct {
	Name       string `bson:"name" json:"name"`
	RollNo     string `bson:"roll_no" json:"roll_no"`
	Department string `bson:"department" json:"department"`
}
