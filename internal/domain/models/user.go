// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Every authenticated principal is exactly one of these.
const (
	RoleStudent    = "student"
	RoleClub       = "club"
	RoleDepartment = "department"
)

// User represents students, clubs, and departments in a single collection.
//
// The shared envelope (id, email, role, name) is always present; the
// role-specific fields are populated only for the matching role, the way
// a discriminated document stores its variant payload. Authorization
// switches on Role rather than on document shape.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role" json:"role"` // student | club | department
	Name  string             `bson:"name" json:"name"`

	// Student fields.
	StudentID  string `bson:"student_id,omitempty" json:"student_id,omitempty"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`

	// Club fields.
	Category       string          `bson:"category,omitempty" json:"category,omitempty"`
	Description    string          `bson:"description,omitempty" json:"description,omitempty"`
	FacultyAdvisor *FacultyAdvisor `bson:"faculty_advisor,omitempty" json:"faculty_advisor,omitempty"`

	// Department fields. Code is the department's short code ("CSE", "ECE", …)
	// and is unique across department users.
	Code string          `bson:"code,omitempty" json:"code,omitempty"`
	Head *DepartmentHead `bson:"head,omitempty" json:"head,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FacultyAdvisor is the staff contact attached to a club profile.
type FacultyAdvisor struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// DepartmentHead is the head-of-department contact on a department profile.
type DepartmentHead struct {
	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
}
