package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/campusconnect/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateClub creates a club principal.
func (f *Fixtures) CreateClub(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.insertUser(models.User{
		Email:    email,
		Role:     models.RoleClub,
		Name:     name,
		Category: "technical",
	})
}

// CreateStudent creates a student principal with the given roll number
// and department code.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email, studentID, department string) models.User {
	f.t.Helper()
	return f.insertUser(models.User{
		Email:      email,
		Role:       models.RoleStudent,
		Name:       name,
		StudentID:  studentID,
		Department: department,
	})
}

// CreateDepartment creates a department principal with the given code.
func (f *Fixtures) CreateDepartment(ctx context.Context, name, email, code string) models.User {
	f.t.Helper()
	return f.insertUser(models.User{
		Email: email,
		Role:  models.RoleDepartment,
		Name:  name,
		Code:  code,
	})
}

func (f *Fixtures) insertUser(u models.User) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	ctx, cancel := TestContext()
	defer cancel()
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateEvent creates an event owned by clubID with the given date.
// Team size 3 and a fee of 100 match the common test scenarios.
func (f *Fixtures) CreateEvent(ctx context.Context, clubID primitive.ObjectID, name string, date time.Time) models.Event {
	f.t.Helper()
	now := time.Now().UTC()
	e := models.Event{
		ID:          primitive.NewObjectID(),
		ClubID:      clubID,
		EventName:   name,
		Description: "Test event description",
		Date:        date.UTC(),
		TeamSize:    3,
		Fee:         100,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	e.Status = e.DeriveStatus(now)
	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return e
}

// CreateStartedEvent creates an event that has been started today, so
// attendance can be marked on it.
func (f *Fixtures) CreateStartedEvent(ctx context.Context, clubID primitive.ObjectID, name string) models.Event {
	f.t.Helper()
	e := f.CreateEvent(ctx, clubID, name, time.Now().UTC().Add(2*time.Hour))
	e.IsStarted = true
	e.Status = models.StatusOngoing
	if _, err := f.db.Collection("events").ReplaceOne(ctx, map[string]any{"_id": e.ID}, e); err != nil {
		f.t.Fatalf("failed to start test event: %v", err)
	}
	return e
}

// CreateRegistration creates a pending registration for the event.
func (f *Fixtures) CreateRegistration(ctx context.Context, eventID, studentID primitive.ObjectID, teamName string, members []models.TeamMember) models.Registration {
	f.t.Helper()
	now := time.Now().UTC()
	reg := models.Registration{
		ID:            primitive.NewObjectID(),
		EventID:       eventID,
		StudentID:     studentID,
		TeamName:      teamName,
		TeamMembers:   members,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("registrations").InsertOne(ctx, reg); err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}
	return reg
}

// Members builds a member list from (name, roll, department) triples.
func Members(triples ...[3]string) []models.TeamMember {
	out := make([]models.TeamMember, 0, len(triples))
	for _, tr := range triples {
		out = append(out, models.TeamMember{Name: tr[0], RollNo: tr[1], Department: tr[2]})
	}
	return out
}
