// internal/app/store/registrations/registrationstore.go
package registrationstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campusconnect/campushub/internal/app/system/indexes"
	"github.com/campusconnect/campushub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound = errors.New("registration not found")
	// ErrDuplicateRegistration: this student already registered for the event.
	ErrDuplicateRegistration = errors.New("student is already registered for this event")
	// ErrDuplicateRollNumber: a member roll number is already taken in
	// another registration for the same event.
	ErrDuplicateRollNumber = errors.New("duplicate roll numbers found in team members")
	// ErrInvalidTransition: payment may never move back from completed.
	ErrInvalidTransition = errors.New("payment status cannot move from completed back to pending")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("registrations")}
}

// Create inserts a registration with payment pending. Both uniqueness
// rules — one registration per (event, student), and per-event roll
// number exclusivity across all member lists — are settled by the
// collection's unique indexes, so two racing submissions resolve to
// exactly one winner regardless of arrival order. The violated index
// name tells us which rule fired.
func (s *Store) Create(ctx context.Context, reg models.Registration) (models.Registration, error) {
	now := time.Now().UTC()
	reg.ID = primitive.NewObjectID()
	reg.TeamName = strings.TrimSpace(reg.TeamName)
	reg.PaymentStatus = models.PaymentPending
	reg.Receipt = ""
	reg.CreatedAt = now
	reg.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, reg); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Registration{}, classifyDup(err)
		}
		return models.Registration{}, err
	}
	return reg, nil
}

// classifyDup maps a duplicate-key error to the uniqueness rule it
// violated. The driver surfaces the index name inside the error text;
// when it is missing we report the roll-number conflict, since the
// (event, student) pair was already checked by the workflow.
func classifyDup(err error) error {
	msg := err.Error()
	if strings.Contains(msg, indexes.UniqEventStudent) {
		return ErrDuplicateRegistration
	}
	if strings.Contains(msg, indexes.UniqEventMemberRoll) {
		return ErrDuplicateRollNumber
	}
	return ErrDuplicateRollNumber
}

// GetByID loads a registration.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Registration, error) {
	var reg models.Registration
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&reg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Registration{}, ErrNotFound
		}
		return models.Registration{}, err
	}
	return reg, nil
}

// ExistsForStudent reports whether (event, student) already has a
// registration. The unique index remains the authority; this check only
// lets the workflow return the friendlier conflict before attempting
// the insert.
func (s *Store) ExistsForStudent(ctx context.Context, eventID, studentID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"event_id": eventID, "student_id": studentID})
	return n > 0, err
}

// ListByEvent returns an event's registrations, newest first.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Registration, error) {
	return s.list(ctx, bson.M{"event_id": eventID})
}

// ListByStudent returns a student's registrations, newest first.
func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Registration, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Registration, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Registration
	for cur.Next(ctx) {
		var reg models.Registration
		if err := cur.Decode(&reg); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, cur.Err()
}

// CompletePayment moves the registration from pending to completed.
//
// The update filters on payment_status=pending, so the transition can
// commit at most once no matter how many times a club re-submits it:
// committed=true means this call won the transition and the event's fee
// accumulator should be bumped; committed=false with a nil error means
// the registration was already completed and nothing changed.
func (s *Store) CompletePayment(ctx context.Context, id primitive.ObjectID, receipt string) (models.Registration, bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "payment_status": models.PaymentPending},
		bson.M{"$set": bson.M{
			"payment_status": models.PaymentCompleted,
			"receipt":        receipt,
			"updated_at":     time.Now().UTC(),
		}})
	if err != nil {
		return models.Registration{}, false, err
	}

	reg, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Registration{}, false, err
	}
	return reg, res.ModifiedCount == 1, nil
}
