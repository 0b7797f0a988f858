// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campusconnect/campushub/internal/app/system/paging"
	"github.com/campusconnect/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StartWindow is how far before the event date a club may start it.
const StartWindow = 24 * time.Hour

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound = errors.New("event not found")
	// ErrOutOfWindow: the event date is more than 24h away, or already past.
	ErrOutOfWindow = errors.New("event can only be started within 24 hours of the event date")
	// ErrNotStarted: attendance requires the event to have been started.
	ErrNotStarted = errors.New("event must be started before marking attendance")
	// ErrCompleted: the event has already been finalized.
	ErrCompleted = errors.New("event is already completed")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// Create inserts a new event owned by clubID. Counters start at zero and
// the status is derived from the event date.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.EventName = strings.TrimSpace(e.EventName)
	e.Status = e.DeriveStatus(now)
	e.RegistrationsCount = 0
	e.TotalFeesCollected = 0
	e.IsStarted = false
	e.Attendance = nil
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// GetByID loads an event and recomputes its status for now.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Event{}, ErrNotFound
		}
		return models.Event{}, err
	}
	return e.WithDerivedStatus(time.Now().UTC()), nil
}

// GetOwned loads an event only if clubID owns it. A mismatch reads the
// same as a missing event, which is what the API reports either way.
func (s *Store) GetOwned(ctx context.Context, id, clubID primitive.ObjectID) (models.Event, error) {
	var e models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id, "club_id": clubID}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Event{}, ErrNotFound
		}
		return models.Event{}, err
	}
	return e.WithDerivedStatus(time.Now().UTC()), nil
}

// ListPage returns one catalog page ordered by (date, _id), using the
// keyset cursors from the request. Statuses are derived on read.
func (s *Store) ListPage(ctx context.Context, before, after string) ([]models.Event, paging.Result, error) {
	cfg := paging.ConfigureKeyset(before, after)
	filter := bson.M{}
	if w := cfg.KeysetWindow("date"); w != nil {
		filter = w
	}
	find := options.Find()
	cfg.ApplyToFind(find, "date")

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, paging.Result{}, err
	}
	defer cur.Close(ctx)

	now := time.Now().UTC()
	var out []models.Event
	for cur.Next(ctx) {
		var e models.Event
		if err := cur.Decode(&e); err != nil {
			return nil, paging.Result{}, err
		}
		out = append(out, e.WithDerivedStatus(now))
	}
	if err := cur.Err(); err != nil {
		return nil, paging.Result{}, err
	}

	if cfg.Direction == paging.Backward {
		paging.Reverse(out)
	}
	res := paging.TrimPage(&out, before, after)
	return out, res, nil
}

// ListByClub returns a club's events ordered by date.
func (s *Store) ListByClub(ctx context.Context, clubID primitive.ObjectID) ([]models.Event, error) {
	return s.list(ctx, bson.M{"club_id": clubID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	now := time.Now().UTC()
	var out []models.Event
	for cur.Next(ctx) {
		var e models.Event
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e.WithDerivedStatus(now))
	}
	return out, cur.Err()
}

// UpdateInfo sets the mutable descriptive fields on an owned event.
func (s *Store) UpdateInfo(ctx context.Context, id, clubID primitive.ObjectID, name, description string, date time.Time, teamSize int, fee int64) (models.Event, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if strings.TrimSpace(name) != "" {
		set["event_name"] = strings.TrimSpace(name)
	}
	if description != "" {
		set["description"] = description
	}
	if !date.IsZero() {
		set["date"] = date.UTC()
	}
	if teamSize > 0 {
		set["team_size"] = teamSize
	}
	if fee >= 0 {
		set["fee"] = fee
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "club_id": clubID}, bson.M{"$set": set})
	if err != nil {
		return models.Event{}, err
	}
	if res.MatchedCount == 0 {
		return models.Event{}, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Start flips is_started inside the pre-event window.
//
// The window is 0 ≤ date − now ≤ 24h: an event further out cannot be
// started yet, and one whose date has passed cannot be started at all.
// Re-starting an already-started, not-yet-completed event is a no-op
// rather than an error, so a double-submitted start never corrupts state.
func (s *Store) Start(ctx context.Context, id, clubID primitive.ObjectID, now time.Time) (models.Event, error) {
	e, err := s.GetOwned(ctx, id, clubID)
	if err != nil {
		return models.Event{}, err
	}
	if e.Status == models.StatusCompleted {
		return models.Event{}, ErrCompleted
	}
	until := e.Date.Sub(now)
	if until < 0 || until > StartWindow {
		return models.Event{}, ErrOutOfWindow
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "club_id": clubID},
		bson.M{"$set": bson.M{
			"is_started": true,
			"status":     models.StatusOngoing,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return models.Event{}, err
	}
	if res.MatchedCount == 0 {
		return models.Event{}, ErrNotFound
	}
	e.IsStarted = true
	e.Status = models.StatusOngoing
	return e, nil
}

// ReplaceAttendance overwrites the event's attendance sheet wholesale
// and finalizes the status to completed. Completed is sticky from this
// point on; no date-based recomputation undoes it.
//
// The is_started filter rides along on the update so a concurrent state
// change between the read and the write cannot finalize an unstarted
// event.
func (s *Store) ReplaceAttendance(ctx context.Context, id, clubID primitive.ObjectID, sheet []models.AttendanceTeam) (models.Event, error) {
	e, err := s.GetOwned(ctx, id, clubID)
	if err != nil {
		return models.Event{}, err
	}
	if !e.IsStarted {
		return models.Event{}, ErrNotStarted
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "club_id": clubID, "is_started": true},
		bson.M{"$set": bson.M{
			"attendance": sheet,
			"status":     models.StatusCompleted,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return models.Event{}, err
	}
	if res.MatchedCount == 0 {
		return models.Event{}, ErrNotStarted
	}
	e.Attendance = sheet
	e.Status = models.StatusCompleted
	return e, nil
}

// IncRegistrations bumps the registration counter. The counter is a
// best-effort statistic: a failed increment after a committed insert is
// logged by the caller, never rolled back.
func (s *Store) IncRegistrations(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"registrations_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// AddFees accumulates a committed payment into total_fees_collected.
func (s *Store) AddFees(ctx context.Context, id primitive.ObjectID, amount int64) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"total_fees_collected": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// Delete removes an owned event and returns the deleted document so the
// caller can cascade over its derived records.
func (s *Store) Delete(ctx context.Context, id, clubID primitive.ObjectID) (models.Event, error) {
	var e models.Event
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "club_id": clubID}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Event{}, ErrNotFound
		}
		return models.Event{}, err
	}
	return e, nil
}

// ListCompletedForDepartment returns completed events whose attendance
// sheet contains at least one member of the department, newest first.
// Attendance only exists once the sheet is finalized, so the stored
// completed status is authoritative here.
func (s *Store) ListCompletedForDepartment(ctx context.Context, departmentCode string) ([]models.Event, error) {
	filter := bson.M{
		"status":                        models.StatusCompleted,
		"attendance.members.department": departmentCode,
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Event
	for cur.Next(ctx) {
		var e models.Event
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}
