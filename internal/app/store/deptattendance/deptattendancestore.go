// internal/app/store/deptattendance/deptattendancestore.go
package deptattendancestore

import (
	"context"
	"fmt"
	"time"

	"github.com/campusconnect/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("department_attendance")}
}

// BuildRecords fans an event's attendance sheet out into one record per
// department that appears in it. Departments keep the order of their
// first appearance in the sheet, and each student entry carries the
// team name of its enclosing team. Departments with no members in the
// sheet produce no record.
//
// This is a pure function over the event document: the materialized
// collection can always be rebuilt by re-running it.
func BuildRecords(event models.Event) []models.DepartmentAttendance {
	byDept := make(map[string]*models.DepartmentAttendance)
	var order []string

	for _, team := range event.Attendance {
		for _, member := range team.Members {
			rec, ok := byDept[member.Department]
			if !ok {
				rec = &models.DepartmentAttendance{
					Department: member.Department,
					EventID:    event.ID,
					EventName:  event.EventName,
					Date:       event.Date,
				}
				byDept[member.Department] = rec
				order = append(order, member.Department)
			}
			rec.Students = append(rec.Students, models.DepartmentStudent{
				Name:      member.Name,
				RollNo:    member.RollNo,
				TeamName:  team.TeamName,
				IsPresent: member.IsPresent,
			})
		}
	}

	out := make([]models.DepartmentAttendance, 0, len(order))
	for _, dept := range order {
		out = append(out, *byDept[dept])
	}
	return out
}

// UpsertForEvent materializes the event's per-department records.
//
// Each record is replaced wholesale, keyed by (department, event_id):
// a fresh aggregation always supersedes a prior one. Departments no
// longer present in the sheet keep their stale record — the aggregator
// only upserts, it never deletes (a documented inconsistency carried
// over deliberately; the full cleanup happens on event deletion).
func (s *Store) UpsertForEvent(ctx context.Context, event models.Event) error {
	now := time.Now().UTC()
	for _, rec := range BuildRecords(event) {
		filter := bson.M{"department": rec.Department, "event_id": rec.EventID}
		// created_at is written once; resubmissions replace everything
		// else but keep the original creation time.
		update := bson.M{
			"$set": bson.M{
				"department": rec.Department,
				"event_id":   rec.EventID,
				"event_name": rec.EventName,
				"date":       rec.Date,
				"students":   rec.Students,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		}
		_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("upsert department %s: %w", rec.Department, err)
		}
	}
	return nil
}

// DeleteByEvent cascades an event deletion over its derived records.
// Returns the number of records removed.
func (s *Store) DeleteByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByDepartment returns a department's materialized records, newest
// event first.
func (s *Store) ListByDepartment(ctx context.Context, departmentCode string) ([]models.DepartmentAttendance, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"department": departmentCode},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.DepartmentAttendance
	for cur.Next(ctx) {
		var rec models.DepartmentAttendance
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, cur.Err()
}

// CountByEvent returns how many department records reference an event.
func (s *Store) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"event_id": eventID})
}
