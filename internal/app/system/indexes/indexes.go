// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Index names for the uniqueness constraints the workflows rely on.
// Conflict classification after a duplicate-key error matches on these,
// so the names are part of the storage contract.
const (
	UniqEventStudent    = "uniq_registrations_event_student"
	UniqEventMemberRoll = "uniq_registrations_event_member_roll"
	UniqDepartmentEvent = "uniq_department_attendance_department_event"
	UniqUserEmail       = "uniq_users_email"
	UniqDepartmentCode  = "uniq_users_department_code"
	UniqStudentRoll     = "uniq_users_student_id"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "registrations: "+err.Error())
	}
	if err := ensureDepartmentAttendance(ctx, db); err != nil {
		problems = append(problems, "department_attendance: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(UniqUserEmail).SetUnique(true),
		},
		{
			// Department codes are unique among department users only;
			// student and club documents have no code field.
			Keys: bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetName(UniqDepartmentCode).SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "role", Value: "department"}}),
		},
		{
			Keys: bson.D{{Key: "student_id", Value: 1}},
			Options: options.Index().SetName(UniqStudentRoll).SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "role", Value: "student"}}),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("events"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "club_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_events_club_date"),
		},
		{
			// Backs the department attendance query over completed events.
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "attendance.members.department", Value: 1}},
			Options: options.Index().SetName("idx_events_status_attendance_department"),
		},
	})
}

func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("registrations"), []mongo.IndexModel{
		{
			// At most one registration per (event, student).
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "student_id", Value: 1}},
			Options: options.Index().SetName(UniqEventStudent).SetUnique(true),
		},
		{
			// A roll number may appear in at most one registration per
			// event, across all students' member lists. This is the
			// constraint that settles concurrent submissions.
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "team_members.roll_no", Value: 1}},
			Options: options.Index().SetName(UniqEventMemberRoll).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_registrations_student_created"),
		},
	})
}

func ensureDepartmentAttendance(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("department_attendance"), []mongo.IndexModel{
		{
			// One materialized record per (department, event).
			Keys:    bson.D{{Key: "department", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetName(UniqDepartmentEvent).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetName("idx_department_attendance_event"),
		},
	})
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with
// the same keys already exists under a different name or options.
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		existing, err := listIndexes(ctx, coll)
		if err != nil {
			zap.L().Warn("failed to list existing indexes",
				zap.String("collection", coll.Name()),
				zap.Error(err))
		}

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.String("took", time.Since(start).String()))
				continue
			}
			// Name or options differ: drop and recreate with the
			// desired definition.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			switch {
			case isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique:
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			case isOptionsConflictErr(err):
				errs = append(errs, fmt.Sprintf("%s(%s): options conflict: %v", coll.Name(), desiredName, err))
			default:
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}

		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing, cur.Err()
}
