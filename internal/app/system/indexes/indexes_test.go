package indexes_test

import (
	"testing"

	"github.com/campusconnect/campushub/internal/app/system/indexes"
	"github.com/campusconnect/campushub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesUniquenessConstraints(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	checks := map[string][]string{
		"registrations":         {indexes.UniqEventStudent, indexes.UniqEventMemberRoll},
		"department_attendance": {indexes.UniqDepartmentEvent},
		"users":                 {indexes.UniqUserEmail, indexes.UniqDepartmentCode, indexes.UniqStudentRoll},
	}

	for coll, want := range checks {
		cur, err := db.Collection(coll).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("%s: list indexes failed: %v", coll, err)
		}
		names := map[string]bool{}
		for cur.Next(ctx) {
			var idx bson.M
			if err := cur.Decode(&idx); err != nil {
				continue
			}
			if name, ok := idx["name"].(string); ok {
				names[name] = true
			}
		}
		cur.Close(ctx)
		for _, n := range want {
			if !names[n] {
				t.Errorf("%s: missing index %q", coll, n)
			}
		}
	}
}
