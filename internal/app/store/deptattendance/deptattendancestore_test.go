package deptattendancestore

import (
	"testing"
	"time"

	"github.com/campusconnect/campushub/internal/domain/models"
	"github.com/campusconnect/campushub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleEvent() models.Event {
	return models.Event{
		ID:        primitive.NewObjectID(),
		EventName: "Algo Sprint",
		Date:      time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Attendance: []models.AttendanceTeam{
			{
				TeamName: "Heap Overflow",
				Members: []models.AttendanceMember{
					{Name: "Asha", RollNo: "CS001", Department: "CSE", IsPresent: true},
					{Name: "Ravi", RollNo: "EC007", Department: "ECE", IsPresent: false},
				},
			},
			{
				TeamName: "Stack Smash",
				Members: []models.AttendanceMember{
					{Name: "Kiran", RollNo: "CS044", Department: "CSE", IsPresent: true},
				},
			},
		},
	}
}

func TestBuildRecords(t *testing.T) {
	event := sampleEvent()
	records := BuildRecords(event)

	if len(records) != 2 {
		t.Fatalf("expected 2 department records, got %d", len(records))
	}

	// Departments keep first-appearance order.
	cse, ece := records[0], records[1]
	if cse.Department != "CSE" || ece.Department != "ECE" {
		t.Fatalf("unexpected department order: %s, %s", cse.Department, ece.Department)
	}
	for _, rec := range records {
		if rec.EventID != event.ID || rec.EventName != event.EventName || !rec.Date.Equal(event.Date) {
			t.Errorf("event fields not carried onto record: %+v", rec)
		}
	}

	if len(cse.Students) != 2 {
		t.Fatalf("expected 2 CSE students, got %d", len(cse.Students))
	}
	// Each student carries the name of the team they played on.
	if cse.Students[0].TeamName != "Heap Overflow" || cse.Students[1].TeamName != "Stack Smash" {
		t.Errorf("team names not resolved: %+v", cse.Students)
	}

	if len(ece.Students) != 1 || ece.Students[0].RollNo != "EC007" || ece.Students[0].IsPresent {
		t.Errorf("unexpected ECE students: %+v", ece.Students)
	}
}

func TestBuildRecords_EmptySheet(t *testing.T) {
	if got := BuildRecords(models.Event{ID: primitive.NewObjectID()}); len(got) != 0 {
		t.Errorf("expected no records for empty sheet, got %d", len(got))
	}
}

func TestUpsertForEvent_ReplacesWholesale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	event := sampleEvent()

	if err := store.UpsertForEvent(ctx, event); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// The club corrects the sheet: Ravi was present after all.
	event.Attendance[0].Members[1].IsPresent = true
	if err := store.UpsertForEvent(ctx, event); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	n, err := store.CountByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("CountByEvent: %v", err)
	}
	if n != 2 {
		t.Errorf("resubmission must not duplicate records, got %d", n)
	}

	records, err := store.ListByDepartment(ctx, "ECE")
	if err != nil {
		t.Fatalf("ListByDepartment: %v", err)
	}
	if len(records) != 1 || !records[0].Students[0].IsPresent {
		t.Errorf("record not replaced with corrected sheet: %+v", records)
	}
}

func TestUpsertForEvent_PreservesCreatedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	event := sampleEvent()

	if err := store.UpsertForEvent(ctx, event); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, err := store.ListByDepartment(ctx, "CSE")
	if err != nil {
		t.Fatalf("ListByDepartment: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if err := store.UpsertForEvent(ctx, event); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, err := store.ListByDepartment(ctx, "CSE")
	if err != nil {
		t.Fatalf("ListByDepartment: %v", err)
	}

	if !second[0].CreatedAt.Equal(first[0].CreatedAt) {
		t.Errorf("resubmission must keep created_at, got %v then %v",
			first[0].CreatedAt, second[0].CreatedAt)
	}
	if !second[0].UpdatedAt.After(first[0].UpdatedAt) {
		t.Errorf("resubmission must advance updated_at, got %v then %v",
			first[0].UpdatedAt, second[0].UpdatedAt)
	}
}

func TestUpsertForEvent_KeepsAbsentDepartments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	event := sampleEvent()

	if err := store.UpsertForEvent(ctx, event); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// ECE drops out of the corrected sheet. The aggregator never
	// deletes, so the stale ECE record survives until event deletion.
	event.Attendance[0].Members = event.Attendance[0].Members[:1]
	if err := store.UpsertForEvent(ctx, event); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	records, err := store.ListByDepartment(ctx, "ECE")
	if err != nil {
		t.Fatalf("ListByDepartment: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected stale ECE record to remain, got %d", len(records))
	}
}

func TestDeleteByEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	event := sampleEvent()
	other := sampleEvent()

	if err := store.UpsertForEvent(ctx, event); err != nil {
		t.Fatalf("upsert event: %v", err)
	}
	if err := store.UpsertForEvent(ctx, other); err != nil {
		t.Fatalf("upsert other: %v", err)
	}

	removed, err := store.DeleteByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("DeleteByEvent: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed records, got %d", removed)
	}

	n, err := store.CountByEvent(ctx, other.ID)
	if err != nil {
		t.Fatalf("CountByEvent: %v", err)
	}
	if n != 2 {
		t.Errorf("other event's records must survive, got %d", n)
	}
}

func TestListByDepartment_ListsRecordsWithoutEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	event := sampleEvent()
	if err := store.UpsertForEvent(ctx, event); err != nil {
		t.Fatalf("UpsertForEvent: %v", err)
	}

	// Records do not join against the events collection, so they stay
	// listed even when their source event no longer exists. A failed
	// delete sweep must therefore be surfaced, not silently dropped.
	records, err := store.ListByDepartment(ctx, "CSE")
	if err != nil {
		t.Fatalf("ListByDepartment: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record for a deleted event, got %d", len(records))
	}
	if records[0].EventID != event.ID {
		t.Errorf("expected record for event %s, got %s", event.ID.Hex(), records[0].EventID.Hex())
	}
}

func TestListByDepartment_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	older := sampleEvent()
	older.Date = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	newer := sampleEvent()
	newer.Date = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if err := store.UpsertForEvent(ctx, older); err != nil {
		t.Fatalf("upsert older: %v", err)
	}
	if err := store.UpsertForEvent(ctx, newer); err != nil {
		t.Fatalf("upsert newer: %v", err)
	}

	records, err := store.ListByDepartment(ctx, "CSE")
	if err != nil {
		t.Fatalf("ListByDepartment: %v", err)
	}
	if len(records) != 2 || !records[0].Date.After(records[1].Date) {
		t.Errorf("expected newest first, got %+v", records)
	}
}
