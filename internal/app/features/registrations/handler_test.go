package registrations

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusconnect/campushub/internal/domain/models"
	"github.com/campusconnect/campushub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, zap.NewNop(), nil), testutil.NewFixtures(t, db)
}

func registerReq(eventID primitive.ObjectID, student *primitive.ObjectID, teamName string, members []models.TeamMember) *http.Request {
	body, _ := json.Marshal(registerRequest{TeamName: teamName, TeamMembers: members})
	req := httptest.NewRequest(http.MethodPost, "/registrations/"+eventID.Hex(), bytes.NewReader(body))
	req = testutil.WithChiURLParam(req, "eventId", eventID.Hex())
	if student != nil {
		req = testutil.WithPrincipal(req, testutil.StudentPrincipal(*student))
	}
	return req
}

func TestHandleRegister(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	event := fx.CreateEvent(ctx, club.ID, "Algo Sprint", time.Now().UTC().Add(48*time.Hour))

	members := testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
		[3]string{"Ravi", "EC007", "ECE"},
		[3]string{"Meera", "ME019", "MECH"},
	)
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &student.ID, "Heap Overflow", members))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var reg models.Registration
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reg.PaymentStatus != models.PaymentPending {
		t.Errorf("new registration must start pending, got %q", reg.PaymentStatus)
	}

	var stored models.Event
	if err := fx.DB().Collection("events").FindOne(ctx, bson.M{"_id": event.ID}).Decode(&stored); err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if stored.RegistrationsCount != 1 {
		t.Errorf("expected registrations counter 1, got %d", stored.RegistrationsCount)
	}
}

func TestHandleRegister_SmallerTeamAllowed(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	event := fx.CreateEvent(ctx, club.ID, "Algo Sprint", time.Now().UTC().Add(48*time.Hour))

	// Team size is a cap, not a quota: one member for a size-3 event.
	members := testutil.Members([3]string{"Asha", "CS001", "CSE"})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &student.ID, "Solo Run", members))

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201 for a smaller team, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRegister_TeamTooLarge(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	event := fx.CreateEvent(ctx, club.ID, "Algo Sprint", time.Now().UTC().Add(48*time.Hour))

	members := testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
		[3]string{"Ravi", "EC007", "ECE"},
		[3]string{"Meera", "ME019", "MECH"},
		[3]string{"Arjun", "ME062", "MECH"}, // event caps teams at 3
	)
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &student.ID, "Oversized", members))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRegister_OngoingEvent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	// Event on its own calendar day derives as ongoing.
	event := fx.CreateEvent(ctx, club.ID, "Today's Sprint", time.Now().UTC())

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &student.ID, "Too Late", testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
	)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for ongoing event, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRegister_StartedEvent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	event := fx.CreateStartedEvent(ctx, club.ID, "Live Sprint")

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &student.ID, "Latecomers", testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
	)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for started event, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRegister_DuplicateStudent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	event := fx.CreateEvent(ctx, club.ID, "Algo Sprint", time.Now().UTC().Add(48*time.Hour))

	first := testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
		[3]string{"Ravi", "EC007", "ECE"},
		[3]string{"Meera", "ME019", "MECH"},
	)
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &student.ID, "Team One", first))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first registration: expected 201, got %d", rec.Code)
	}

	second := testutil.Members(
		[3]string{"Kiran", "CS044", "CSE"},
		[3]string{"Divya", "EC051", "ECE"},
		[3]string{"Arjun", "ME062", "MECH"},
	)
	rec = httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &student.ID, "Team Two", second))

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for second team by same student, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRegister_DuplicateRollAcrossTeams(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	s1 := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	s2 := fx.CreateStudent(ctx, "Kiran", "kiran@campus.edu", "CS044", "CSE")
	event := fx.CreateEvent(ctx, club.ID, "Algo Sprint", time.Now().UTC().Add(48*time.Hour))

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &s1.ID, "Team One", testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
		[3]string{"Ravi", "EC007", "ECE"},
		[3]string{"Meera", "ME019", "MECH"},
	)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first registration: expected 201, got %d", rec.Code)
	}

	// Ravi (EC007) tries to appear on a second team for the same event.
	rec = httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &s2.ID, "Team Two", testutil.Members(
		[3]string{"Kiran", "CS044", "CSE"},
		[3]string{"Ravi", "EC007", "ECE"},
		[3]string{"Arjun", "ME062", "MECH"},
	)))

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for reused roll number, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRegister_CompletedEvent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	event := fx.CreateEvent(ctx, club.ID, "Last Year's Sprint", time.Now().UTC().Add(-72*time.Hour))

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, registerReq(event.ID, &student.ID, "Too Late", testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
		[3]string{"Ravi", "EC007", "ECE"},
		[3]string{"Meera", "ME019", "MECH"},
	)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for completed event, got %d: %s", rec.Code, rec.Body.String())
	}
}

func paymentReq(regID, clubID primitive.ObjectID, status string) *http.Request {
	body, _ := json.Marshal(paymentRequest{PaymentStatus: status})
	req := httptest.NewRequest(http.MethodPatch, "/registrations/"+regID.Hex()+"/payment", bytes.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", regID.Hex())
	return testutil.WithPrincipal(req, testutil.ClubPrincipal(clubID))
}

func TestHandleCompletePayment_ExactlyOnce(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	event := fx.CreateEvent(ctx, club.ID, "Algo Sprint", time.Now().UTC().Add(48*time.Hour))
	reg := fx.CreateRegistration(ctx, event.ID, student.ID, "Heap Overflow", testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
		[3]string{"Ravi", "EC007", "ECE"},
		[3]string{"Meera", "ME019", "MECH"},
	))

	// Confirm twice; the fee must be counted once.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.HandleCompletePayment(rec, paymentReq(reg.ID, club.ID, models.PaymentCompleted))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d: %s", i, rec.Code, rec.Body.String())
		}
		var got models.Registration
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got.PaymentStatus != models.PaymentCompleted {
			t.Errorf("attempt %d: expected completed, got %q", i, got.PaymentStatus)
		}
		if got.Receipt == "" {
			t.Errorf("attempt %d: expected a receipt", i)
		}
	}

	var stored models.Event
	if err := fx.DB().Collection("events").FindOne(ctx, bson.M{"_id": event.ID}).Decode(&stored); err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if stored.TotalFeesCollected != event.Fee {
		t.Errorf("expected fee counted once (%d), got %d", event.Fee, stored.TotalFeesCollected)
	}
}

func TestHandleCompletePayment_RevertRejected(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	event := fx.CreateEvent(ctx, club.ID, "Algo Sprint", time.Now().UTC().Add(48*time.Hour))
	reg := fx.CreateRegistration(ctx, event.ID, student.ID, "Heap Overflow", testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
		[3]string{"Ravi", "EC007", "ECE"},
		[3]string{"Meera", "ME019", "MECH"},
	))

	rec := httptest.NewRecorder()
	h.HandleCompletePayment(rec, paymentReq(reg.ID, club.ID, models.PaymentCompleted))
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleCompletePayment(rec, paymentReq(reg.ID, club.ID, models.PaymentPending))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for completed-to-pending, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCompletePayment_OtherClub(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateClub(ctx, "Owner Club", "owner@campus.edu")
	other := fx.CreateClub(ctx, "Other Club", "other@campus.edu")
	student := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	event := fx.CreateEvent(ctx, owner.ID, "Algo Sprint", time.Now().UTC().Add(48*time.Hour))
	reg := fx.CreateRegistration(ctx, event.ID, student.ID, "Heap Overflow", testutil.Members(
		[3]string{"Asha", "CS001", "CSE"},
		[3]string{"Ravi", "EC007", "ECE"},
		[3]string{"Meera", "ME019", "MECH"},
	))

	rec := httptest.NewRecorder()
	h.HandleCompletePayment(rec, paymentReq(reg.ID, other.ID, models.PaymentCompleted))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for another club's registration, got %d", rec.Code)
	}
}

func TestHandleListMyRegistrations(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	club := fx.CreateClub(ctx, "Coding Club", "coding@campus.edu")
	mine := fx.CreateStudent(ctx, "Asha", "asha@campus.edu", "CS001", "CSE")
	theirs := fx.CreateStudent(ctx, "Kiran", "kiran@campus.edu", "CS044", "CSE")
	event := fx.CreateEvent(ctx, club.ID, "Algo Sprint", time.Now().UTC().Add(48*time.Hour))

	fx.CreateRegistration(ctx, event.ID, mine.ID, "Mine", testutil.Members([3]string{"Asha", "CS001", "CSE"}))
	fx.CreateRegistration(ctx, event.ID, theirs.ID, "Theirs", testutil.Members([3]string{"Kiran", "CS044", "CSE"}))

	req := httptest.NewRequest(http.MethodGet, "/registrations/student", nil)
	req = testutil.WithPrincipal(req, testutil.StudentPrincipal(mine.ID))
	rec := httptest.NewRecorder()

	h.HandleListMyRegistrations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []models.Registration
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].TeamName != "Mine" {
		t.Errorf("expected only the caller's registration, got %+v", got)
	}
}
