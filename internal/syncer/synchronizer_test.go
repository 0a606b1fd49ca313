package syncer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mastoride/internal/models"
	"mastoride/internal/notify"
	"mastoride/internal/session"
	"mastoride/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: "stderr"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	return log
}

func completedBooking() *models.Booking {
	return &models.Booking{
		ID:          "local-1",
		Pickup:      "Walb Student Union",
		Dropoff:     "Helmke Library",
		Date:        "2026-09-01",
		Time:        "14:30",
		Passengers:  2,
		VehicleType: models.VehicleTypeEconomy,
		Fare:        "19.25",
		Status:      models.BookingStatusCompleted,
		CreatedAt:   time.Now(),
	}
}

func riderSession() *session.Session {
	return &session.Session{UserID: "u1", Name: "Test Rider", Email: "rider@pfw.edu", Role: "user"}
}

func TestSyncCreatesThenCompletes(t *testing.T) {
	var createBody models.BookingCreateRequest
	var updateBody models.BookingUpdateRequest
	var updatePath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/admin/users":
			if err := json.NewDecoder(r.Body).Decode(&createBody); err != nil {
				t.Errorf("decode create body: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"booking": map[string]string{"_id": "remote-42"},
			})
		case r.Method == http.MethodPut:
			updatePath = r.URL.Path
			if err := json.NewDecoder(r.Body).Decode(&updateBody); err != nil {
				t.Errorf("decode update body: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]bool{"success": true})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	log := testLogger(t)
	s := New(server.URL, 5*time.Second, notify.NewNotifier(nil, log), log)

	if err := s.Sync(context.Background(), riderSession(), completedBooking()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if createBody.StudentEmail != "rider@pfw.edu" {
		t.Errorf("studentEmail = %q, want rider email", createBody.StudentEmail)
	}
	if createBody.EstimatedFare != "19.25" {
		t.Errorf("estimatedFare = %q, want %q", createBody.EstimatedFare, "19.25")
	}
	if updatePath != "/api/admin/users/remote-42" {
		t.Errorf("update path = %q, want remote id from create response", updatePath)
	}
	if updateBody.Status != models.BookingStatusCompleted {
		t.Errorf("update status = %q, want completed", updateBody.Status)
	}
	if updateBody.ActualFare != "19.25" || updateBody.PaymentStatus != "paid" {
		t.Errorf("update body = %+v, want actual fare and paid status", updateBody)
	}
}

func TestSyncSkipsIncompleteBooking(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	log := testLogger(t)
	s := New(server.URL, time.Second, notify.NewNotifier(nil, log), log)

	booking := completedBooking()
	booking.Dropoff = ""

	if err := s.Sync(context.Background(), riderSession(), booking); err == nil {
		t.Fatal("Sync should report missing fields")
	}
	if called {
		t.Error("upstream should not be contacted for an incomplete booking")
	}
}

func TestSyncFailureSurfacesSingleToast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	log := testLogger(t)
	notifier := notify.NewNotifier(nil, log)
	s := New(server.URL, time.Second, notifier, log)

	sess := riderSession()
	if err := s.Sync(context.Background(), sess, completedBooking()); err == nil {
		t.Fatal("Sync should fail when upstream errors")
	}

	toasts := notifier.Recent(sess.UserID)
	if len(toasts) != 1 {
		t.Fatalf("got %d toasts, want exactly 1", len(toasts))
	}
	if toasts[0].Level != notify.ToastError {
		t.Errorf("toast level = %q, want error", toasts[0].Level)
	}
}

func TestSyncFailureOnMissingRemoteID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"booking": map[string]string{}})
	}))
	defer server.Close()

	log := testLogger(t)
	s := New(server.URL, time.Second, notify.NewNotifier(nil, log), log)

	if err := s.Sync(context.Background(), riderSession(), completedBooking()); err == nil {
		t.Fatal("Sync should fail when create response has no id")
	}
}
