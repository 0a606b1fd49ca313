package booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mastoride/internal/models"
	"mastoride/internal/notify"
	"mastoride/internal/session"
	"mastoride/internal/store"
	"mastoride/internal/utils"
	"mastoride/pkg/logger"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryKV())
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: "stderr"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	notifier := notify.NewNotifier(nil, log)
	return NewService(st, notifier, log), st
}

func testSession() *session.Session {
	return &session.Session{UserID: "u1", Name: "Test Rider", Email: "rider@pfw.edu", Role: "user"}
}

func completeDraftFields() map[string]interface{} {
	return map[string]interface{}{
		"pickup":  "Walb Student Union",
		"dropoff": "Helmke Library",
		"date":    "2026-09-01",
		"time":    "14:30",
	}
}

func TestUpdateDraftPersistsEveryChange(t *testing.T) {
	svc, st := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	_, err := svc.UpdateDraft(ctx, sess, map[string]interface{}{"pickup": "Walb Student Union"})
	if err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}

	draft, err := st.GetDraft(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}
	if draft.Pickup != "Walb Student Union" {
		t.Errorf("pickup = %q, want %q", draft.Pickup, "Walb Student Union")
	}
	if draft.Complete() {
		t.Error("partial draft should not be complete, but it was persisted anyway")
	}
}

func TestUpdateDraftCoercesPassengers(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int
	}{
		{"valid int", 3, 3},
		{"json number", float64(2), 2},
		{"numeric string", "4", 4},
		{"zero", 0, 1},
		{"negative", -2, 1},
		{"garbage string", "lots", 1},
		{"nil", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			draft, err := svc.UpdateDraft(context.Background(), testSession(), map[string]interface{}{"passengers": tt.value})
			if err != nil {
				t.Fatalf("UpdateDraft: %v", err)
			}
			if draft.Passengers != tt.want {
				t.Errorf("passengers = %d, want %d", draft.Passengers, tt.want)
			}
		})
	}
}

func TestUpdateDraftRejectsUnknownVehicleType(t *testing.T) {
	svc, _ := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	draft, err := svc.UpdateDraft(ctx, sess, map[string]interface{}{"vehicleType": "premium"})
	if err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	if draft.VehicleType != models.VehicleTypePremium {
		t.Fatalf("vehicleType = %q, want premium", draft.VehicleType)
	}

	draft, err = svc.UpdateDraft(ctx, sess, map[string]interface{}{"vehicleType": "helicopter"})
	if err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	if draft.VehicleType != models.VehicleTypePremium {
		t.Errorf("vehicleType = %q, invalid value should keep previous", draft.VehicleType)
	}
}

func TestEstimateFareIncompleteDraft(t *testing.T) {
	svc, _ := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	if _, err := svc.UpdateDraft(ctx, sess, map[string]interface{}{"pickup": "Walb Student Union"}); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}

	_, err := svc.EstimateFare(ctx, sess)
	var incomplete *IncompleteDraftError
	if !errors.As(err, &incomplete) {
		t.Fatalf("EstimateFare error = %v, want IncompleteDraftError", err)
	}
	for _, field := range []string{"dropoff", "date", "time"} {
		found := false
		for _, m := range incomplete.Missing {
			if m == field {
				found = true
			}
		}
		if !found {
			t.Errorf("missing fields %v should include %q", incomplete.Missing, field)
		}
	}
}

func TestEstimateFareRange(t *testing.T) {
	svc, _ := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	fields := completeDraftFields()
	fields["passengers"] = 2
	fields["vehicleType"] = "xl"
	if _, err := svc.UpdateDraft(ctx, sess, fields); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}

	// The distance component is random, so check the bounds instead of
	// an exact value. d in [1,10], 2 passengers, xl multiplier 1.8:
	// min (3.5+1*1.75)*2*1.8 = 18.90, max (3.5+10*1.75)*2*1.8 = 94.50.
	for i := 0; i < 50; i++ {
		estimate, err := svc.EstimateFare(ctx, sess)
		if err != nil {
			t.Fatalf("EstimateFare: %v", err)
		}
		if !estimate.Estimated {
			t.Fatal("estimate should be flagged as estimated")
		}
		if estimate.Distance < 1 || estimate.Distance > 10 {
			t.Fatalf("distance = %d, want within [1,10]", estimate.Distance)
		}
		fare := utils.ParseFare(estimate.Fare)
		if fare < 18.90 || fare > 94.50 {
			t.Fatalf("fare = %s, want within [18.90, 94.50]", estimate.Fare)
		}
		if !strings.Contains(estimate.Fare, ".") {
			t.Fatalf("fare %q should carry two decimal places", estimate.Fare)
		}
	}
}

func TestEstimateDefaultsPassengers(t *testing.T) {
	draft := models.NewRideDraft()
	draft.Pickup = "a"
	draft.Dropoff = "b"
	draft.Date = "2026-09-01"
	draft.Time = "08:00"
	draft.Passengers = 0

	estimate := Estimate(draft)
	fare := utils.ParseFare(estimate.Fare)
	// One passenger, economy: max is 3.5+10*1.75 = 21.00.
	if fare > 21.00 {
		t.Errorf("fare = %s exceeds single-passenger maximum", estimate.Fare)
	}
}

func TestClearDraft(t *testing.T) {
	svc, st := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	if _, err := svc.UpdateDraft(ctx, sess, completeDraftFields()); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	if err := svc.ClearDraft(ctx, sess); err != nil {
		t.Fatalf("ClearDraft: %v", err)
	}

	draft, err := st.GetDraft(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}
	if draft.Pickup != "" || draft.Passengers != 1 || draft.VehicleType != models.VehicleTypeEconomy {
		t.Errorf("cleared draft = %+v, want empty defaults", draft)
	}
}
