package history

import (
	"context"
	"testing"
	"time"

	"mastoride/internal/models"
	"mastoride/internal/notify"
	"mastoride/internal/session"
	"mastoride/internal/store"
	"mastoride/pkg/logger"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryKV())
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: "stderr"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	svc := NewService(st, notify.NewNotifier(nil, log), log)
	return svc, st
}

func testSession() *session.Session {
	return &session.Session{UserID: "u1", Name: "Test Rider", Email: "rider@pfw.edu", Role: "user"}
}

func draftFor(date string) *models.RideDraft {
	return &models.RideDraft{
		Pickup:      "Walb Student Union",
		Dropoff:     "Helmke Library",
		Date:        date,
		Time:        "14:30",
		Passengers:  1,
		VehicleType: models.VehicleTypeEconomy,
	}
}

func TestRecordCompletedRidePrepends(t *testing.T) {
	svc, _ := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	first, err := svc.RecordCompletedRide(ctx, sess, draftFor("2026-08-01"), "10.00")
	if err != nil {
		t.Fatalf("RecordCompletedRide: %v", err)
	}
	second, err := svc.RecordCompletedRide(ctx, sess, draftFor("2026-08-02"), "12.00")
	if err != nil {
		t.Fatalf("RecordCompletedRide: %v", err)
	}

	list, err := svc.List(ctx, sess, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d entries, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Error("newest booking should come first")
	}
	if list[0].Status != models.BookingStatusCompleted {
		t.Errorf("status = %q, want completed", list[0].Status)
	}
}

func TestFirstRideBadgeEarnedOnce(t *testing.T) {
	svc, st := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	if _, err := svc.RecordCompletedRide(ctx, sess, draftFor("2026-08-01"), "10.00"); err != nil {
		t.Fatalf("RecordCompletedRide: %v", err)
	}

	badges, err := st.GetAvailableBadges(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("GetAvailableBadges: %v", err)
	}
	for _, b := range badges {
		if b.ID == models.BadgeFirstRide && !b.Earned {
			t.Error("first-ride badge should be earned after the first booking")
		}
	}

	if _, err := svc.RecordCompletedRide(ctx, sess, draftFor("2026-08-02"), "12.00"); err != nil {
		t.Fatalf("RecordCompletedRide: %v", err)
	}
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for _, tc := range []struct {
		date string
		fare string
	}{
		{"2026-08-10", "30.00"},
		{"2026-08-20", "10.00"},
		{"2026-02-05", "20.00"},
		{"2025-12-25", "40.00"},
	} {
		if _, err := svc.RecordCompletedRide(ctx, sess, draftFor(tc.date), tc.fare); err != nil {
			t.Fatalf("RecordCompletedRide: %v", err)
		}
	}

	tests := []struct {
		name string
		opts ListOptions
		want int
	}{
		{"all", ListOptions{Period: "all"}, 4},
		{"this month", ListOptions{Period: "month"}, 2},
		{"this year", ListOptions{Period: "year"}, 3},
		{"completed status", ListOptions{Status: "completed"}, 4},
		{"cancelled status", ListOptions{Status: "cancelled"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.List(ctx, sess, tt.opts)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != tt.want {
				t.Errorf("got %d entries, want %d", len(list), tt.want)
			}
		})
	}
}

func TestListSortByPrice(t *testing.T) {
	svc, _ := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	for _, fare := range []string{"15.00", "45.00", "25.00"} {
		if _, err := svc.RecordCompletedRide(ctx, sess, draftFor("2026-08-01"), fare); err != nil {
			t.Fatalf("RecordCompletedRide: %v", err)
		}
	}

	high, err := svc.List(ctx, sess, ListOptions{Sort: "price-high"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if high[0].Fare != "45.00" || high[2].Fare != "15.00" {
		t.Errorf("price-high order = [%s %s %s]", high[0].Fare, high[1].Fare, high[2].Fare)
	}

	low, err := svc.List(ctx, sess, ListOptions{Sort: "price-low"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if low[0].Fare != "15.00" || low[2].Fare != "45.00" {
		t.Errorf("price-low order = [%s %s %s]", low[0].Fare, low[1].Fare, low[2].Fare)
	}
}

func TestTotalSpent(t *testing.T) {
	svc, _ := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	for _, fare := range []string{"10.50", "9.25"} {
		if _, err := svc.RecordCompletedRide(ctx, sess, draftFor("2026-08-01"), fare); err != nil {
			t.Fatalf("RecordCompletedRide: %v", err)
		}
	}

	total, err := svc.TotalSpent(ctx, sess)
	if err != nil {
		t.Fatalf("TotalSpent: %v", err)
	}
	if total != "19.75" {
		t.Errorf("total = %q, want %q", total, "19.75")
	}
}

func TestUseBadgeMovesAndIsIdempotent(t *testing.T) {
	svc, st := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	// "welcome" starts earned; spend it.
	if err := svc.UseBadge(ctx, sess, "welcome"); err != nil {
		t.Fatalf("UseBadge: %v", err)
	}

	available, used, err := svc.Badges(ctx, sess)
	if err != nil {
		t.Fatalf("Badges: %v", err)
	}
	for _, b := range available {
		if b.ID == "welcome" {
			t.Error("welcome badge should have left the available collection")
		}
	}
	if len(used) != 1 || used[0].ID != "welcome" {
		t.Fatalf("used = %+v, want the welcome badge", used)
	}

	// Spending it again, or spending unknown/unearned badges, changes nothing.
	for _, id := range []string{"welcome", "night-owl", "no-such-badge"} {
		if err := svc.UseBadge(ctx, sess, id); err != nil {
			t.Fatalf("UseBadge(%q): %v", id, err)
		}
	}

	used, err = st.GetUsedBadges(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("GetUsedBadges: %v", err)
	}
	if len(used) != 1 {
		t.Errorf("used count = %d, want 1", len(used))
	}
}

func TestGrantBadgeIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	sess := testSession()
	ctx := context.Background()

	if err := svc.GrantBadge(ctx, sess, "early-bird"); err != nil {
		t.Fatalf("GrantBadge: %v", err)
	}
	if err := svc.GrantBadge(ctx, sess, "early-bird"); err != nil {
		t.Fatalf("GrantBadge repeat: %v", err)
	}

	available, _, err := svc.Badges(ctx, sess)
	if err != nil {
		t.Fatalf("Badges: %v", err)
	}
	earned := 0
	for _, b := range available {
		if b.ID == "early-bird" && b.Earned {
			earned++
		}
	}
	if earned != 1 {
		t.Errorf("early-bird earned entries = %d, want 1", earned)
	}
}
