package geocode

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// fakeProvider resolves from a fixed table and can stall on demand so
// tests can exercise cancellation.
type fakeProvider struct {
	points map[string]Point
	stall  map[string]time.Duration
	calls  atomic.Int64
}

func (f *fakeProvider) Lookup(ctx context.Context, query string) (*Point, error) {
	f.calls.Add(1)

	if delay, ok := f.stall[query]; ok {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if pt, ok := f.points[query]; ok {
		copied := pt
		return &copied, nil
	}
	return nil, nil
}

func campusProvider() *fakeProvider {
	return &fakeProvider{
		points: map[string]Point{
			"Walb Student Union": {Lat: 41.0661, Lng: -85.1103},
			"Helmke Library":     {Lat: 41.0645, Lng: -85.1089},
		},
		stall: map[string]time.Duration{},
	}
}

func TestPreviewResolvesBothEnds(t *testing.T) {
	p := NewPreview(campusProvider(), 10*time.Millisecond)
	defer p.Close()

	p.SetPickup("Walb Student Union")
	p.SetDropoff("Helmke Library")

	if !p.Wait(2 * time.Second) {
		t.Fatal("lookup never completed")
	}

	snap := p.Snapshot()
	if snap.Pickup == nil || snap.Dropoff == nil {
		t.Fatalf("snapshot = %+v, want both ends resolved", snap)
	}
	if snap.Pickup.Lat != 41.0661 {
		t.Errorf("pickup lat = %v, want 41.0661", snap.Pickup.Lat)
	}
	if snap.Notice != "" {
		t.Errorf("notice = %q, want empty", snap.Notice)
	}
}

func TestPreviewDebounceCoalesces(t *testing.T) {
	provider := campusProvider()
	p := NewPreview(provider, 50*time.Millisecond)
	defer p.Close()

	// Rapid keystrokes inside the debounce window fire one lookup pass.
	p.SetDropoff("Helmke Library")
	p.SetPickup("W")
	p.SetPickup("Wa")
	p.SetPickup("Walb Student Union")

	if !p.Wait(2 * time.Second) {
		t.Fatal("lookup never completed")
	}

	if got := provider.calls.Load(); got != 2 {
		t.Errorf("provider calls = %d, want 2 (one per end)", got)
	}
	if snap := p.Snapshot(); snap.Pickup == nil {
		t.Error("final keystroke should have resolved")
	}
}

func TestPreviewSingleFieldStaysClear(t *testing.T) {
	provider := campusProvider()
	p := NewPreview(provider, 10*time.Millisecond)
	defer p.Close()

	// Only one end typed so far: no lookup, no notice.
	p.SetPickup("Walb Student Union")

	if !p.Wait(2 * time.Second) {
		t.Fatal("pass never completed")
	}

	if got := provider.calls.Load(); got != 0 {
		t.Errorf("provider calls = %d, want 0", got)
	}
	snap := p.Snapshot()
	if snap.Pickup != nil || snap.Dropoff != nil || snap.Notice != "" {
		t.Errorf("snapshot = %+v, want clear with no notice", snap)
	}
}

func TestPreviewNoticeWhenUnresolved(t *testing.T) {
	p := NewPreview(campusProvider(), 10*time.Millisecond)
	defer p.Close()

	p.SetPickup("Walb Student Union")
	p.SetDropoff("Atlantis")

	if !p.Wait(2 * time.Second) {
		t.Fatal("lookup never completed")
	}

	snap := p.Snapshot()
	if snap.Dropoff != nil {
		t.Error("unknown place should not resolve")
	}
	if snap.Notice == "" {
		t.Error("unresolved lookup should set the notice")
	}
	if snap.Pickup == nil {
		t.Error("resolved end should still be present")
	}
}

func TestPreviewStaleLookupDiscarded(t *testing.T) {
	provider := campusProvider()
	provider.points["Old Pickup"] = Point{Lat: 1, Lng: 1}
	provider.stall["Old Pickup"] = 5 * time.Second

	p := NewPreview(provider, 10*time.Millisecond)
	defer p.Close()

	p.SetDropoff("Helmke Library")
	p.SetPickup("Old Pickup")
	time.Sleep(30 * time.Millisecond) // let the slow burst fire

	p.SetPickup("Walb Student Union")

	if !p.Wait(2 * time.Second) {
		t.Fatal("lookup never completed")
	}

	snap := p.Snapshot()
	if snap.Pickup == nil || snap.Pickup.Lat != 41.0661 {
		t.Fatalf("snapshot = %+v, want the newer lookup to win", snap)
	}
}

func TestPreviewClearsWhenEmpty(t *testing.T) {
	p := NewPreview(campusProvider(), 10*time.Millisecond)
	defer p.Close()

	p.SetPickup("Walb Student Union")
	p.SetDropoff("Helmke Library")
	if !p.Wait(2 * time.Second) {
		t.Fatal("lookup never completed")
	}
	if snap := p.Snapshot(); snap.Pickup == nil {
		t.Fatal("route should have resolved before clearing")
	}

	p.SetPickup("")
	if !p.Wait(2 * time.Second) {
		t.Fatal("clear pass never completed")
	}

	snap := p.Snapshot()
	if snap.Pickup != nil || snap.Dropoff != nil || snap.Notice != "" {
		t.Errorf("snapshot = %+v, want cleared", snap)
	}
}

func TestPreviewCloseStopsPendingWork(t *testing.T) {
	provider := campusProvider()
	provider.stall["Walb Student Union"] = 5 * time.Second

	p := NewPreview(provider, 10*time.Millisecond)
	p.SetPickup("Walb Student Union")
	p.SetDropoff("Helmke Library")
	time.Sleep(30 * time.Millisecond)
	p.Close()

	// A further edit after Close must not schedule anything.
	p.SetPickup("Helmke Library")
	if p.Wait(100 * time.Millisecond) {
		t.Error("no lookup should complete after Close")
	}
}
