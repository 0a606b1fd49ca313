package geocode

import (
	"context"
	"sync"
	"time"
)

// Snapshot is the current state of the route preview: whatever has
// been resolved so far plus a notice when a lookup came up empty.
type Snapshot struct {
	Pickup  *Point `json:"pickup,omitempty"`
	Dropoff *Point `json:"dropoff,omitempty"`
	Notice  string `json:"notice,omitempty"`
	Pending bool   `json:"pending"`
}

const noticeNotFound = "Couldn't locate one or both places on the map."

// Preview geocodes the pickup and dropoff fields as the rider types.
// Input is debounced; each burst of edits produces at most one pair of
// lookups, and a newer burst cancels and supersedes an older in-flight
// one, so results never arrive out of order.
type Preview struct {
	provider Provider
	debounce time.Duration

	mu          sync.Mutex
	pickupText  string
	dropoffText string
	timer       *time.Timer
	generation  uint64
	cancel      context.CancelFunc
	snapshot    Snapshot
	closed      bool

	// lookupDone is signalled after each completed lookup pass.
	// Tests wait on it instead of sleeping.
	lookupDone chan struct{}
}

func NewPreview(provider Provider, debounce time.Duration) *Preview {
	return &Preview{
		provider:   provider,
		debounce:   debounce,
		lookupDone: make(chan struct{}, 1),
	}
}

// SetPickup records new pickup text and restarts the debounce window.
func (p *Preview) SetPickup(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pickupText = text
	p.scheduleLocked()
}

// SetDropoff records new dropoff text and restarts the debounce window.
func (p *Preview) SetDropoff(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dropoffText = text
	p.scheduleLocked()
}

func (p *Preview) scheduleLocked() {
	if p.closed {
		return
	}
	p.snapshot.Pending = true
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, p.fire)
}

// fire runs once the input has been quiet for the debounce window.
func (p *Preview) fire() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	p.generation++
	gen := p.generation

	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	pickupText := p.pickupText
	dropoffText := p.dropoffText
	p.mu.Unlock()

	// Lookups only make sense for a full route. With one end still
	// blank the preview stays clear and no notice is raised.
	if pickupText == "" || dropoffText == "" {
		p.publish(gen, Snapshot{})
		return
	}

	var (
		wg      sync.WaitGroup
		pickup  *Point
		dropoff *Point
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		pickup, _ = p.provider.Lookup(ctx, pickupText)
	}()
	go func() {
		defer wg.Done()
		dropoff, _ = p.provider.Lookup(ctx, dropoffText)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		return
	}

	snap := Snapshot{Pickup: pickup, Dropoff: dropoff}
	if pickup == nil || dropoff == nil {
		snap.Notice = noticeNotFound
	}
	p.publish(gen, snap)
}

// publish installs the snapshot unless a newer burst has started.
func (p *Preview) publish(gen uint64, snap Snapshot) {
	p.mu.Lock()
	if p.closed || gen != p.generation {
		p.mu.Unlock()
		return
	}
	p.snapshot = snap
	p.mu.Unlock()

	select {
	case p.lookupDone <- struct{}{}:
	default:
	}
}

// Snapshot returns the latest resolved state.
func (p *Preview) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Wait blocks until a lookup pass completes or the timeout elapses.
// It reports whether a pass completed.
func (p *Preview) Wait(timeout time.Duration) bool {
	select {
	case <-p.lookupDone:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Close stops the debounce timer and cancels any in-flight lookups.
func (p *Preview) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
	}
	if p.cancel != nil {
		p.cancel()
	}
}
