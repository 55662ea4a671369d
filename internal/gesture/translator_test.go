package gesture

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTranslator_HoldFiresExactlyOnce(t *testing.T) {
	var activations atomic.Int32
	tr := NewTranslator(Config{
		HoldThreshold: 1500 * time.Millisecond,
		OnActivate:    func() { activations.Add(1) },
	})

	// Thumbs up held continuously, one sample every 100ms, well past the
	// threshold. Exactly one activate must fire, not one per sample past
	// the threshold.
	start := time.Now()
	for i := 0; i <= 30; i++ {
		tr.ObserveHold(true, start.Add(time.Duration(i)*100*time.Millisecond))
	}

	if got := activations.Load(); got != 1 {
		t.Errorf("expected exactly 1 activation, got %d", got)
	}
}

func TestTranslator_HoldRearmsAfterRelease(t *testing.T) {
	var activations atomic.Int32
	tr := NewTranslator(Config{
		HoldThreshold: 1500 * time.Millisecond,
		OnActivate:    func() { activations.Add(1) },
	})

	start := time.Now()
	for i := 0; i <= 20; i++ {
		tr.ObserveHold(true, start.Add(time.Duration(i)*100*time.Millisecond))
	}
	if got := activations.Load(); got != 1 {
		t.Fatalf("expected 1 activation after first hold, got %d", got)
	}

	// Release, then hold again: the latch must clear and a second hold
	// must fire a second activate.
	release := start.Add(3 * time.Second)
	tr.ObserveHold(false, release)
	for i := 0; i <= 20; i++ {
		tr.ObserveHold(true, release.Add(time.Duration(i)*100*time.Millisecond))
	}

	if got := activations.Load(); got != 2 {
		t.Errorf("expected 2 activations after release and re-hold, got %d", got)
	}
}

func TestTranslator_HoldProgress(t *testing.T) {
	tr := NewTranslator(Config{HoldThreshold: 1500 * time.Millisecond})

	start := time.Now()
	if p := tr.HoldProgress(start); p != 0 {
		t.Errorf("expected progress 0 before hold, got %f", p)
	}

	tr.ObserveHold(true, start)

	// Monotonically non-decreasing while held.
	prev := 0.0
	for i := 1; i <= 14; i++ {
		now := start.Add(time.Duration(i) * 100 * time.Millisecond)
		tr.ObserveHold(true, now)
		p := tr.HoldProgress(now)
		if p < prev {
			t.Errorf("progress decreased from %f to %f at sample %d", prev, p, i)
		}
		if p < 0 || p > 1 {
			t.Errorf("progress %f out of [0,1] at sample %d", p, i)
		}
		prev = p
	}

	// Dropping the pose resets progress to exactly zero, no residue.
	drop := start.Add(1400 * time.Millisecond)
	tr.ObserveHold(false, drop)
	if p := tr.HoldProgress(drop); p != 0 {
		t.Errorf("expected progress exactly 0 after drop, got %f", p)
	}

	// A fresh hold starts over from zero.
	tr.ObserveHold(true, drop)
	if p := tr.HoldProgress(drop.Add(150 * time.Millisecond)); p > 0.2 {
		t.Errorf("expected fresh hold to restart near 0, got %f", p)
	}
}

func TestTranslator_HoldDropBeforeThreshold(t *testing.T) {
	var activations atomic.Int32
	tr := NewTranslator(Config{
		HoldThreshold: 1500 * time.Millisecond,
		OnActivate:    func() { activations.Add(1) },
	})

	start := time.Now()
	tr.ObserveHold(true, start)
	tr.ObserveHold(true, start.Add(700*time.Millisecond))
	tr.ObserveHold(false, start.Add(800*time.Millisecond))

	// Two further partial holds; none crosses the threshold on its own.
	tr.ObserveHold(true, start.Add(time.Second))
	tr.ObserveHold(true, start.Add(1900*time.Millisecond))
	tr.ObserveHold(false, start.Add(2*time.Second))

	if got := activations.Load(); got != 0 {
		t.Errorf("expected no activation from partial holds, got %d", got)
	}
}

func TestTranslator_HoldTimerBackstop(t *testing.T) {
	var activations atomic.Int32
	tr := NewTranslator(Config{
		HoldThreshold: 30 * time.Millisecond,
		OnActivate:    func() { activations.Add(1) },
	})

	// One sample starts the hold; no further samples arrive. The internal
	// timer must still complete the hold.
	tr.ObserveHold(true, time.Now())
	time.Sleep(120 * time.Millisecond)

	if got := activations.Load(); got != 1 {
		t.Errorf("expected timer to complete the hold, got %d activations", got)
	}
}

func TestTranslator_HoldTimerCancelledOnDrop(t *testing.T) {
	var activations atomic.Int32
	tr := NewTranslator(Config{
		HoldThreshold: 50 * time.Millisecond,
		OnActivate:    func() { activations.Add(1) },
	})

	now := time.Now()
	tr.ObserveHold(true, now)
	tr.ObserveHold(false, now.Add(10*time.Millisecond))

	// Sleep past the threshold: a stale timer firing here would be a bug.
	time.Sleep(150 * time.Millisecond)

	if got := activations.Load(); got != 0 {
		t.Errorf("expected cancelled hold timer not to fire, got %d activations", got)
	}
}

func TestTranslator_HoldTimerCancelledOnReset(t *testing.T) {
	var activations atomic.Int32
	tr := NewTranslator(Config{
		HoldThreshold: 50 * time.Millisecond,
		OnActivate:    func() { activations.Add(1) },
	})

	tr.ObserveHold(true, time.Now())
	tr.Reset() // hand left the frame

	time.Sleep(150 * time.Millisecond)

	if got := activations.Load(); got != 0 {
		t.Errorf("expected reset to cancel the hold timer, got %d activations", got)
	}
}

func TestTranslator_FlickFiresJump(t *testing.T) {
	var jumps atomic.Int32
	tr := NewTranslator(Config{
		FlickVelocity: 0.04,
		FlickCooldown: 500 * time.Millisecond,
		OnJump:        func() { jumps.Add(1) },
	})

	now := time.Now()
	tr.ObserveFlick(0.8, now) // first sample only seeds prevY
	tr.ObserveFlick(0.7, now.Add(50*time.Millisecond))

	if got := jumps.Load(); got != 1 {
		t.Errorf("expected 1 jump, got %d", got)
	}
}

func TestTranslator_FlickFirstSampleNeverFires(t *testing.T) {
	var jumps atomic.Int32
	tr := NewTranslator(Config{OnJump: func() { jumps.Add(1) }})

	tr.ObserveFlick(0.1, time.Now())

	if got := jumps.Load(); got != 0 {
		t.Errorf("expected no jump on first sample, got %d", got)
	}
}

func TestTranslator_FlickRateLimited(t *testing.T) {
	var jumps atomic.Int32
	tr := NewTranslator(Config{
		FlickVelocity: 0.04,
		FlickCooldown: 500 * time.Millisecond,
		OnJump:        func() { jumps.Add(1) },
	})

	// A single physical flick spikes velocity across several samples.
	// Within the cooldown window at most one jump may fire.
	now := time.Now()
	tr.ObserveFlick(0.9, now)
	tr.ObserveFlick(0.8, now.Add(50*time.Millisecond))
	tr.ObserveFlick(0.7, now.Add(100*time.Millisecond))
	tr.ObserveFlick(0.6, now.Add(150*time.Millisecond))

	if got := jumps.Load(); got != 1 {
		t.Errorf("expected at most 1 jump within cooldown, got %d", got)
	}

	// After the cooldown a new flick fires again.
	later := now.Add(700 * time.Millisecond)
	tr.ObserveFlick(0.5, later)

	if got := jumps.Load(); got != 2 {
		t.Errorf("expected second jump after cooldown, got %d", got)
	}
}

func TestTranslator_FlickBlockedWhileAirborne(t *testing.T) {
	var jumps atomic.Int32
	airborne := true
	tr := NewTranslator(Config{
		FlickVelocity: 0.04,
		FlickCooldown: 500 * time.Millisecond,
		OnJump:        func() { jumps.Add(1) },
		Airborne:      func() bool { return airborne },
	})

	now := time.Now()
	tr.ObserveFlick(0.9, now)
	tr.ObserveFlick(0.7, now.Add(50*time.Millisecond))

	if got := jumps.Load(); got != 0 {
		t.Errorf("expected no jump while airborne, got %d", got)
	}

	// Grounded again: prevY must have kept updating through the blocked
	// samples, so the next upward step fires.
	airborne = false
	tr.ObserveFlick(0.6, now.Add(100*time.Millisecond))

	if got := jumps.Load(); got != 1 {
		t.Errorf("expected jump once grounded, got %d", got)
	}
}

func TestTranslator_FlickDownwardMotionIgnored(t *testing.T) {
	var jumps atomic.Int32
	tr := NewTranslator(Config{OnJump: func() { jumps.Add(1) }})

	now := time.Now()
	tr.ObserveFlick(0.3, now)
	tr.ObserveFlick(0.6, now.Add(50*time.Millisecond))
	tr.ObserveFlick(0.9, now.Add(100*time.Millisecond))

	if got := jumps.Load(); got != 0 {
		t.Errorf("expected no jump from downward motion, got %d", got)
	}
}

func TestTranslator_ResetClearsFlickState(t *testing.T) {
	var jumps atomic.Int32
	tr := NewTranslator(Config{
		FlickVelocity: 0.04,
		OnJump:        func() { jumps.Add(1) },
	})

	now := time.Now()
	tr.ObserveFlick(0.9, now)
	tr.Reset() // hand left the frame

	// After a reset the first sample seeds prevY again; a large apparent
	// jump from the stale pre-reset Y must not fire.
	tr.ObserveFlick(0.2, now.Add(50*time.Millisecond))

	if got := jumps.Load(); got != 0 {
		t.Errorf("expected no jump across a reset, got %d", got)
	}
}
