package gesture

import (
	"sync"
	"time"
)

// Translator timing and threshold defaults.
const (
	// DefaultHoldThreshold is how long a thumbs up must be held before it
	// fires an activate command.
	DefaultHoldThreshold = 1500 * time.Millisecond
	// DefaultFlickVelocity is the minimum upward thumb-tip velocity, in
	// normalized frame units per sample, for a flick to register.
	DefaultFlickVelocity = 0.04
	// DefaultFlickCooldown is the minimum time between two fired flicks.
	// A single flick spikes the velocity across several inference frames;
	// without the cooldown one flick would fire several jumps.
	DefaultFlickCooldown = 500 * time.Millisecond
)

// Config holds configuration and wiring for a Translator.
type Config struct {
	HoldThreshold time.Duration
	FlickVelocity float64
	FlickCooldown time.Duration

	// OnActivate is called when a thumbs up hold completes.
	OnActivate func()
	// OnJump is called when a flick fires.
	OnJump func()
	// Airborne reports whether the player is currently airborne. A flick
	// never fires while airborne. Nil means never airborne.
	Airborne func() bool
}

// Translator converts recognizer outputs into discrete commands with
// debouncing. It is safe for concurrent use; the hold timer fires from its
// own goroutine.
type Translator struct {
	cfg Config

	mu        sync.Mutex
	holdStart time.Time // zero when no hold is in progress
	holdFired bool      // latched until the pose is released
	holdTimer *time.Timer
	prevY     float64
	hasPrevY  bool
	lastFlick time.Time // zero until the first flick fires
}

// NewTranslator creates a Translator with defaults applied for any zero
// config fields.
func NewTranslator(cfg Config) *Translator {
	if cfg.HoldThreshold <= 0 {
		cfg.HoldThreshold = DefaultHoldThreshold
	}
	if cfg.FlickVelocity <= 0 {
		cfg.FlickVelocity = DefaultFlickVelocity
	}
	if cfg.FlickCooldown <= 0 {
		cfg.FlickCooldown = DefaultFlickCooldown
	}
	return &Translator{cfg: cfg}
}

// Reset clears all hold and flick state. Called when the landmark source
// reports no hand; a partial hold earns no credit toward the next one.
func (t *Translator) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearHoldLocked()
	t.holdFired = false
	t.hasPrevY = false
	t.prevY = 0
	t.lastFlick = time.Time{}
}

// ObserveHold advances the thumbs up hold protocol with one sample. It is
// the caller's job to invoke this only while the hold protocol is active
// (intro and game over screens).
//
// A hold fires exactly once; the pose must be released and re-established
// before it can fire again.
func (t *Translator) ObserveHold(isThumbsUp bool, now time.Time) {
	var fire bool

	t.mu.Lock()
	switch {
	case !isThumbsUp:
		// Pose dropped before the threshold: cancel the pending timer
		// synchronously and forget all progress.
		t.clearHoldLocked()
		t.holdFired = false

	case t.holdFired:
		// Held past the threshold without release. Stay latched.

	case t.holdStart.IsZero():
		t.holdStart = now
		// Backstop for sparse sampling: if the pose is held but no further
		// samples arrive, the timer still completes the hold.
		t.holdTimer = time.AfterFunc(t.cfg.HoldThreshold, t.holdExpired)

	case now.Sub(t.holdStart) >= t.cfg.HoldThreshold:
		t.finishHoldLocked()
		fire = true
	}
	t.mu.Unlock()

	if fire && t.cfg.OnActivate != nil {
		t.cfg.OnActivate()
	}
}

// holdExpired runs on the hold timer goroutine when a hold reaches the
// threshold between samples.
func (t *Translator) holdExpired() {
	t.mu.Lock()
	if t.holdStart.IsZero() || t.holdFired {
		t.mu.Unlock()
		return
	}
	t.finishHoldLocked()
	t.mu.Unlock()

	if t.cfg.OnActivate != nil {
		t.cfg.OnActivate()
	}
}

// finishHoldLocked latches a completed hold. Caller holds t.mu.
func (t *Translator) finishHoldLocked() {
	t.clearHoldLocked()
	t.holdFired = true
}

// clearHoldLocked stops any pending hold timer and clears hold progress.
// Caller holds t.mu.
func (t *Translator) clearHoldLocked() {
	if t.holdTimer != nil {
		t.holdTimer.Stop()
		t.holdTimer = nil
	}
	t.holdStart = time.Time{}
}

// HoldProgress returns the current hold progress in [0,1]. It is exactly 0
// when no hold is in progress.
func (t *Translator) HoldProgress(now time.Time) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.holdStart.IsZero() {
		return 0
	}
	p := float64(now.Sub(t.holdStart)) / float64(t.cfg.HoldThreshold)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ObserveFlick advances the flick protocol with one thumb-tip Y sample. It
// is the caller's job to invoke this only while the flick protocol is
// active (playing). The previous Y is always updated, whether or not a
// flick fires.
func (t *Translator) ObserveFlick(y float64, now time.Time) {
	var fire bool

	t.mu.Lock()
	if t.hasPrevY {
		v := FingertipVelocity(t.prevY, y)
		cooled := t.lastFlick.IsZero() || now.Sub(t.lastFlick) > t.cfg.FlickCooldown
		if v > t.cfg.FlickVelocity && cooled && !t.airborne() {
			t.lastFlick = now
			fire = true
		}
	}
	t.prevY = y
	t.hasPrevY = true
	t.mu.Unlock()

	if fire && t.cfg.OnJump != nil {
		t.cfg.OnJump()
	}
}

func (t *Translator) airborne() bool {
	if t.cfg.Airborne == nil {
		return false
	}
	return t.cfg.Airborne()
}
