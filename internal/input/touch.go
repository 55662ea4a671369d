// Package input decodes raw touch events into game commands.
package input

import (
	"sync"
	"time"
)

// Touch protocol defaults.
const (
	// DefaultDoubleTapWindow is the maximum delay between two touch-downs
	// for them to count as a double tap.
	DefaultDoubleTapWindow = 300 * time.Millisecond
	// DefaultLongPressThreshold is how long a touch must be held to count
	// as a long press.
	DefaultLongPressThreshold = 600 * time.Millisecond
)

// Config holds configuration and wiring for a TouchDecoder.
type Config struct {
	DoubleTapWindow    time.Duration
	LongPressThreshold time.Duration

	// OnTap fires on every touch-down. Wired to jump; the machine drops
	// it outside the playing state.
	OnTap func()
	// OnDoubleTap fires on the second touch-down within the window.
	OnDoubleTap func()
	// OnLongPress fires when a touch is held past the threshold.
	OnLongPress func()
}

// TouchDecoder turns touch-down/touch-up events into tap, double tap and
// long press callbacks. The long press timer is a real cancellable handle:
// lifting the finger before the threshold stops it synchronously, so a
// stale timer can never fire against moved-on state.
type TouchDecoder struct {
	cfg Config

	mu        sync.Mutex
	lastDown  time.Time // zero until the first touch
	pressTime *time.Timer
}

// NewTouchDecoder creates a TouchDecoder with defaults applied for any
// zero config fields.
func NewTouchDecoder(cfg Config) *TouchDecoder {
	if cfg.DoubleTapWindow <= 0 {
		cfg.DoubleTapWindow = DefaultDoubleTapWindow
	}
	if cfg.LongPressThreshold <= 0 {
		cfg.LongPressThreshold = DefaultLongPressThreshold
	}
	return &TouchDecoder{cfg: cfg}
}

// Down handles a touch-down event.
func (d *TouchDecoder) Down(now time.Time) {
	var double bool

	d.mu.Lock()
	if !d.lastDown.IsZero() && now.Sub(d.lastDown) <= d.cfg.DoubleTapWindow {
		double = true
		d.lastDown = time.Time{}
	} else {
		d.lastDown = now
	}

	d.stopPressTimerLocked()
	d.pressTime = time.AfterFunc(d.cfg.LongPressThreshold, d.pressExpired)
	d.mu.Unlock()

	if d.cfg.OnTap != nil {
		d.cfg.OnTap()
	}
	if double && d.cfg.OnDoubleTap != nil {
		d.cfg.OnDoubleTap()
	}
}

// Up handles a touch-up event, cancelling any pending long press.
func (d *TouchDecoder) Up() {
	d.mu.Lock()
	d.stopPressTimerLocked()
	d.mu.Unlock()
}

func (d *TouchDecoder) pressExpired() {
	d.mu.Lock()
	d.pressTime = nil
	d.mu.Unlock()

	if d.cfg.OnLongPress != nil {
		d.cfg.OnLongPress()
	}
}

// stopPressTimerLocked stops the long press timer. Caller holds d.mu.
func (d *TouchDecoder) stopPressTimerLocked() {
	if d.pressTime != nil {
		d.pressTime.Stop()
		d.pressTime = nil
	}
}
