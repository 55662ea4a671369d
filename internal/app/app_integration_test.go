package app

import (
	"testing"
	"time"

	"github.com/ayusman/handrunner/internal/detector"
	"github.com/ayusman/handrunner/internal/game"
)

// newTestApp returns an App without camera or detector, driven directly
// through observe().
func newTestApp(t *testing.T) *App {
	t.Helper()
	a := New(Config{NoCamera: true, Seed: 1})
	a.machine.Ready()
	return a
}

func TestApp_HoldActivatesRun(t *testing.T) {
	a := newTestApp(t)

	if got := a.machine.State(); got != game.StateIntro {
		t.Fatalf("state = %v, want intro", got)
	}

	// A sustained thumbs up walks the hold protocol to completion.
	thumbsUp := []detector.HandLandmarks{detector.ThumbsUpLandmarks()}
	now := time.Now()
	for i := 0; i < 20; i++ {
		a.observe(thumbsUp, now.Add(time.Duration(i)*100*time.Millisecond))
	}

	if got := a.machine.State(); got != game.StatePlaying {
		t.Errorf("state = %v, want playing after completed hold", got)
	}
}

func TestApp_PartialHoldDoesNotActivate(t *testing.T) {
	a := newTestApp(t)

	thumbsUp := []detector.HandLandmarks{detector.ThumbsUpLandmarks()}
	now := time.Now()

	// Hold for one second, lose the hand, hold for another second. Neither
	// partial hold reaches the threshold on its own.
	for i := 0; i < 10; i++ {
		a.observe(thumbsUp, now.Add(time.Duration(i)*100*time.Millisecond))
	}
	a.observe(nil, now.Add(time.Second))
	for i := 11; i < 21; i++ {
		a.observe(thumbsUp, now.Add(time.Duration(i)*100*time.Millisecond))
	}

	if got := a.machine.State(); got != game.StateIntro {
		t.Errorf("state = %v, want intro after two partial holds", got)
	}
}

func TestApp_FlickJumpsWhilePlaying(t *testing.T) {
	a := newTestApp(t)
	a.machine.Handle(game.CommandActivate)

	now := time.Now()

	// Seed the previous sample, then jerk the thumb up past the velocity
	// threshold.
	a.observe([]detector.HandLandmarks{detector.HandWithThumbTipAt(0.60)}, now)
	a.observe([]detector.HandLandmarks{detector.HandWithThumbTipAt(0.50)}, now.Add(50*time.Millisecond))

	snap := a.machine.Snapshot()
	if !snap.Player.Jumping {
		t.Error("player should be airborne after a flick")
	}
}

func TestApp_ThumbsUpIgnoredWhilePlaying(t *testing.T) {
	a := newTestApp(t)
	a.machine.Handle(game.CommandActivate)

	// While playing only the flick protocol listens; a long thumbs up must
	// not restart the run.
	thumbsUp := []detector.HandLandmarks{detector.ThumbsUpLandmarks()}
	now := time.Now()
	for i := 0; i < 20; i++ {
		a.observe(thumbsUp, now.Add(time.Duration(i)*100*time.Millisecond))
	}
	for i := 0; i < 10; i++ {
		a.machine.Step()
	}

	snap := a.machine.Snapshot()
	if snap.State != "playing" {
		t.Fatalf("state = %q, want playing", snap.State)
	}
	if snap.Score == 0 {
		t.Error("run should have accrued score; it was restarted")
	}
}

func TestApp_NoHandResetsHold(t *testing.T) {
	a := newTestApp(t)

	thumbsUp := []detector.HandLandmarks{detector.ThumbsUpLandmarks()}
	now := time.Now()
	a.observe(thumbsUp, now)
	if p := a.translator.HoldProgress(now.Add(time.Second)); p == 0 {
		t.Fatal("hold should be in progress")
	}

	a.observe(nil, now.Add(time.Second))
	if p := a.translator.HoldProgress(now.Add(2 * time.Second)); p != 0 {
		t.Errorf("hold progress = %f after hand lost, want 0", p)
	}
}

func TestApp_NoCameraLifecycle(t *testing.T) {
	a := New(Config{NoCamera: true, Seed: 1})

	if a.GestureAvailable() {
		t.Error("gesture input should be unavailable without a camera")
	}
	if got := a.machine.State(); got != game.StateLoading {
		t.Fatalf("state before Start = %v, want loading", got)
	}

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer a.Stop()

	if got := a.machine.State(); got != game.StateIntro {
		t.Errorf("state after Start = %v, want intro", got)
	}

	// Keyboard fallback still drives the full lifecycle.
	a.machine.HandleKey()
	if got := a.machine.State(); got != game.StatePlaying {
		t.Errorf("state after key = %v, want playing", got)
	}
}

func TestApp_SetEnabledResetsTranslator(t *testing.T) {
	a := newTestApp(t)

	now := time.Now()
	a.observe([]detector.HandLandmarks{detector.ThumbsUpLandmarks()}, now)

	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Fatal("expected detection disabled")
	}
	if p := a.translator.HoldProgress(now.Add(time.Second)); p != 0 {
		t.Errorf("hold progress = %f after disable, want 0", p)
	}
}
