package game

import (
	"testing"
	"time"
)

// chanSink collects submitted scores on a channel so tests can wait for
// the off-tick submission.
type chanSink struct {
	scores chan int
}

func newChanSink() *chanSink {
	return &chanSink{scores: make(chan int, 4)}
}

func (c *chanSink) Submit(score int) {
	c.scores <- score
}

func TestMachine_Lifecycle(t *testing.T) {
	m := NewMachine(Config{Seed: 1})

	if m.State() != StateLoading {
		t.Fatalf("initial state = %v, want loading", m.State())
	}

	// Nothing but Ready leaves loading.
	m.Handle(CommandActivate)
	m.Handle(CommandJump)
	if m.State() != StateLoading {
		t.Fatalf("commands must be ignored in loading, state = %v", m.State())
	}

	m.Ready()
	if m.State() != StateIntro {
		t.Fatalf("state after Ready = %v, want intro", m.State())
	}

	// Ready is one-shot.
	m.Ready()
	if m.State() != StateIntro {
		t.Fatalf("second Ready changed state to %v", m.State())
	}

	m.Handle(CommandActivate)
	if m.State() != StatePlaying {
		t.Fatalf("state after activate = %v, want playing", m.State())
	}
}

func TestMachine_JumpOnlyWhilePlaying(t *testing.T) {
	m := NewMachine(Config{Seed: 1})
	m.Ready()

	m.Handle(CommandJump)
	if m.State() != StateIntro {
		t.Fatalf("jump in intro changed state to %v", m.State())
	}

	m.Handle(CommandActivate)
	m.Handle(CommandJump)
	if !m.Airborne() {
		t.Error("expected player airborne after jump while playing")
	}

	// Activate is not accepted while playing.
	m.Handle(CommandActivate)
	if m.State() != StatePlaying {
		t.Errorf("activate while playing changed state to %v", m.State())
	}
}

func TestMachine_StepIsNoOpOutsidePlaying(t *testing.T) {
	m := NewMachine(Config{Seed: 1})
	m.Ready()

	before := m.Snapshot()
	for i := 0; i < 100; i++ {
		m.Step()
	}
	after := m.Snapshot()

	if before.State != after.State || before.Score != after.Score {
		t.Errorf("step advanced state outside playing: %+v -> %+v", before, after)
	}
}

func TestMachine_CollisionEndsSessionAndSubmitsScore(t *testing.T) {
	sink := newChanSink()
	m := NewMachine(Config{Seed: 1, Scores: sink})
	m.Ready()
	m.Handle(CommandActivate)

	// Never jumping, the player must eventually hit the first obstacle.
	for i := 0; i < 100000 && m.State() == StatePlaying; i++ {
		m.Step()
	}

	if m.State() != StateGameOver {
		t.Fatalf("state = %v, want gameover", m.State())
	}

	select {
	case score := <-sink.scores:
		snap := m.Snapshot()
		if score != snap.Score {
			t.Errorf("submitted score %d, snapshot shows %d", score, snap.Score)
		}
		if score < 0 {
			t.Errorf("negative score %d", score)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("score was never submitted")
	}

	// Game time does not advance in game over.
	before := m.Snapshot()
	m.Step()
	after := m.Snapshot()
	if before.Score != after.Score || len(before.Obstacles) != len(after.Obstacles) {
		t.Error("simulation advanced while in gameover")
	}
}

func TestMachine_RestartResetsSession(t *testing.T) {
	m := NewMachine(Config{Seed: 1})
	m.Ready()
	m.Handle(CommandActivate)

	for i := 0; i < 100000 && m.State() == StatePlaying; i++ {
		m.Step()
	}
	if m.State() != StateGameOver {
		t.Fatal("expected gameover")
	}

	m.Handle(CommandActivate)

	snap := m.Snapshot()
	if snap.State != "playing" {
		t.Fatalf("state after restart = %s, want playing", snap.State)
	}
	if snap.Score != 0 {
		t.Errorf("score after restart = %d, want 0", snap.Score)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("obstacles after restart = %d, want 0", len(snap.Obstacles))
	}
	if snap.Speed != InitialSpeed {
		t.Errorf("speed after restart = %f, want %f", snap.Speed, InitialSpeed)
	}
	if snap.Player.Jumping || snap.Player.Y != groundTop {
		t.Errorf("player not grounded after restart: %+v", snap.Player)
	}
}

func TestMachine_HandleKey(t *testing.T) {
	m := NewMachine(Config{Seed: 1})
	m.Ready()

	// Space activates from intro.
	m.HandleKey()
	if m.State() != StatePlaying {
		t.Fatalf("state after key in intro = %v, want playing", m.State())
	}

	// Space jumps while playing.
	m.HandleKey()
	if !m.Airborne() {
		t.Error("expected airborne after key while playing")
	}

	// Duplicate key while airborne is a no-op.
	snap := m.Snapshot()
	m.HandleKey()
	if m.Snapshot().Player.VY != snap.Player.VY {
		t.Error("duplicate jump changed velocity")
	}
}

func TestMachine_SnapshotRichFlag(t *testing.T) {
	rich := NewMachine(Config{Seed: 1, Rich: true})
	plain := NewMachine(Config{Seed: 1})

	if !rich.Snapshot().Rich {
		t.Error("rich flag lost in snapshot")
	}
	if plain.Snapshot().Rich {
		t.Error("plain machine reported rich")
	}
}
