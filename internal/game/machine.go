// Package game implements the runner's state machine and simulation engine.
package game

import (
	"math/rand"
	"sync"
	"time"
)

// State is the game lifecycle state.
type State int

const (
	// StateLoading is the initial state, left exactly once when the input
	// pipeline signals readiness.
	StateLoading State = iota
	StateIntro
	StatePlaying
	StateGameOver
)

// String returns the lowercase state name used on the wire.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateIntro:
		return "intro"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Command is a discrete input command. All input sources (gesture
// translator, touch protocol, keyboard) funnel into Machine.Handle with one
// of these.
type Command int

const (
	// CommandActivate starts (or restarts) a run. Accepted only in the
	// intro and game over states.
	CommandActivate Command = iota
	// CommandJump makes the player jump. Accepted only while playing.
	CommandJump
)

// ScoreSink receives the final score of a finished run.
type ScoreSink interface {
	Submit(score int)
}

// Config holds configuration for a Machine.
type Config struct {
	// Scores receives final scores at session end. May be nil.
	Scores ScoreSink
	// Rich toggles the visually rich client variant. It is carried in
	// snapshots only; the core simulation is identical either way.
	Rich bool
	// Seed seeds obstacle randomization. Zero means seed from the clock.
	Seed int64
}

// Machine owns the game lifecycle and the current session. All mutable
// game state is confined behind its single mutex: the render tick, the
// inference callbacks and the input handlers all enter through Machine
// methods.
type Machine struct {
	mu      sync.Mutex
	config  Config
	state   State
	session *Session
	rng     *rand.Rand
}

// NewMachine creates a Machine in the loading state.
func NewMachine(config Config) *Machine {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Machine{
		config: config,
		state:  StateLoading,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Ready moves the machine from loading to intro. Further calls are no-ops;
// loading is entered exactly once per process lifetime.
func (m *Machine) Ready() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateLoading {
		m.state = StateIntro
	}
}

// Handle routes a command through the transition table. Commands that are
// not accepted in the current state are dropped; a duplicate jump while
// airborne is a no-op.
func (m *Machine) Handle(cmd Command) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch cmd {
	case CommandActivate:
		if m.state == StateIntro || m.state == StateGameOver {
			m.startSessionLocked()
		}
	case CommandJump:
		if m.state == StatePlaying && m.session != nil {
			m.session.Jump()
		}
	}
}

// HandleKey handles the single fallback key (space): jump while playing,
// activate from the intro and game over screens.
func (m *Machine) HandleKey() {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StatePlaying:
		if m.session != nil {
			m.session.Jump()
		}
	case StateIntro, StateGameOver:
		m.startSessionLocked()
	}
}

// startSessionLocked enters playing with a fresh session: obstacles
// cleared, world speed reset, player grounded, score zeroed. Caller holds
// m.mu.
func (m *Machine) startSessionLocked() {
	m.session = NewSession(m.rng)
	m.state = StatePlaying
}

// Step advances the simulation by one tick. A no-op in every state but
// playing. On collision the machine enters game over and the floored score
// is submitted to the score sink off the tick path.
func (m *Machine) Step() {
	m.mu.Lock()

	if m.state != StatePlaying || m.session == nil {
		m.mu.Unlock()
		return
	}

	if m.session.Step() {
		m.state = StateGameOver
		score := int(m.session.Score)
		sink := m.config.Scores
		m.mu.Unlock()

		if sink != nil {
			go sink.Submit(score)
		}
		return
	}

	m.mu.Unlock()
}

// Airborne reports whether the player is currently airborne. Used by the
// gesture translator to suppress flicks mid-jump.
func (m *Machine) Airborne() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StatePlaying && m.session != nil && m.session.Jumping()
}

// Jumping reports whether the player is airborne.
func (s *Session) Jumping() bool {
	return s.Player.Jumping
}

// Snapshot is a render-ready copy of the machine's visible state.
type Snapshot struct {
	State     string     `json:"state"`
	Score     int        `json:"score"`
	Speed     float64    `json:"speed"`
	Player    Player     `json:"player"`
	Obstacles []Obstacle `json:"obstacles"`
	Rich      bool       `json:"rich"`
}

// Snapshot returns a copy of the current state for the presentation layer.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		State: m.state.String(),
		Rich:  m.config.Rich,
	}
	if m.session != nil {
		snap.Score = int(m.session.Score)
		snap.Speed = m.session.Speed
		snap.Player = m.session.Player
		snap.Obstacles = append([]Obstacle(nil), m.session.Obstacles...)
	} else {
		snap.Player = Player{Y: groundTop}
	}
	return snap
}
