// Package app wires the capture, detection, gesture and game layers into
// the running handrunner application.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/handrunner/internal/capture"
	"github.com/ayusman/handrunner/internal/detector"
	"github.com/ayusman/handrunner/internal/game"
	"github.com/ayusman/handrunner/internal/gesture"
)

// Pipeline timing constants.
const (
	// TickRate is the simulation rate in steps per second.
	TickRate = 60
	// IdleTimeoutMs is how long after the last motion the camera drops back
	// to the idle frame rate on the menu screens.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	// Scores receives final run scores. May be nil.
	Scores game.ScoreSink
	// CameraID is the capture device index.
	CameraID int
	// MotionThresh is the motion gate threshold in percent of changed pixels.
	MotionThresh float64
	// NoCamera skips the webcam pipeline entirely.
	NoCamera bool
	// Rich selects the visually rich client variant.
	Rich bool
	// Seed seeds obstacle randomization. Zero means seed from the clock.
	Seed int64
}

// App orchestrates the inference pipeline and the game loop. Frames flow
// camera -> motion gate -> hand detector -> recognizer -> translator, and
// the translator's commands land on the game machine alongside touch and
// keyboard input.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	translator *gesture.Translator
	machine    *game.Machine

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:  config,
		machine: game.NewMachine(game.Config{Scores: config.Scores, Rich: config.Rich, Seed: config.Seed}),
		enabled: true,
	}

	a.translator = gesture.NewTranslator(gesture.Config{
		OnActivate: func() { a.machine.Handle(game.CommandActivate) },
		OnJump:     func() { a.machine.Handle(game.CommandJump) },
		Airborne:   a.machine.Airborne,
	})

	if config.NoCamera {
		log.Println("Camera disabled; touch and keyboard input only")
		return a
	}

	a.camera = capture.NewCamera(config.CameraID)
	a.motion = capture.NewMotionDetector(motionThreshold)

	// Without MediaPipe the game stays playable by touch and keyboard.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), gesture input disabled", err)
	}

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.translator.Reset()
	}
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// GestureAvailable reports whether the gesture pipeline is running at all.
// False when the camera is disabled or the detector failed to start.
func (a *App) GestureAvailable() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera != nil && a.detector != nil
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Machine returns the game state machine.
func (a *App) Machine() *game.Machine {
	return a.machine
}

// Translator returns the gesture translator.
func (a *App) Translator() *gesture.Translator {
	return a.translator
}

// Camera returns the camera instance, nil when the camera is disabled.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Start opens the camera and launches the inference and game loops.
func (a *App) Start() error {
	a.mu.Lock()

	// Don't start if already running
	if a.stopCh != nil {
		a.mu.Unlock()
		return nil
	}

	if a.camera != nil {
		if err := a.camera.Open(); err != nil {
			a.mu.Unlock()
			return err
		}
		a.camera.SetFPS(capture.IdleFPS)
	}

	a.stopCh = make(chan struct{})
	stopCh := a.stopCh
	runInference := a.camera != nil && a.detector != nil
	a.mu.Unlock()

	if runInference {
		go a.runInference(stopCh)
	}
	go a.runTicks(stopCh)

	// The loading screen is left exactly once, when the pipeline is up.
	a.machine.Ready()

	log.Println("Game pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.camera != nil {
		if err := a.camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
	}

	if a.motion != nil {
		a.motion.Close()
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Game pipeline stopped")
}
