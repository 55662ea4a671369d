package app

import (
	"log"
	"time"

	"github.com/ayusman/handrunner/internal/capture"
	"github.com/ayusman/handrunner/internal/detector"
	"github.com/ayusman/handrunner/internal/game"
	"github.com/ayusman/handrunner/internal/gesture"
)

// runTicks advances the simulation at a fixed rate. Steps outside the
// playing state are no-ops inside the machine.
func (a *App) runTicks(stopCh chan struct{}) {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			a.machine.Step()
		}
	}
}

// runInference is the camera loop. Frame rate follows the game state: the
// menu screens poll slowly with a motion gate in front of the detector,
// gameplay tracks the thumb continuously at the play rate.
//
// Loop logic per frame:
// 1. Pick the frame rate for the current game state
// 2. Read a frame; on the menu screens skip detection until motion
// 3. Run hand detection
// 4. No hand (or detector error) resets the translator: a partial hold
//    earns no credit toward the next one
// 5. Route the first hand into the protocol the current state listens to
func (a *App) runInference(stopCh chan struct{}) {
	currentFPS := capture.IdleFPS
	lastMotionTime := time.Now()

	ticker := time.NewTicker(time.Second / time.Duration(currentFPS))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			state := a.machine.State()

			targetFPS := capture.IdleFPS
			if state == game.StatePlaying {
				targetFPS = capture.PlayFPS
			}
			if targetFPS != currentFPS {
				currentFPS = targetFPS
				a.camera.SetFPS(currentFPS)
				ticker.Reset(time.Second / time.Duration(currentFPS))
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Motion gate on the menu screens only; gameplay needs every
			// frame for velocity tracking.
			if state != game.StatePlaying {
				motionDetected, _ := a.motion.Detect(frame)
				if motionDetected {
					lastMotionTime = time.Now()
				} else if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					frame.Close()
					a.translator.Reset()
					continue
				}
			}

			hands, err := a.detector.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				a.translator.Reset()
				continue
			}

			a.observe(hands, time.Now())
		}
	}
}

// observe routes one detection result into the protocol the current game
// state listens to. Exactly one hand drives the game; extra hands in frame
// are ignored.
func (a *App) observe(hands []detector.HandLandmarks, now time.Time) {
	if len(hands) == 0 {
		a.translator.Reset()
		return
	}
	hand := &hands[0]

	switch a.machine.State() {
	case game.StateIntro, game.StateGameOver:
		a.translator.ObserveHold(gesture.IsThumbsUp(hand), now)
	case game.StatePlaying:
		a.translator.ObserveFlick(hand.ThumbTipY(), now)
	}
}
