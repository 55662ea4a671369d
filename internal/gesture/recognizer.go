// Package gesture turns hand landmark samples into game commands.
//
// The recognizer half is stateless: pose classification and fingertip
// velocity are pure functions of their inputs. The translator half owns the
// hold and flick state and decides when a pose actually becomes a command.
package gesture

import "github.com/ayusman/handrunner/internal/detector"

// fingertip/PIP pairs checked for the curled-finger half of the thumbs up
// pose. The thumb is handled separately.
var curlPairs = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// IsThumbsUp reports whether the hand is in a thumbs up pose: thumb tip
// above (numerically smaller Y than) both the thumb IP joint and the wrist,
// and all four other fingertips below their PIP joints.
func IsThumbsUp(hand *detector.HandLandmarks) bool {
	if hand == nil {
		return false
	}

	thumbTip := hand.Points[detector.ThumbTip].Y
	if thumbTip >= hand.Points[detector.ThumbIP].Y {
		return false
	}
	if thumbTip >= hand.Points[detector.Wrist].Y {
		return false
	}

	for _, p := range curlPairs {
		if hand.Points[p[0]].Y <= hand.Points[p[1]].Y {
			return false
		}
	}

	return true
}

// FingertipVelocity returns the instantaneous vertical velocity between two
// consecutive samples as a backward difference. Positive means upward
// motion (Y decreasing).
func FingertipVelocity(previousY, currentY float64) float64 {
	return previousY - currentY
}
