package anim

import "fmt"

// Animation is one imported clip: per-joint tracks aligned 1:1 with the
// depth-first joint order of the skeleton it was imported against, plus
// the overall duration in seconds (the maximum channel span, 0 when no
// channel is authored).
type Animation struct {
	Name     string       `json:"name"`
	Duration float32      `json:"duration"`
	Tracks   []JointTrack `json:"tracks"`
}

// Validate checks the output invariants: non-negative duration, no empty
// property track, and strictly increasing keyframe times per track.
func (a *Animation) Validate() error {
	if a.Duration < 0 {
		return fmt.Errorf("%w: %f", ErrNegativeDuration, a.Duration)
	}
	for i := range a.Tracks {
		t := &a.Tracks[i]
		if len(t.Translations) == 0 || len(t.Rotations) == 0 || len(t.Scales) == 0 {
			return fmt.Errorf("%w: track %d", ErrEmptyTrack, i)
		}
		if !ordered(t.Translations) {
			return fmt.Errorf("%w: track %d translations", ErrUnorderedKeyframes, i)
		}
		if !ordered(t.Rotations) {
			return fmt.Errorf("%w: track %d rotations", ErrUnorderedKeyframes, i)
		}
		if !ordered(t.Scales) {
			return fmt.Errorf("%w: track %d scales", ErrUnorderedKeyframes, i)
		}
	}
	return nil
}

// ValidateAgainst additionally checks the 1:1 track alignment with a
// skeleton's joint count.
func (a *Animation) ValidateAgainst(s *Skeleton) error {
	if got, want := len(a.Tracks), s.NumJoints(); got != want {
		return fmt.Errorf("%w: %d tracks for %d joints", ErrTrackCountMismatch, got, want)
	}
	return a.Validate()
}

// ordered reports whether keyframe times are strictly increasing.
func ordered[V any](keys []Keyframe[V]) bool {
	for i := 1; i < len(keys); i++ {
		if keys[i].Time <= keys[i-1].Time {
			return false
		}
	}
	return true
}
