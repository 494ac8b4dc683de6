// Package anim defines the skeleton and keyframe animation data produced
// by the importer: a joint forest with bind transforms, and per-joint
// translation/rotation/scale keyframe tracks.
package anim

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Validation errors.
var (
	ErrEmptyJointName     = errors.New("joint has an empty name")
	ErrDuplicateJointName = errors.New("duplicate joint name")
	ErrNegativeDuration   = errors.New("animation duration is negative")
	ErrEmptyTrack         = errors.New("joint track has no keyframes")
	ErrUnorderedKeyframes = errors.New("keyframe times are not strictly increasing")
	ErrTrackCountMismatch = errors.New("track count does not match joint count")
)

// Transform is a local TRS transform.
type Transform struct {
	Translation mgl32.Vec3 `json:"translation"`
	Rotation    mgl32.Quat `json:"rotation"`
	Scale       mgl32.Vec3 `json:"scale"`
}

// IdentityTransform returns a transform with zero translation, identity
// rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Keyframe is one (time, value) sample of a track.
type Keyframe[V any] struct {
	Time  float32 `json:"time"`
	Value V       `json:"value"`
}

// JointTrack holds the three property tracks of one joint. A track is
// never left empty by the importer: joints without authored channels get
// a single bind-pose keyframe at time 0.
type JointTrack struct {
	Translations []Keyframe[mgl32.Vec3] `json:"translations"`
	Rotations    []Keyframe[mgl32.Quat] `json:"rotations"`
	Scales       []Keyframe[mgl32.Vec3] `json:"scales"`
}
