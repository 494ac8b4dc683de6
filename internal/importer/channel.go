// Channel dispatch: routing (interpolation kind, target property) pairs
// onto the matching sampling algorithm.
package importer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltf2skel/pkg/anim"
	"github.com/Faultbox/gltf2skel/pkg/gltf"
)

// sampleChannel samples one animation channel into the target joint's
// track and raises *duration when the channel's declared span exceeds it.
// Unknown interpolation kinds and target properties fail hard; they are
// never silently skipped.
func (im *Importer) sampleChannel(
	a *gltf.Animation, ch *gltf.AnimationChannel,
	rate float32, duration *float32, track *anim.JointTrack,
) error {
	if ch.Sampler < 0 || ch.Sampler >= len(a.Samplers) {
		return fmt.Errorf("%w: channel references sampler %d of %d",
			ErrSchemaViolation, ch.Sampler, len(a.Samplers))
	}
	sampler := &a.Samplers[ch.Sampler]

	input, err := im.doc.GetAccessor(sampler.Input)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	output, err := im.doc.GetAccessor(sampler.Output)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if input.Count == 0 {
		return fmt.Errorf("%w: animation sampler input accessor has no samples",
			ErrSchemaViolation)
	}

	// The input accessor's declared max is the channel span; the glTF
	// spec requires min/max on animation sampler inputs.
	if len(input.Max) != 1 {
		return fmt.Errorf("%w: animation sampler input accessor has no max bound",
			ErrSchemaViolation)
	}
	span := float32(input.Max[0])
	if span > *duration {
		*duration = span
	}

	times, err := im.doc.Floats(input)
	if err != nil {
		return err
	}

	// glTF defaults an omitted interpolation to LINEAR.
	interpolation := sampler.Interpolation
	if interpolation == "" {
		interpolation = gltf.InterpolationLinear
	}

	switch interpolation {
	case gltf.InterpolationLinear, gltf.InterpolationStep:
		if input.Count != output.Count {
			return fmt.Errorf("%w: %s sampler has %d timestamps but %d values",
				ErrSchemaViolation, interpolation, input.Count, output.Count)
		}
	case gltf.InterpolationCubicSpline:
		if output.Count != 3*input.Count {
			return fmt.Errorf("%w: CUBICSPLINE sampler has %d timestamps but %d values, want %d tangent-value triplets",
				ErrSchemaViolation, input.Count, output.Count, 3*input.Count)
		}
	default:
		return fmt.Errorf("%w: unknown interpolation %q", ErrUnsupportedChannel, interpolation)
	}

	switch ch.Target.Path {
	case gltf.PathTranslation, gltf.PathScale:
		values, err := im.doc.Vec3s(output)
		if err != nil {
			return err
		}
		var keys []anim.Keyframe[mgl32.Vec3]
		switch interpolation {
		case gltf.InterpolationLinear:
			keys = sampleLinear(times, values)
		case gltf.InterpolationStep:
			keys = sampleStep(times, values)
		case gltf.InterpolationCubicSpline:
			keys = sampleCubic(times, values, rate, span, scaleVec3, hermiteVec3)
		}
		if ch.Target.Path == gltf.PathTranslation {
			track.Translations = keys
		} else {
			track.Scales = keys
		}
		return nil

	case gltf.PathRotation:
		values, err := im.doc.Quats(output)
		if err != nil {
			return err
		}
		switch interpolation {
		case gltf.InterpolationLinear:
			track.Rotations = sampleLinear(times, values)
		case gltf.InterpolationStep:
			track.Rotations = sampleStep(times, values)
		case gltf.InterpolationCubicSpline:
			track.Rotations = sampleCubic(times, values, rate, span, scaleQuat, hermiteQuat)
			normalizeRotations(track.Rotations)
		}
		return nil

	default:
		// Covers weights (morph targets) and user properties as well as
		// genuinely unknown paths; none are importable as joint tracks.
		return fmt.Errorf("%w: target path %q", ErrUnsupportedChannel, ch.Target.Path)
	}
}
