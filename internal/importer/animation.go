// Per-animation joint track assembly.
package importer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gltf2skel/pkg/anim"
	"github.com/Faultbox/gltf2skel/pkg/gltf"
)

// Animation imports the named clip against a previously built skeleton.
// glTF stores animations as per-node channels; the result has one
// JointTrack per skeleton joint, in the skeleton's depth-first joint
// order. Joints with no authored channel for a property get a single
// bind-pose keyframe at time 0. The returned duration is the maximum
// channel span, 0 when no channel is authored.
func (im *Importer) Animation(name string, sk *anim.Skeleton) (*anim.Animation, error) {
	clip, err := im.animationByName(name)
	if err != nil {
		return nil, err
	}
	rate := im.sampleRate()

	// Regroup the channel-per-node layout by target node name so each
	// joint can collect its own channels.
	channelsByNode := make(map[string][]*gltf.AnimationChannel)
	for i := range clip.Channels {
		ch := &clip.Channels[i]
		if ch.Target.Node == nil {
			continue
		}
		node, err := im.doc.GetNode(*ch.Target.Node)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
		}
		channelsByNode[node.Name] = append(channelsByNode[node.Name], ch)
	}

	out := &anim.Animation{Name: name}
	jointNames := sk.JointNames()
	out.Tracks = make([]anim.JointTrack, len(jointNames))

	for i, jointName := range jointNames {
		track := &out.Tracks[i]
		for _, ch := range channelsByNode[jointName] {
			if err := im.sampleChannel(clip, ch, rate, &out.Duration, track); err != nil {
				return nil, err
			}
		}

		node := im.doc.NodeByName(jointName)
		if node == nil {
			return nil, fmt.Errorf("%w: skeleton joint %q has no document node",
				ErrStructural, jointName)
		}
		backfillBindPose(track, node)
	}

	if err := out.ValidateAgainst(sk); err != nil {
		return nil, fmt.Errorf("animation %q validation: %w", name, err)
	}
	im.log.Debug("imported animation",
		zap.String("name", name),
		zap.Int("tracks", len(out.Tracks)),
		zap.Float32("duration", out.Duration))
	return out, nil
}

// backfillBindPose inserts a rest-pose keyframe at time 0 for every
// property the channels left unauthored, so no track is ever empty.
func backfillBindPose(track *anim.JointTrack, node *gltf.Node) {
	rest := restTransform(node)
	if len(track.Translations) == 0 {
		track.Translations = []anim.Keyframe[mgl32.Vec3]{{Time: 0, Value: rest.Translation}}
	}
	if len(track.Rotations) == 0 {
		track.Rotations = []anim.Keyframe[mgl32.Quat]{{Time: 0, Value: rest.Rotation}}
	}
	if len(track.Scales) == 0 {
		track.Scales = []anim.Keyframe[mgl32.Vec3]{{Time: 0, Value: rest.Scale}}
	}
}
