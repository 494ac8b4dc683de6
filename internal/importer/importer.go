// Package importer converts a parsed glTF document into a skeleton (joint
// forest with bind transforms) and per-animation joint keyframe tracks.
//
// The document is treated as read-only: one Importer may serve multiple
// Skeleton and Animation calls, and independent importers may share a
// document without synchronization.
package importer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gltf2skel/pkg/gltf"
)

// Import errors.
var (
	ErrNoScene            = errors.New("document has no usable scene")
	ErrEmptyScene         = errors.New("scene has no nodes")
	ErrSchemaViolation    = errors.New("schema violation")
	ErrUnsupportedChannel = errors.New("unsupported animation channel")
	ErrStructural         = errors.New("unresolvable skeleton graph")
	ErrAnimationNotFound  = errors.New("animation not found")
)

// DefaultSampleRate is the cubic-spline resampling rate, in Hz, used when
// none is configured. glTF carries no scene frame rate information.
const DefaultSampleRate = 30.0

// Importer is one import session over a glTF document.
type Importer struct {
	doc  *gltf.Document
	rate float32
	log  *zap.Logger

	// rateWarned suppresses the default-rate notice after the first
	// animation import of this session.
	rateWarned bool
}

// Option configures an Importer.
type Option func(*Importer)

// WithSampleRate sets the cubic-spline resampling rate in Hz. A rate of 0
// selects DefaultSampleRate.
func WithSampleRate(rate float32) Option {
	return func(im *Importer) { im.rate = rate }
}

// WithLogger attaches a logger for import diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(im *Importer) { im.log = log }
}

// New creates an import session over doc.
func New(doc *gltf.Document, opts ...Option) *Importer {
	im := &Importer{doc: doc, log: zap.NewNop()}
	for _, o := range opts {
		o(im)
	}
	return im
}

// AnimationNames returns the names of all animations in the document, in
// document order.
func (im *Importer) AnimationNames() []string {
	names := make([]string, len(im.doc.Animations))
	for i := range im.doc.Animations {
		names[i] = im.doc.Animations[i].Name
	}
	return names
}

// sampleRate returns the effective cubic resampling rate, warning once
// per session when falling back to the default.
func (im *Importer) sampleRate() float32 {
	if im.rate > 0 {
		return im.rate
	}
	if !im.rateWarned {
		im.log.Warn("sampling rate not set and glTF carries no frame rate, using default",
			zap.Float32("rate", DefaultSampleRate))
		im.rateWarned = true
	}
	return DefaultSampleRate
}

// animationByName finds a document animation by name.
func (im *Importer) animationByName(name string) (*gltf.Animation, error) {
	for i := range im.doc.Animations {
		if im.doc.Animations[i].Name == name {
			return &im.doc.Animations[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrAnimationNotFound, name)
}

// isAnimationTarget reports whether any channel of any animation targets
// the node at index idx.
func (im *Importer) isAnimationTarget(idx int) bool {
	for i := range im.doc.Animations {
		for _, ch := range im.doc.Animations[i].Channels {
			if ch.Target.Node != nil && *ch.Target.Node == idx {
				return true
			}
		}
	}
	return false
}
