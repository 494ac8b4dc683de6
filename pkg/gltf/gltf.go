// Package gltf provides a parser and typed accessor views for glTF 2.0
// documents (.gltf JSON and .glb binary container).
package gltf

import (
	"errors"
	"fmt"
)

// Document-level errors.
var (
	ErrInvalidJSON       = errors.New("invalid glTF JSON")
	ErrUnsupportedType   = errors.New("unsupported accessor element type")
	ErrFormatMismatch    = errors.New("accessor element size mismatch")
	ErrMissingBufferData = errors.New("buffer data not resolved")
	ErrAccessorBounds    = errors.New("accessor exceeds buffer bounds")
	ErrIndexOutOfRange   = errors.New("index out of range")
)

// accessor.componentType values.
const (
	ComponentByte          = 5120
	ComponentUnsignedByte  = 5121
	ComponentShort         = 5122
	ComponentUnsignedShort = 5123
	ComponentUnsignedInt   = 5125
	ComponentFloat         = 5126
)

// accessor.type values.
const (
	TypeScalar = "SCALAR"
	TypeVec2   = "VEC2"
	TypeVec3   = "VEC3"
	TypeVec4   = "VEC4"
	TypeMat2   = "MAT2"
	TypeMat3   = "MAT3"
	TypeMat4   = "MAT4"
)

// animation.channel.target.path values.
const (
	PathTranslation = "translation"
	PathRotation    = "rotation"
	PathScale       = "scale"
	PathWeights     = "weights"
)

// animation.sampler.interpolation values.
const (
	InterpolationLinear      = "LINEAR"
	InterpolationStep        = "STEP"
	InterpolationCubicSpline = "CUBICSPLINE"
)

// Document is a parsed glTF document. Buffer payloads are resolved
// separately (GLB BIN chunk, data URI or external file); the rest of the
// structure maps 1:1 onto the glTF JSON schema, limited to the parts an
// animation importer consumes.
type Document struct {
	Asset       Asset        `json:"asset"`
	Scene       *int         `json:"scene,omitempty"`
	Scenes      []Scene      `json:"scenes,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Skins       []Skin       `json:"skins,omitempty"`
	Animations  []Animation  `json:"animations,omitempty"`
	Accessors   []Accessor   `json:"accessors,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
}

// Asset holds the glTF asset header.
type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

// Scene is a list of root node indices.
type Scene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// Node is a scene-graph node. A local transform is given either as TRS
// components (each optional, defaulting to identity) or as a 16-float
// column-major matrix. The glTF spec disallows a matrix on nodes targeted
// by animation channels.
type Node struct {
	Name        string    `json:"name,omitempty"`
	Children    []int     `json:"children,omitempty"`
	Translation []float32 `json:"translation,omitempty"` // 3 components
	Rotation    []float32 `json:"rotation,omitempty"`    // 4 components, x y z w
	Scale       []float32 `json:"scale,omitempty"`       // 3 components
	Matrix      []float32 `json:"matrix,omitempty"`      // 16 components
	Skin        *int      `json:"skin,omitempty"`
	Mesh        *int      `json:"mesh,omitempty"`
}

// HasMatrix reports whether the node carries a matrix transform.
func (n *Node) HasMatrix() bool {
	return len(n.Matrix) == 16
}

// Skin names the joint nodes of one skinned mesh. Skeleton optionally
// declares the root joint explicitly.
type Skin struct {
	Name                string `json:"name,omitempty"`
	Joints              []int  `json:"joints"`
	Skeleton            *int   `json:"skeleton,omitempty"`
	InverseBindMatrices *int   `json:"inverseBindMatrices,omitempty"`
}

// Animation groups channels with the samplers that drive them.
type Animation struct {
	Name     string             `json:"name,omitempty"`
	Channels []AnimationChannel `json:"channels"`
	Samplers []AnimationSampler `json:"samplers"`
}

// AnimationChannel binds one sampler to one node property.
type AnimationChannel struct {
	Sampler int           `json:"sampler"`
	Target  ChannelTarget `json:"target"`
}

// ChannelTarget identifies the animated node and property.
type ChannelTarget struct {
	Node *int   `json:"node,omitempty"`
	Path string `json:"path"`
}

// AnimationSampler pairs an input timestamp accessor with an output value
// accessor under one interpolation kind.
type AnimationSampler struct {
	Input         int    `json:"input"`
	Output        int    `json:"output"`
	Interpolation string `json:"interpolation,omitempty"` // default LINEAR
}

// Accessor is a typed, strided view descriptor over a buffer view.
type Accessor struct {
	Name          string    `json:"name,omitempty"`
	BufferView    *int      `json:"bufferView,omitempty"`
	ByteOffset    int       `json:"byteOffset,omitempty"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Max           []float64 `json:"max,omitempty"`
	Min           []float64 `json:"min,omitempty"`
}

// BufferView is a byte range within a buffer.
type BufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset,omitempty"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride,omitempty"` // 0 for tightly packed
}

// Buffer declares a binary payload. Data holds the resolved bytes and is
// populated by the loader, not by JSON decoding.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
	Data       []byte `json:"-"`
}

// ComponentSize returns the byte size of a componentType, or 0 if unknown.
func ComponentSize(componentType int) int {
	switch componentType {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	default:
		return 0
	}
}

// TypeComponents returns the component cardinality of an accessor type,
// or 0 if unknown.
func TypeComponents(typ string) int {
	switch typ {
	case TypeScalar:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	case TypeMat2:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	default:
		return 0
	}
}

// GetNode returns the node at index i.
func (d *Document) GetNode(i int) (*Node, error) {
	if i < 0 || i >= len(d.Nodes) {
		return nil, fmt.Errorf("%w: node %d of %d", ErrIndexOutOfRange, i, len(d.Nodes))
	}
	return &d.Nodes[i], nil
}

// GetAccessor returns the accessor at index i.
func (d *Document) GetAccessor(i int) (*Accessor, error) {
	if i < 0 || i >= len(d.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrIndexOutOfRange, i, len(d.Accessors))
	}
	return &d.Accessors[i], nil
}

// NodeByName returns the first node with the given name, or nil.
func (d *Document) NodeByName(name string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].Name == name {
			return &d.Nodes[i]
		}
	}
	return nil
}

// DefaultScene returns the document's default scene, falling back to
// scene 0 when none is declared. The glTF spec does not require a default
// scene, so absence of the index is not an error.
func (d *Document) DefaultScene() (*Scene, error) {
	if len(d.Scenes) == 0 {
		return nil, fmt.Errorf("%w: document has no scenes", ErrIndexOutOfRange)
	}
	i := 0
	if d.Scene != nil {
		i = *d.Scene
	}
	if i < 0 || i >= len(d.Scenes) {
		return nil, fmt.Errorf("%w: scene %d of %d", ErrIndexOutOfRange, i, len(d.Scenes))
	}
	return &d.Scenes[i], nil
}
