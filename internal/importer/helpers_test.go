package importer

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltf2skel/pkg/gltf"
)

// Test fixture helpers: build in-memory documents the way the loading
// collaborator would hand them over, one buffer per accessor.

func packFloats(values []float32) []byte {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	return data
}

func addAccessor(doc *gltf.Document, raw []float32, count int, typ string, max []float64) int {
	data := packFloats(raw)
	doc.Buffers = append(doc.Buffers, gltf.Buffer{ByteLength: len(data), Data: data})
	doc.BufferViews = append(doc.BufferViews, gltf.BufferView{
		Buffer:     len(doc.Buffers) - 1,
		ByteLength: len(data),
	})
	bv := len(doc.BufferViews) - 1
	doc.Accessors = append(doc.Accessors, gltf.Accessor{
		BufferView:    &bv,
		ComponentType: gltf.ComponentFloat,
		Count:         count,
		Type:          typ,
		Max:           max,
	})
	return len(doc.Accessors) - 1
}

// addTimes adds a SCALAR timestamp accessor with its max bound declared,
// as the glTF spec requires for sampler inputs.
func addTimes(doc *gltf.Document, times []float32) int {
	max := float64(0)
	if len(times) > 0 {
		max = float64(times[len(times)-1])
	}
	return addAccessor(doc, times, len(times), gltf.TypeScalar, []float64{max})
}

func addVec3s(doc *gltf.Document, values []mgl32.Vec3) int {
	raw := make([]float32, 0, 3*len(values))
	for _, v := range values {
		raw = append(raw, v[0], v[1], v[2])
	}
	return addAccessor(doc, raw, len(values), gltf.TypeVec3, nil)
}

// addVec4s adds a VEC4 accessor from (x, y, z, w) rows.
func addVec4s(doc *gltf.Document, values [][4]float32) int {
	raw := make([]float32, 0, 4*len(values))
	for _, v := range values {
		raw = append(raw, v[0], v[1], v[2], v[3])
	}
	return addAccessor(doc, raw, len(values), gltf.TypeVec4, nil)
}

// addChannel appends a sampler/channel pair targeting node's property.
func addChannel(a *gltf.Animation, node int, path, interpolation string, input, output int) {
	a.Samplers = append(a.Samplers, gltf.AnimationSampler{
		Input:         input,
		Output:        output,
		Interpolation: interpolation,
	})
	a.Channels = append(a.Channels, gltf.AnimationChannel{
		Sampler: len(a.Samplers) - 1,
		Target:  gltf.ChannelTarget{Node: &node, Path: path},
	})
}

// chainDoc builds a scene with nodes J0 -> J1 -> J2 and one skin whose
// joints are listed in the given order.
func chainDoc(jointOrder []int) *gltf.Document {
	return &gltf.Document{
		Scenes: []gltf.Scene{{Nodes: []int{0}}},
		Nodes: []gltf.Node{
			{Name: "J0", Children: []int{1}},
			{Name: "J1", Children: []int{2}},
			{Name: "J2"},
		},
		Skins: []gltf.Skin{{Joints: jointOrder}},
	}
}
