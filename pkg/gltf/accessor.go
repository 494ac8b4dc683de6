// Typed accessor views over resolved buffer bytes.
package gltf

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// accessorBytes validates an accessor against an expected element byte
// size and returns the backing bytes plus the element stride. The
// declared element size (component size times cardinality) must equal
// the consumer's expected size exactly.
func (d *Document) accessorBytes(acc *Accessor, expectedSize int) ([]byte, int, error) {
	elemSize := ComponentSize(acc.ComponentType) * TypeComponents(acc.Type)
	if elemSize == 0 {
		return nil, 0, fmt.Errorf("%w: componentType %d, type %q",
			ErrUnsupportedType, acc.ComponentType, acc.Type)
	}
	if elemSize != expectedSize {
		return nil, 0, fmt.Errorf("%w: expected element size %d, got %d",
			ErrFormatMismatch, expectedSize, elemSize)
	}

	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("%w: accessor has no buffer view", ErrMissingBufferData)
	}
	bv := *acc.BufferView
	if bv < 0 || bv >= len(d.BufferViews) {
		return nil, 0, fmt.Errorf("%w: bufferView %d of %d", ErrIndexOutOfRange, bv, len(d.BufferViews))
	}
	view := &d.BufferViews[bv]
	if view.Buffer < 0 || view.Buffer >= len(d.Buffers) {
		return nil, 0, fmt.Errorf("%w: buffer %d of %d", ErrIndexOutOfRange, view.Buffer, len(d.Buffers))
	}
	buf := &d.Buffers[view.Buffer]
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("%w: buffer %d", ErrMissingBufferData, view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	start := view.ByteOffset + acc.ByteOffset
	end := start
	if acc.Count > 0 {
		end = start + (acc.Count-1)*stride + elemSize
	}
	if start < 0 || end > len(buf.Data) {
		return nil, 0, fmt.Errorf("%w: [%d,%d) of %d bytes", ErrAccessorBounds, start, end, len(buf.Data))
	}
	return buf.Data[start:], stride, nil
}

// Floats returns the accessor's elements as scalar float32 values.
func (d *Document) Floats(acc *Accessor) ([]float32, error) {
	data, stride, err := d.accessorBytes(acc, 4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, acc.Count)
	for i := range out {
		out[i] = le32(data[i*stride:])
	}
	return out, nil
}

// Vec3s returns the accessor's elements as 3-component vectors.
func (d *Document) Vec3s(acc *Accessor) ([]mgl32.Vec3, error) {
	data, stride, err := d.accessorBytes(acc, 12)
	if err != nil {
		return nil, err
	}
	out := make([]mgl32.Vec3, acc.Count)
	for i := range out {
		base := data[i*stride:]
		out[i] = mgl32.Vec3{le32(base), le32(base[4:]), le32(base[8:])}
	}
	return out, nil
}

// Vec4s returns the accessor's elements as 4-component vectors.
func (d *Document) Vec4s(acc *Accessor) ([]mgl32.Vec4, error) {
	data, stride, err := d.accessorBytes(acc, 16)
	if err != nil {
		return nil, err
	}
	out := make([]mgl32.Vec4, acc.Count)
	for i := range out {
		base := data[i*stride:]
		out[i] = mgl32.Vec4{le32(base), le32(base[4:]), le32(base[8:]), le32(base[12:])}
	}
	return out, nil
}

// Quats returns the accessor's elements as quaternions, reordering from
// glTF's (x, y, z, w) storage.
func (d *Document) Quats(acc *Accessor) ([]mgl32.Quat, error) {
	vecs, err := d.Vec4s(acc)
	if err != nil {
		return nil, err
	}
	out := make([]mgl32.Quat, len(vecs))
	for i, v := range vecs {
		out[i] = mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
	}
	return out, nil
}

// le32 decodes a little-endian float32.
func le32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
