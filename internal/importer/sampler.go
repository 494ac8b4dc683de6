// Curve resampling: linear passthrough, step expansion and fixed-rate
// cubic-Hermite evaluation.
package importer

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gltf2skel/pkg/anim"
)

// stepEpsilon is how far before the next authored timestamp the hold key
// of a step curve is placed, in seconds. It must stay below the smallest
// authored time delta to keep keyframe times strictly increasing.
const stepEpsilon = 1e-6

// sampleLinear copies each (time, value) pair verbatim; glTF and output
// keyframes correspond exactly.
func sampleLinear[V any](times []float32, values []V) []anim.Keyframe[V] {
	keys := make([]anim.Keyframe[V], len(values))
	for i := range values {
		keys[i] = anim.Keyframe[V]{Time: times[i], Value: values[i]}
	}
	return keys
}

// sampleStep expands each authored sample into a hold: sample i emits
// (t_i, v_i) and, for all but the last, (t_{i+1}-ε, v_i), so evaluation
// anywhere in [t_i, t_{i+1}) yields v_i. Output has 2n-1 keyframes.
func sampleStep[V any](times []float32, values []V) []anim.Keyframe[V] {
	if len(values) == 0 {
		return nil
	}
	keys := make([]anim.Keyframe[V], 2*len(values)-1)
	for i := range values {
		keys[2*i] = anim.Keyframe[V]{Time: times[i], Value: values[i]}
		if i < len(values)-1 {
			keys[2*i+1] = anim.Keyframe[V]{Time: holdTime(times[i+1]), Value: values[i]}
		}
	}
	return keys
}

// holdTime places a hold key ε before the next authored timestamp. Past
// ~64 s the float32 ulp exceeds ε and the subtraction rounds back to
// next, so fall back to the largest representable time strictly below it.
func holdTime(next float32) float32 {
	hold := next - stepEpsilon
	if hold >= next {
		hold = math.Nextafter32(next, float32(math.Inf(-1)))
	}
	return hold
}

// hermiteBasis evaluates the cubic Hermite basis functions at u in [0,1].
func hermiteBasis(u float32) (a, b, c, d float32) {
	u2 := u * u
	u3 := u2 * u
	a = 2*u3 - 3*u2 + 1
	b = u3 - 2*u2 + u
	c = -2*u3 + 3*u2
	d = u3 - u2
	return
}

// hermiteVec3 blends p(u) = a*p0 + b*m0 + c*p1 + d*m1.
func hermiteVec3(u float32, p0, m0, p1, m1 mgl32.Vec3) mgl32.Vec3 {
	a, b, c, d := hermiteBasis(u)
	return p0.Mul(a).Add(m0.Mul(b)).Add(p1.Mul(c)).Add(m1.Mul(d))
}

// hermiteQuat blends quaternion components like hermiteVec3. The result
// is not unit length; callers renormalize.
func hermiteQuat(u float32, p0, m0, p1, m1 mgl32.Quat) mgl32.Quat {
	a, b, c, d := hermiteBasis(u)
	return p0.Scale(a).Add(m0.Scale(b)).Add(p1.Scale(c)).Add(m1.Scale(d))
}

// sampleCubic resamples a CUBICSPLINE channel at a fixed rate. values
// holds (in-tangent, value, out-tangent) triplets per authored sample;
// the output has floor(duration*rate)+1 keyframes. For each output time
// the containing authored segment is located by binary search, tangents
// are scaled by the segment duration, and blend evaluates the Hermite
// form.
func sampleCubic[V any](
	times []float32, values []V, rate, duration float32,
	scale func(V, float32) V,
	blend func(u float32, p0, m0, p1, m1 V) V,
) []anim.Keyframe[V] {
	count := int(math.Floor(float64(duration*rate))) + 1
	keys := make([]anim.Keyframe[V], count)

	if len(times) == 1 {
		// A single authored sample leaves nothing to interpolate; the
		// curve is constant at its value component.
		for i := range keys {
			keys[i] = anim.Keyframe[V]{Time: float32(i) / rate, Value: values[1]}
		}
		return keys
	}

	for i := range keys {
		t := float32(i) / rate
		k := findSegment(times, t)

		t0, t1 := times[k], times[k+1]
		dt := t1 - t0
		u := (t - t0) / dt

		p0 := values[k*3+1]
		m0 := scale(values[k*3+2], dt)
		p1 := values[(k+1)*3+1]
		m1 := scale(values[(k+1)*3], dt)

		keys[i] = anim.Keyframe[V]{Time: t, Value: blend(u, p0, m0, p1, m1)}
	}
	return keys
}

// findSegment returns the index k of the authored segment [t_k, t_{k+1}]
// containing t, clamped to the curve's span. Binary search keeps lookup
// correct for any query order.
func findSegment(times []float32, t float32) int {
	k := sort.Search(len(times), func(i int) bool { return times[i] > t }) - 1
	if k < 0 {
		k = 0
	}
	if k > len(times)-2 {
		k = len(times) - 2
	}
	return k
}

// scaleVec3 and scaleQuat scale spline tangents by a segment duration.
func scaleVec3(v mgl32.Vec3, s float32) mgl32.Vec3 { return v.Mul(s) }
func scaleQuat(q mgl32.Quat, s float32) mgl32.Quat { return q.Scale(s) }

// normalizeRotations renormalizes quaternion keyframes after Hermite
// blending, which does not preserve unit norm.
func normalizeRotations(keys []anim.Keyframe[mgl32.Quat]) {
	for i := range keys {
		keys[i].Value = keys[i].Value.Normalize()
	}
}
