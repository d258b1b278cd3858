package curve

import "github.com/Carmen-Shannon/oxy-anim/common"

// evaluateCubicSpline samples a cubic spline segment from the left key's out-tangent and the right
// key's in-tangent. Tangents are used as stored; glTF importers scale them by the segment duration
// before adding the keys. The basis coefficients make the result exact at alpha 0 and 1.
func (c *track) evaluateCubicSpline(frame, next int, alpha float32) Value {
	p0 := c.keys[frame].Value
	m0 := c.keys[frame].OutTangent
	p1 := c.keys[next].Value
	m1 := c.keys[next].InTangent

	h00, h10, h01, h11 := common.HermiteBasis(alpha)

	out := Value{Kind: c.kind}
	for i := range c.kind.Size() {
		out.V[i] = h00*p0.V[i] + h10*m0.V[i] + h01*p1.V[i] + h11*m1.V[i]
	}
	if c.kind == ValueKindQuaternion {
		out.V = common.QuatNormalize(out.V)
	}
	return out
}

// evaluateHermite samples a tangent-aware cubic Hermite segment component by component.
// A component whose left out-tangent or right in-tangent is non-finite holds the left key's raw
// component value, so a missing tangent never produces a NaN in the output.
func (c *track) evaluateHermite(frame, next int, alpha, dur float32) Value {
	p0 := c.keys[frame].Value
	t0 := c.keys[frame].OutTangent
	p1 := c.keys[next].Value
	t1 := c.keys[next].InTangent

	h00, h10, h01, h11 := common.HermiteBasis(alpha)

	out := Value{Kind: c.kind}
	for i := range c.kind.Size() {
		if common.IsFinite(t0.V[i]) && common.IsFinite(t1.V[i]) {
			out.V[i] = h00*p0.V[i] + h10*t0.V[i]*dur + h11*t1.V[i]*dur + h01*p1.V[i]
		} else {
			out.V[i] = p0.V[i]
		}
	}
	return out
}
