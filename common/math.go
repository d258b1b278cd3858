package common

import "math"

// quatSlerpEpsilon is the cosine threshold above which Slerp falls back to a normalized lerp,
// since sin(theta) approaches zero and the slerp weights become numerically unstable.
const quatSlerpEpsilon = 0.9995

// IsFinite reports whether v is neither NaN nor an infinity.
//
// Parameters:
//   - v: the value to check
//
// Returns:
//   - bool: true if v is a finite number
func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Lerp linearly interpolates between a and b as a*(1-t) + b*t.
// The two-product form is used instead of a + (b-a)*t so that t == 1 yields b exactly.
//
// Parameters:
//   - a: the start value
//   - b: the end value
//   - t: the interpolation factor
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// HermiteBasis returns the four cubic Hermite basis coefficients evaluated at t.
//
// Parameters:
//   - t: the normalized segment parameter, usually in [0, 1]
//
// Returns:
//   - h00: weight of the start value (2t³ - 3t² + 1)
//   - h10: weight of the start tangent (t³ - 2t² + t)
//   - h01: weight of the end value (-2t³ + 3t²)
//   - h11: weight of the end tangent (t³ - t²)
func HermiteBasis(t float32) (h00, h10, h01, h11 float32) {
	t2 := t * t
	t3 := t2 * t
	h00 = 2*t3 - 3*t2 + 1
	h10 = t3 - 2*t2 + t
	h01 = -2*t3 + 3*t2
	h11 = t3 - t2
	return h00, h10, h01, h11
}

// QuatDot returns the 4D dot product of two quaternions stored as (x, y, z, w).
//
// Parameters:
//   - a: the first quaternion
//   - b: the second quaternion
//
// Returns:
//   - float32: the dot product
func QuatDot(a, b [4]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// QuatNormalize returns q scaled to unit length. A zero quaternion is returned as the identity (0, 0, 0, 1).
//
// Parameters:
//   - q: the quaternion to normalize (x, y, z, w)
//
// Returns:
//   - [4]float32: the unit quaternion
func QuatNormalize(q [4]float32) [4]float32 {
	lenSq := float64(QuatDot(q, q))
	if lenSq == 0 {
		return [4]float32{0, 0, 0, 1}
	}
	inv := float32(1.0 / math.Sqrt(lenSq))
	return [4]float32{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// QuatSlerp spherically interpolates between two unit quaternions along the shortest arc.
// When the quaternions lie in opposite hemispheres the end rotation is negated first, and
// nearly parallel inputs fall back to a normalized lerp.
//
// Parameters:
//   - a: the start rotation (x, y, z, w)
//   - b: the end rotation (x, y, z, w)
//   - t: the interpolation factor in [0, 1]
//
// Returns:
//   - [4]float32: the interpolated rotation
func QuatSlerp(a, b [4]float32, t float32) [4]float32 {
	cosTheta := QuatDot(a, b)
	if cosTheta < 0 {
		b = [4]float32{-b[0], -b[1], -b[2], -b[3]}
		cosTheta = -cosTheta
	}

	var wa, wb float32
	if cosTheta > quatSlerpEpsilon {
		wa = 1 - t
		wb = t
		return QuatNormalize([4]float32{
			a[0]*wa + b[0]*wb,
			a[1]*wa + b[1]*wb,
			a[2]*wa + b[2]*wb,
			a[3]*wa + b[3]*wb,
		})
	}

	theta := math.Acos(float64(cosTheta))
	sinTheta := math.Sin(theta)
	wa = float32(math.Sin(float64(1-t)*theta) / sinTheta)
	wb = float32(math.Sin(float64(t)*theta) / sinTheta)
	return [4]float32{
		a[0]*wa + b[0]*wb,
		a[1]*wa + b[1]*wb,
		a[2]*wa + b[2]*wb,
		a[3]*wa + b[3]*wb,
	}
}
