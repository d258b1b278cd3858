package curve

import (
	"fmt"
	"math"
	"strings"
)

// ValueKind identifies which variant a Value holds. A Track fixes its kind from the first key it accepts.
type ValueKind int

const (
	// ValueKindNone is the zero kind, carried by an unset Value.
	ValueKindNone ValueKind = iota

	// ValueKindFloat is a single scalar component.
	ValueKindFloat

	// ValueKindVector2 is a two component vector (x, y).
	ValueKindVector2

	// ValueKindVector3 is a three component vector (x, y, z).
	ValueKindVector3

	// ValueKindVector4 is a four component vector (x, y, z, w).
	ValueKindVector4

	// ValueKindQuaternion is a rotation quaternion stored as (x, y, z, w).
	// Linear interpolation of this kind uses shortest-arc slerp.
	ValueKindQuaternion
)

// Size returns the number of meaningful components for the kind.
//
// Returns:
//   - int: 1 for floats, 2-4 for vectors, 4 for quaternions, 0 for ValueKindNone
func (k ValueKind) Size() int {
	switch k {
	case ValueKindFloat:
		return 1
	case ValueKindVector2:
		return 2
	case ValueKindVector3:
		return 3
	case ValueKindVector4, ValueKindQuaternion:
		return 4
	default:
		return 0
	}
}

func (k ValueKind) String() string {
	switch k {
	case ValueKindFloat:
		return "float"
	case ValueKindVector2:
		return "vec2"
	case ValueKindVector3:
		return "vec3"
	case ValueKindVector4:
		return "vec4"
	case ValueKindQuaternion:
		return "quat"
	default:
		return "none"
	}
}

// InterpolationMode selects how a segment between two keys is sampled.
// The mode stored on the left key of a segment governs that segment.
type InterpolationMode int

const (
	// InterpolationLinear lerps each component; quaternions use shortest-arc slerp.
	InterpolationLinear InterpolationMode = iota

	// InterpolationStep returns the value of the next key in the segment, i.e. the step
	// holds the upcoming value rather than the previous one.
	InterpolationStep

	// InterpolationCubicSpline is the glTF cubic spline, using the in/out tangents packed with each key.
	InterpolationCubicSpline

	// InterpolationHermite is a tangent-aware cubic Hermite with a per-component fallback to the
	// left key's value when either tangent component is non-finite.
	InterpolationHermite
)

func (m InterpolationMode) String() string {
	switch m {
	case InterpolationStep:
		return "STEP"
	case InterpolationCubicSpline:
		return "CUBICSPLINE"
	case InterpolationHermite:
		return "HERMITE"
	default:
		return "LINEAR"
	}
}

// ParseInterpolation converts a glTF style interpolation name into an InterpolationMode.
// Matching is case-insensitive and an empty name maps to InterpolationLinear, the glTF default.
//
// Parameters:
//   - name: the interpolation name (LINEAR, STEP, CUBICSPLINE or HERMITE)
//
// Returns:
//   - InterpolationMode: the parsed mode
//   - error: error if the name is not recognized
func ParseInterpolation(name string) (InterpolationMode, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "LINEAR":
		return InterpolationLinear, nil
	case "STEP":
		return InterpolationStep, nil
	case "CUBICSPLINE":
		return InterpolationCubicSpline, nil
	case "HERMITE":
		return InterpolationHermite, nil
	default:
		return InterpolationLinear, fmt.Errorf("unknown interpolation %q", name)
	}
}

// Value is a tagged union over the animatable value kinds. Components past Kind.Size() are ignored.
type Value struct {
	// Kind is the variant held by this value.
	Kind ValueKind

	// V holds the components; x, y, z, w in order.
	V [4]float32
}

// Float builds a scalar Value.
func Float(x float32) Value {
	return Value{Kind: ValueKindFloat, V: [4]float32{x}}
}

// Vec2 builds a two component vector Value.
func Vec2(x, y float32) Value {
	return Value{Kind: ValueKindVector2, V: [4]float32{x, y}}
}

// Vec3 builds a three component vector Value.
func Vec3(x, y, z float32) Value {
	return Value{Kind: ValueKindVector3, V: [4]float32{x, y, z}}
}

// Vec4 builds a four component vector Value.
func Vec4(x, y, z, w float32) Value {
	return Value{Kind: ValueKindVector4, V: [4]float32{x, y, z, w}}
}

// Quat builds a quaternion Value stored as (x, y, z, w).
func Quat(x, y, z, w float32) Value {
	return Value{Kind: ValueKindQuaternion, V: [4]float32{x, y, z, w}}
}

// FromComponents builds a Value of the given kind from the leading components of c.
// Missing components are zero; extra components are ignored.
//
// Parameters:
//   - kind: the variant to build
//   - c: the component values
//
// Returns:
//   - Value: the assembled value
func FromComponents(kind ValueKind, c []float32) Value {
	v := Value{Kind: kind}
	copy(v.V[:kind.Size()], c)
	return v
}

// NoTangent returns a tangent of the given kind with every component set to +Inf.
// Hermite evaluation treats non-finite tangent components as "no tangent" and holds the left key's value.
//
// Parameters:
//   - kind: the variant of the owning track
//
// Returns:
//   - Value: the sentinel tangent
func NoTangent(kind ValueKind) Value {
	inf := float32(math.Inf(1))
	return Value{Kind: kind, V: [4]float32{inf, inf, inf, inf}}
}

// Components returns the meaningful components of v as a slice backed by a copy.
func (v Value) Components() []float32 {
	c := v.V
	return c[:v.Kind.Size()]
}

func (v Value) String() string {
	return fmt.Sprintf("%s%v", v.Kind, v.Components())
}

// Keyframe is one timestamped sample of a Track.
type Keyframe struct {
	// Time is the key time in seconds. Keys of a track must be added in non-decreasing time order.
	Time float32

	// Value is the sampled value at Time.
	Value Value

	// InTangent is the incoming tangent, used by CubicSpline and Hermite segments that end at this key.
	InTangent Value

	// OutTangent is the outgoing tangent, used by CubicSpline and Hermite segments that start at this key.
	OutTangent Value

	// Interpolation governs the segment that starts at this key.
	Interpolation InterpolationMode
}

// NewKeyframe creates a keyframe with zero tangents.
//
// Parameters:
//   - time: the key time in seconds
//   - value: the key value
//   - mode: the interpolation mode of the segment starting at this key
//
// Returns:
//   - Keyframe: the keyframe
func NewKeyframe(time float32, value Value, mode InterpolationMode) Keyframe {
	return Keyframe{
		Time:          time,
		Value:         value,
		InTangent:     Value{Kind: value.Kind},
		OutTangent:    Value{Kind: value.Kind},
		Interpolation: mode,
	}
}

// NewTangentKeyframe creates a keyframe carrying explicit in and out tangents, for
// CubicSpline and Hermite segments.
//
// Parameters:
//   - time: the key time in seconds
//   - value: the key value
//   - in: the incoming tangent
//   - out: the outgoing tangent
//   - mode: the interpolation mode of the segment starting at this key
//
// Returns:
//   - Keyframe: the keyframe
func NewTangentKeyframe(time float32, value, in, out Value, mode InterpolationMode) Keyframe {
	return Keyframe{
		Time:          time,
		Value:         value,
		InTangent:     in,
		OutTangent:    out,
		Interpolation: mode,
	}
}
