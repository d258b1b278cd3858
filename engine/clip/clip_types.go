package clip

import (
	"math"

	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
)

// WrapMode controls how a play clock past the clip length maps back into the clip.
type WrapMode int

const (
	// WrapModeDefault defers to the clip's own wrap mode. A clip whose mode is WrapModeDefault loops.
	WrapModeDefault WrapMode = iota

	// WrapModeOnce clamps the clock to the clip length and reports the clip as finished.
	WrapModeOnce

	// WrapModeLoop wraps the clock modulo the clip length.
	WrapModeLoop
)

func (w WrapMode) String() string {
	switch w {
	case WrapModeOnce:
		return "once"
	case WrapModeLoop:
		return "loop"
	default:
		return "default"
	}
}

// WrapTime maps an unbounded play clock onto the clip timeline.
//
// Parameters:
//   - time: the play clock in seconds
//   - length: the clip length in seconds
//
// Returns:
//   - float32: the time to sample the clip at
//   - bool: true if a WrapModeOnce clock has reached the end of the clip
func (w WrapMode) WrapTime(time, length float32) (float32, bool) {
	if length <= 0 {
		return 0, w == WrapModeOnce
	}
	switch w {
	case WrapModeLoop, WrapModeDefault:
		t := float32(math.Mod(float64(time), float64(length)))
		if t < 0 {
			t += length
		}
		return t, false
	default:
		if time >= length {
			return length, true
		}
		if time < 0 {
			return 0, false
		}
		return time, false
	}
}

// CurveBinding ties a Track to the property it animates.
type CurveBinding struct {
	// Path is the relative path of the animated target, e.g. a bone or node name.
	Path string

	// Property is the animated property on the target, e.g. "position" or "rotation".
	Property string

	// Track is the keyframe curve driving the property.
	Track curve.Track
}

// Key returns the "path/property" key used for sampled values.
//
// Returns:
//   - string: the binding key
func (b CurveBinding) Key() string {
	return BindingKey(b.Path, b.Property)
}

// BindingKey joins a target path and property into the key used for sampled values.
//
// Parameters:
//   - path: the target path
//   - property: the target property
//
// Returns:
//   - string: the "path/property" key
func BindingKey(path, property string) string {
	return path + "/" + property
}
