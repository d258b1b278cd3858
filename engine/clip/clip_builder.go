package clip

import "github.com/Carmen-Shannon/oxy-anim/engine/curve"

// ClipBuilderOption is a functional option for configuring a Clip during construction.
type ClipBuilderOption func(*clip)

// WithWrapMode is an option builder that sets the clip's default wrap mode.
//
// Parameters:
//   - mode: the wrap mode
//
// Returns:
//   - ClipBuilderOption: a function that applies the wrap mode option to a clip
func WithWrapMode(mode WrapMode) ClipBuilderOption {
	return func(c *clip) {
		c.wrapMode = mode
	}
}

// WithCurve is an option builder that binds a track to a target property.
//
// Parameters:
//   - path: the relative path of the animated target
//   - property: the animated property
//   - t: the track driving the property
//
// Returns:
//   - ClipBuilderOption: a function that applies the curve option to a clip
func WithCurve(path, property string, t curve.Track) ClipBuilderOption {
	return func(c *clip) {
		c.AddCurve(path, property, t)
	}
}
