// Package clip groups keyframe tracks into named animation clips and binds decoded glTF style
// sampler data to tracks.
package clip

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
)

// clip is the implementation of the Clip interface.
type clip struct {
	name     string
	wrapMode WrapMode
	curves   []CurveBinding
}

// Clip defines the public interface for an animation clip: a named set of tracks, each bound to
// one property of one target.
//
// Clips are authored during import and read during playback. Prime must be called once the clip
// is complete and before it is sampled from more than one goroutine.
type Clip interface {
	// Name returns the clip's identifier.
	//
	// Returns:
	//   - string: the clip name
	Name() string

	// WrapMode returns the default wrap mode for states that play this clip.
	//
	// Returns:
	//   - WrapMode: the clip's wrap mode
	WrapMode() WrapMode

	// SetWrapMode sets the default wrap mode.
	//
	// Parameters:
	//   - mode: the new wrap mode
	SetWrapMode(mode WrapMode)

	// AddCurve binds a track to a target property. A later binding with the same key replaces the earlier one.
	//
	// Parameters:
	//   - path: the relative path of the animated target
	//   - property: the animated property
	//   - t: the track driving the property
	AddCurve(path, property string, t curve.Track)

	// Curves returns the clip's bindings in insertion order. The slice must not be modified.
	//
	// Returns:
	//   - []CurveBinding: the bindings
	Curves() []CurveBinding

	// Length returns the clip length: the largest duration of any bound track.
	//
	// Returns:
	//   - float32: the length in seconds
	Length() float32

	// Prime evaluates every non-empty track once so each track's first-frame cache is set.
	// After Prime, Sample performs no writes to the tracks and may run concurrently.
	Prime()

	// Sample evaluates every non-empty track at the given clip time and stores the results in out,
	// keyed by CurveBinding.Key.
	//
	// Parameters:
	//   - time: the clip time in seconds
	//   - out: the destination map
	Sample(time float32, out map[string]curve.Value)
}

var _ Clip = &clip{}

// NewClip creates a new Clip with the given name and applies the options.
// Clips default to WrapModeLoop.
//
// Parameters:
//   - name: the clip name
//   - options: variadic list of ClipBuilderOption functions to configure the Clip
//
// Returns:
//   - Clip: the new clip
func NewClip(name string, options ...ClipBuilderOption) Clip {
	c := &clip{
		name:     name,
		wrapMode: WrapModeLoop,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *clip) Name() string {
	return c.name
}

func (c *clip) WrapMode() WrapMode {
	if c.wrapMode == WrapModeDefault {
		return WrapModeLoop
	}
	return c.wrapMode
}

func (c *clip) SetWrapMode(mode WrapMode) {
	c.wrapMode = mode
}

func (c *clip) AddCurve(path, property string, t curve.Track) {
	for i := range c.curves {
		if c.curves[i].Path == path && c.curves[i].Property == property {
			c.curves[i].Track = t
			return
		}
	}
	c.curves = append(c.curves, CurveBinding{Path: path, Property: property, Track: t})
}

func (c *clip) Curves() []CurveBinding {
	return c.curves
}

func (c *clip) Length() float32 {
	var length float32
	for _, b := range c.curves {
		length = max(length, b.Track.Duration())
	}
	return length
}

func (c *clip) Prime() {
	for _, b := range c.curves {
		if b.Track.KeyCount() > 0 {
			b.Track.Evaluate(0)
		}
	}
}

func (c *clip) Sample(time float32, out map[string]curve.Value) {
	for _, b := range c.curves {
		if b.Track.KeyCount() == 0 {
			continue
		}
		out[b.Key()] = b.Track.Evaluate(time)
	}
}
