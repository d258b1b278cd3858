// Package curve evaluates keyframe tracks: sparse timestamped samples of one animated property,
// interpolated to a continuous value at any query time.
package curve

import "slices"

// segmentEpsilon is the shortest segment, in seconds, that is interpolated. Shorter segments
// snap to their end value instead of dividing by a near-zero duration.
const segmentEpsilon = 1e-5

// track is the implementation of the Track interface.
type track struct {
	keys     []Keyframe
	kind     ValueKind
	duration float32

	firstFrameValue Value
	firstFrameSet   bool
}

// Track defines the interface for a keyframe curve.
//
// A Track owns an ordered list of keyframes sharing one ValueKind, fixed by the first key added.
// Keys must be added in non-decreasing time order; the track does not sort or validate them.
// Evaluating a track with no keys is a precondition violation and panics.
//
// Tracks are not safe for concurrent mutation. After authoring, concurrent Evaluate calls are
// safe once the first-frame cache has been seeded by a single Evaluate (see FirstFrameValue).
type Track interface {
	// AddKey appends a keyframe. The first accepted key fixes the track's ValueKind; a key of a
	// different kind is ignored and AddKey reports false. Duration is raised to the key time if larger.
	//
	// Parameters:
	//   - k: the keyframe to append
	//
	// Returns:
	//   - bool: true if the key was appended, false if it was ignored for a kind mismatch
	AddKey(k Keyframe) bool

	// MoveKey replaces the key at index in place. Neither duration nor kind is re-validated.
	//
	// Parameters:
	//   - index: the slot to replace
	//   - k: the new keyframe
	MoveKey(index int, k Keyframe)

	// RemoveKey deletes the key at index, shifting later keys down by one.
	// Duration is not recomputed; it remains the highest key time ever added.
	//
	// Parameters:
	//   - index: the slot to delete
	RemoveKey(index int)

	// Evaluate samples the track at the given time.
	//
	// The segment is the last key whose time is <= t, found by scanning from the end; queries before
	// the first key clamp to it and queries past the last key hold its value. The left key's
	// InterpolationMode then selects Step, Linear, CubicSpline or Hermite sampling.
	// The first call caches keys[0].Value as the first frame value.
	//
	// Parameters:
	//   - t: the query time in seconds
	//
	// Returns:
	//   - Value: the sampled value, of the track's ValueKind
	Evaluate(t float32) Value

	// Keys returns the keyframes in slot order. The slice must not be modified.
	//
	// Returns:
	//   - []Keyframe: the track's keys
	Keys() []Keyframe

	// KeyCount returns the number of keys in the track.
	//
	// Returns:
	//   - int: the key count
	KeyCount() int

	// Duration returns the highest key time ever added. It never decreases.
	//
	// Returns:
	//   - float32: the duration in seconds
	Duration() float32

	// ValueKind returns the kind fixed by the first accepted key, or ValueKindNone for a new track.
	//
	// Returns:
	//   - ValueKind: the track's value kind
	ValueKind() ValueKind

	// FirstFrameValue returns the value cached on the first Evaluate call.
	// The cache is set once and never refreshed by later key edits.
	//
	// Returns:
	//   - Value: the cached first key value
	//   - bool: false if the track has never been evaluated
	FirstFrameValue() (Value, bool)
}

var _ Track = &track{}

// NewTrack creates an empty Track and applies the given options.
//
// Parameters:
//   - options: variadic list of TrackBuilderOption functions to configure the Track
//
// Returns:
//   - Track: the new track
func NewTrack(options ...TrackBuilderOption) Track {
	c := &track{}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *track) AddKey(k Keyframe) bool {
	if c.kind == ValueKindNone {
		if k.Value.Kind == ValueKindNone {
			return false
		}
		c.kind = k.Value.Kind
	} else if k.Value.Kind != c.kind {
		return false
	}

	c.keys = append(c.keys, k)
	if k.Time > c.duration {
		c.duration = k.Time
	}
	return true
}

func (c *track) MoveKey(index int, k Keyframe) {
	c.keys[index] = k
}

func (c *track) RemoveKey(index int) {
	c.keys = slices.Delete(c.keys, index, index+1)
}

func (c *track) Keys() []Keyframe {
	return c.keys
}

func (c *track) KeyCount() int {
	return len(c.keys)
}

func (c *track) Duration() float32 {
	return c.duration
}

func (c *track) ValueKind() ValueKind {
	return c.kind
}

func (c *track) FirstFrameValue() (Value, bool) {
	return c.firstFrameValue, c.firstFrameSet
}

func (c *track) Evaluate(t float32) Value {
	frame, next, alpha, dur := c.frameInfo(t)

	var v Value
	switch c.keys[frame].Interpolation {
	case InterpolationStep:
		v = c.keys[next].Value
	case InterpolationCubicSpline:
		v = c.evaluateCubicSpline(frame, next, alpha)
	case InterpolationHermite:
		v = c.evaluateHermite(frame, next, alpha, dur)
	default:
		v = Blend(c.keys[frame].Value, c.keys[next].Value, alpha)
	}
	v.Kind = c.kind

	if !c.firstFrameSet {
		c.firstFrameValue = c.keys[0].Value
		c.firstFrameSet = true
	}
	return v
}

// frameInfo locates the segment containing t.
//
// Parameters:
//   - t: the query time in seconds
//
// Returns:
//   - frame: index of the segment's left key
//   - next: index of the segment's right key (equal to frame at either end of the track)
//   - alpha: normalized position within the segment
//   - dur: the segment duration in seconds
func (c *track) frameInfo(t float32) (frame, next int, alpha, dur float32) {
	n := len(c.keys)
	found := false
	for i := n - 1; i >= 0; i-- {
		if t >= c.keys[i].Time {
			frame = i
			found = true
			break
		}
	}

	if found {
		next = frame + 1
		if next >= n {
			next = frame
		}
	}

	dur = c.keys[next].Time - c.keys[frame].Time
	if next == frame || dur < segmentEpsilon {
		alpha = 1
	} else {
		alpha = (t - c.keys[frame].Time) / dur
	}
	return frame, next, alpha, dur
}
