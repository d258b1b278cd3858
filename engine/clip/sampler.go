package clip

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
)

// glTF animation channel target paths.
const (
	gltfPathTranslation = "translation"
	gltfPathRotation    = "rotation"
	gltfPathScale       = "scale"
	gltfPathWeights     = "weights"
)

// Clip property names produced for each glTF target path.
const (
	PropertyPosition = "position"
	PropertyRotation = "rotation"
	PropertyScale    = "scale"
	PropertyWeights  = "weights"
)

// Sampler is a decoded glTF animation sampler: flat keyframe times, flat output components and the
// interpolation name.
type Sampler struct {
	// Input holds the key times in seconds.
	Input []float32

	// Output holds the key values, flattened. CUBICSPLINE outputs are (in-tangent, value, out-tangent) triplets.
	Output []float32

	// Interpolation is STEP, LINEAR or CUBICSPLINE. Empty means LINEAR.
	Interpolation string
}

// Channel binds a sampler to a target node path and a glTF target path.
type Channel struct {
	// Sampler is the index returned by Binder.AddSampler.
	Sampler int

	// Target is the relative path of the animated node.
	Target string

	// Path is the glTF target path: translation, rotation, scale or weights.
	Path string
}

// binder is the implementation of the Binder interface.
type binder struct {
	samplers []Sampler
	channels []Channel
}

// Binder collects decoded glTF samplers and channels and turns them into a Clip.
type Binder interface {
	// AddSampler registers a sampler.
	//
	// Parameters:
	//   - s: the decoded sampler
	//
	// Returns:
	//   - int: the sampler index to reference from channels
	AddSampler(s Sampler) int

	// AddChannel registers a channel targeting a previously added sampler.
	//
	// Parameters:
	//   - ch: the channel
	//
	// Returns:
	//   - error: error if the sampler index is out of range or the target path is unknown
	AddChannel(ch Channel) error

	// Build converts every channel into a track and returns a primed Clip.
	//
	// Parameters:
	//   - name: the clip name
	//   - options: options applied to the clip before its curves are added
	//
	// Returns:
	//   - Clip: the assembled clip
	//   - error: error if any sampler cannot be converted
	Build(name string, options ...ClipBuilderOption) (Clip, error)
}

var _ Binder = &binder{}

// NewBinder creates an empty Binder.
//
// Returns:
//   - Binder: the new binder
func NewBinder() Binder {
	return &binder{}
}

func (b *binder) AddSampler(s Sampler) int {
	b.samplers = append(b.samplers, s)
	return len(b.samplers) - 1
}

func (b *binder) AddChannel(ch Channel) error {
	if ch.Sampler < 0 || ch.Sampler >= len(b.samplers) {
		return fmt.Errorf("channel %q: invalid sampler index %d", ch.Target, ch.Sampler)
	}
	if _, err := PropertyForPath(ch.Path); err != nil {
		return fmt.Errorf("channel %q: %w", ch.Target, err)
	}
	b.channels = append(b.channels, ch)
	return nil
}

func (b *binder) Build(name string, options ...ClipBuilderOption) (Clip, error) {
	c := NewClip(name, options...)
	for i, ch := range b.channels {
		property, err := PropertyForPath(ch.Path)
		if err != nil {
			return nil, fmt.Errorf("clip %q channel %d: %w", name, i, err)
		}
		t, err := BuildTrack(b.samplers[ch.Sampler], property)
		if err != nil {
			return nil, fmt.Errorf("clip %q channel %d (%s/%s): %w", name, i, ch.Target, property, err)
		}
		c.AddCurve(ch.Target, property, t)
	}
	c.Prime()
	return c, nil
}

// PropertyForPath maps a glTF channel target path onto the clip property it animates.
//
// Parameters:
//   - path: the glTF target path
//
// Returns:
//   - string: the clip property name
//   - error: error if the path is not a glTF target path
func PropertyForPath(path string) (string, error) {
	switch strings.ToLower(path) {
	case gltfPathTranslation:
		return PropertyPosition, nil
	case gltfPathRotation:
		return PropertyRotation, nil
	case gltfPathScale:
		return PropertyScale, nil
	case gltfPathWeights:
		return PropertyWeights, nil
	default:
		return "", fmt.Errorf("unknown target path %q", path)
	}
}

// BuildTrack converts a decoded sampler into a Track.
//
// The component count is derived from the array lengths. Rotation properties produce quaternion
// tracks; every other property produces a float or vector track of the derived width.
//
// Parameters:
//   - s: the decoded sampler
//   - property: the clip property the track animates
//
// Returns:
//   - curve.Track: the track
//   - error: error if the sampler is empty, malformed or uses an unsupported interpolation
func BuildTrack(s Sampler, property string) (curve.Track, error) {
	if len(s.Input) == 0 {
		return nil, fmt.Errorf("sampler has no input times")
	}

	mode, err := curve.ParseInterpolation(s.Interpolation)
	if err != nil {
		return nil, err
	}
	if mode == curve.InterpolationHermite {
		return nil, fmt.Errorf("unknown interpolation %q", s.Interpolation)
	}

	for i := 1; i < len(s.Input); i++ {
		if s.Input[i] < s.Input[i-1] {
			return nil, fmt.Errorf("input time %d (%g) is before input time %d (%g)", i, s.Input[i], i-1, s.Input[i-1])
		}
	}

	if len(s.Output)%len(s.Input) != 0 {
		return nil, fmt.Errorf("output length %d is not a multiple of input length %d", len(s.Output), len(s.Input))
	}
	stride := len(s.Output) / len(s.Input)
	size := stride
	if mode == curve.InterpolationCubicSpline {
		if stride%3 != 0 {
			return nil, fmt.Errorf("cubic spline output stride %d is not a multiple of 3", stride)
		}
		size = stride / 3
	}

	kind, err := kindFor(property, size)
	if err != nil {
		return nil, err
	}

	t := curve.NewTrack(curve.WithCapacity(len(s.Input)))
	for k, time := range s.Input {
		base := k * stride
		var key curve.Keyframe
		if mode == curve.InterpolationCubicSpline {
			in := curve.FromComponents(kind, s.Output[base:base+size])
			v := curve.FromComponents(kind, s.Output[base+size:base+2*size])
			out := curve.FromComponents(kind, s.Output[base+2*size:base+3*size])
			// glTF tangents are per second; tracks store them per segment.
			if k > 0 {
				in = scaleValue(in, time-s.Input[k-1])
			}
			if k+1 < len(s.Input) {
				out = scaleValue(out, s.Input[k+1]-time)
			}
			key = curve.NewTangentKeyframe(time, v, in, out, mode)
		} else {
			key = curve.NewKeyframe(time, curve.FromComponents(kind, s.Output[base:base+size]), mode)
		}
		t.AddKey(key)
	}
	return t, nil
}

func scaleValue(v curve.Value, f float32) curve.Value {
	for i := range v.V {
		v.V[i] *= f
	}
	return v
}

// kindFor picks the track value kind for a property and component count.
func kindFor(property string, size int) (curve.ValueKind, error) {
	if property == PropertyRotation {
		if size != 4 {
			return curve.ValueKindNone, fmt.Errorf("rotation needs 4 components, got %d", size)
		}
		return curve.ValueKindQuaternion, nil
	}

	switch size {
	case 1:
		return curve.ValueKindFloat, nil
	case 2:
		return curve.ValueKindVector2, nil
	case 3:
		return curve.ValueKindVector3, nil
	case 4:
		return curve.ValueKindVector4, nil
	default:
		return curve.ValueKindNone, fmt.Errorf("unsupported component count %d", size)
	}
}
