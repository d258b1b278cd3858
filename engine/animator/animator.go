// Package animator drives layered clip playback: each layer plays one state, cross-fades toward
// another on request, and the layers are combined into a single pose every update.
package animator

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/clip"
	"github.com/Carmen-Shannon/oxy-anim/engine/config"
	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
	"github.com/Carmen-Shannon/oxy-anim/engine/layer"
	"github.com/Carmen-Shannon/oxy-anim/engine/snapshot"
)

// CommitFunc is called when a cross-fade completes and its destination becomes the playing state.
type CommitFunc func(animator string, layerIndex int, state string)

// animator is the implementation of the Animator interface.
type animator struct {
	name   string
	layers []*layerEntry

	easing            common.EasingFunc
	crossFadeDuration float32
	crossFadeFixed    bool
	onCommit          CommitFunc

	// defaults holds the first-frame value of every bound property, used as the pose a property
	// rests at when the clip on one side of a blend does not animate it.
	defaults map[string]curve.Value

	pose           map[string]curve.Value
	srcScratch     map[string]curve.Value
	destScratch    map[string]curve.Value
	layerScratch   map[string]curve.Value
	pendingCommits int
}

// Animator defines the public interface for layered state playback.
//
// Layers are evaluated in the order they were added. Each layer's pose is blended over the layers
// below it by the layer weight, so a later layer with weight 1 fully overrides the properties it
// animates.
//
// An Animator is not safe for concurrent use. Distinct animators sharing clips may be updated
// concurrently, because AddState primes every clip it registers.
type Animator interface {
	// Name returns the animator's identifier.
	//
	// Returns:
	//   - string: the animator name
	Name() string

	// AddLayer appends a layer in standby.
	//
	// Parameters:
	//   - name: the layer name
	//   - weight: the layer's blend weight, clamped to [0, 1]
	//
	// Returns:
	//   - int: the index of the new layer
	AddLayer(name string, weight float32) int

	// LayerCount returns the number of layers.
	//
	// Returns:
	//   - int: the layer count
	LayerCount() int

	// LayerIndex looks up a layer by name.
	//
	// Parameters:
	//   - name: the layer name
	//
	// Returns:
	//   - int: the layer index
	//   - bool: false if no layer has that name
	LayerIndex(name string) (int, bool)

	// SetLayerWeight changes a layer's blend weight.
	//
	// Parameters:
	//   - layerIndex: the layer
	//   - weight: the new weight, clamped to [0, 1]
	//
	// Returns:
	//   - error: ErrLayerIndex if the layer does not exist
	SetLayerWeight(layerIndex int, weight float32) error

	// SetLayerCrossFade sets the defaults used by CrossFadeTo on a layer.
	//
	// Parameters:
	//   - layerIndex: the layer
	//   - duration: the cross-fade length, normalized or in seconds per fixed
	//   - fixed: true if duration is in seconds
	//   - easing: the easing name, see common.EasingNames
	//
	// Returns:
	//   - error: ErrLayerIndex if the layer does not exist, or an error for an unknown easing
	SetLayerCrossFade(layerIndex int, duration float32, fixed bool, easing string) error

	// AddState registers a state on a layer and primes its clip. A state with the same name replaces the old one.
	//
	// Parameters:
	//   - layerIndex: the layer
	//   - s: the state
	//
	// Returns:
	//   - error: ErrLayerIndex if the layer does not exist, or an error if the state has no name or clip
	AddState(layerIndex int, s State) error

	// Play starts a state immediately, cancelling any cross-fade on the layer.
	//
	// Parameters:
	//   - stateName: the state to play
	//   - layerIndex: the layer
	//   - normalizedTime: the start position as a fraction of the clip length
	//
	// Returns:
	//   - error: ErrLayerIndex or ErrUnknownState
	Play(stateName string, layerIndex int, normalizedTime float32) error

	// CrossFade blends from the playing state to another over a duration normalized to the destination
	// clip length. A layer in standby starts the destination immediately. A cross-fade requested while
	// another is in flight first commits the in-flight destination.
	//
	// Parameters:
	//   - stateName: the destination state
	//   - layerIndex: the layer
	//   - normalizedDuration: the cross-fade length as a fraction of the destination clip length
	//   - normalizedOffset: the destination start position as a fraction of its clip length
	//
	// Returns:
	//   - error: ErrLayerIndex or ErrUnknownState
	CrossFade(stateName string, layerIndex int, normalizedDuration, normalizedOffset float32) error

	// CrossFadeInFixedDuration is CrossFade with the duration given in seconds.
	//
	// Parameters:
	//   - stateName: the destination state
	//   - layerIndex: the layer
	//   - seconds: the cross-fade length in seconds
	//   - normalizedOffset: the destination start position as a fraction of its clip length
	//
	// Returns:
	//   - error: ErrLayerIndex or ErrUnknownState
	CrossFadeInFixedDuration(stateName string, layerIndex int, seconds, normalizedOffset float32) error

	// CrossFadeTo cross-fades using the layer's configured defaults and a zero offset.
	//
	// Parameters:
	//   - stateName: the destination state
	//   - layerIndex: the layer
	//
	// Returns:
	//   - error: ErrLayerIndex or ErrUnknownState
	CrossFadeTo(stateName string, layerIndex int) error

	// CancelCrossFade drops the in-flight cross-fade and keeps the source state playing.
	//
	// Parameters:
	//   - layerIndex: the layer
	//
	// Returns:
	//   - error: ErrLayerIndex if the layer does not exist
	CancelCrossFade(layerIndex int) error

	// Update advances every layer by dt, commits finished cross-fades and rebuilds the pose.
	//
	// Parameters:
	//   - dt: the time step in seconds
	//
	// Returns:
	//   - int: the number of cross-fades committed since the previous Update
	Update(dt float32) int

	// Pose returns the blended values from the latest Update, keyed by "path/property".
	// The map is reused by the next Update and must not be modified.
	//
	// Returns:
	//   - map[string]curve.Value: the pose
	Pose() map[string]curve.Value

	// Layer exposes a layer's playback record.
	//
	// Parameters:
	//   - layerIndex: the layer
	//
	// Returns:
	//   - *layer.LayerData: the layer data
	//   - error: ErrLayerIndex if the layer does not exist
	Layer(layerIndex int) (*layer.LayerData, error)

	// CurrentState returns the name of the state playing as the layer's source.
	//
	// Parameters:
	//   - layerIndex: the layer
	//
	// Returns:
	//   - string: the state name, empty in standby
	//   - error: ErrLayerIndex if the layer does not exist
	CurrentState(layerIndex int) (string, error)

	// IsCrossFading reports whether a cross-fade is in flight on the layer. Out of range layers report false.
	//
	// Parameters:
	//   - layerIndex: the layer
	//
	// Returns:
	//   - bool: true while cross-fading
	IsCrossFading(layerIndex int) bool

	// CrossFadeProgress returns the linear progress of the layer's cross-fade, before easing.
	//
	// Parameters:
	//   - layerIndex: the layer
	//
	// Returns:
	//   - float32: progress in [0, 1], or 0 if the layer is not cross-fading
	CrossFadeProgress(layerIndex int) float32

	// Snapshot captures the playback state of every layer.
	//
	// Returns:
	//   - snapshot.Snapshot: the captured state
	Snapshot() snapshot.Snapshot

	// Restore applies a snapshot taken from an animator with the same layers and states and rebuilds
	// the pose. The animator is left untouched if the snapshot does not fit.
	//
	// Parameters:
	//   - s: the snapshot
	//
	// Returns:
	//   - error: ErrLayerIndex for a layer count mismatch, ErrUnknownState for a missing state
	Restore(s snapshot.Snapshot) error
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator with no layers and applies the options.
//
// Parameters:
//   - options: variadic list of AnimatorBuilderOption functions to configure the Animator
//
// Returns:
//   - Animator: the new animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	easing, _ := common.EasingByName(common.DefaultEasing)
	a := &animator{
		easing:            easing,
		crossFadeDuration: config.DefaultCrossFadeDuration,
		defaults:          make(map[string]curve.Value),
		pose:              make(map[string]curve.Value),
		srcScratch:        make(map[string]curve.Value),
		destScratch:       make(map[string]curve.Value),
		layerScratch:      make(map[string]curve.Value),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animator) Name() string {
	return a.name
}

func (a *animator) AddLayer(name string, weight float32) int {
	a.layers = append(a.layers, &layerEntry{
		name:              name,
		weight:            common.Clamp(weight, 0, 1),
		data:              layer.NewLayerData(),
		states:            make(map[string]*State),
		easing:            a.easing,
		crossFadeDuration: a.crossFadeDuration,
		crossFadeFixed:    a.crossFadeFixed,
	})
	return len(a.layers) - 1
}

func (a *animator) LayerCount() int {
	return len(a.layers)
}

func (a *animator) LayerIndex(name string) (int, bool) {
	for i, l := range a.layers {
		if l.name == name {
			return i, true
		}
	}
	return -1, false
}

func (a *animator) SetLayerWeight(layerIndex int, weight float32) error {
	l, err := a.layer(layerIndex)
	if err != nil {
		return err
	}
	l.weight = common.Clamp(weight, 0, 1)
	return nil
}

func (a *animator) SetLayerCrossFade(layerIndex int, duration float32, fixed bool, easing string) error {
	l, err := a.layer(layerIndex)
	if err != nil {
		return err
	}
	fn, ok := common.EasingByName(common.Coalesce(easing, common.DefaultEasing))
	if !ok {
		return fmt.Errorf("layer %q: unknown easing %q", l.name, easing)
	}
	l.easing = fn
	l.crossFadeDuration = duration
	l.crossFadeFixed = fixed
	return nil
}

func (a *animator) AddState(layerIndex int, s State) error {
	l, err := a.layer(layerIndex)
	if err != nil {
		return err
	}
	if s.Name == "" {
		return fmt.Errorf("layer %q: state has no name", l.name)
	}
	if s.Clip == nil {
		return fmt.Errorf("layer %q state %q: no clip", l.name, s.Name)
	}
	s.Speed = common.Coalesce(s.Speed, 1)
	if s.WrapMode == clip.WrapModeDefault {
		s.WrapMode = s.Clip.WrapMode()
	}

	s.Clip.Prime()
	for _, b := range s.Clip.Curves() {
		key := b.Key()
		if _, seen := a.defaults[key]; seen {
			continue
		}
		if v, ok := b.Track.FirstFrameValue(); ok {
			a.defaults[key] = v
		}
	}

	l.states[s.Name] = &s
	return nil
}

func (a *animator) Play(stateName string, layerIndex int, normalizedTime float32) error {
	l, s, err := a.lookup(stateName, layerIndex)
	if err != nil {
		return err
	}
	d := l.data
	d.SrcPlayData.Reset(s.Name, s.Clip, s.Speed, s.WrapMode, normalizedTime)
	d.SrcPlayData.Advance(0)
	d.SrcPlayData.NormalizedWeight = 1
	*d.DestPlayData = layer.PlayData{}
	d.CrossFadeTransitionInfo = layer.TransitionInfo{}
	d.LayerState = layer.LayerStatePlaying
	return nil
}

func (a *animator) CrossFade(stateName string, layerIndex int, normalizedDuration, normalizedOffset float32) error {
	return a.crossFade(stateName, layerIndex, normalizedDuration, normalizedOffset, false)
}

func (a *animator) CrossFadeInFixedDuration(stateName string, layerIndex int, seconds, normalizedOffset float32) error {
	return a.crossFade(stateName, layerIndex, seconds, normalizedOffset, true)
}

func (a *animator) CrossFadeTo(stateName string, layerIndex int) error {
	l, err := a.layer(layerIndex)
	if err != nil {
		return err
	}
	return a.crossFade(stateName, layerIndex, l.crossFadeDuration, 0, l.crossFadeFixed)
}

func (a *animator) crossFade(stateName string, layerIndex int, duration, offset float32, fixed bool) error {
	l, s, err := a.lookup(stateName, layerIndex)
	if err != nil {
		return err
	}
	d := l.data

	if d.LayerState == layer.LayerStateStandby {
		return a.Play(stateName, layerIndex, offset)
	}
	if l.crossFading() {
		a.commitCrossFade(layerIndex, l)
		a.pendingCommits++
	}

	t := d.ManuallyTransition
	*t = layer.Transition{Destination: s.Name, Duration: duration, Offset: offset}
	d.CrossFadeTransitionInfo = layer.TransitionInfo{Transition: t, Duration: duration, Offset: offset}

	d.DestPlayData.Reset(s.Name, s.Clip, s.Speed, s.WrapMode, offset)
	d.DestPlayData.Advance(0)
	d.SrcPlayData.NormalizedWeight = 1
	d.CrossCurveMark++

	if fixed {
		d.LayerState = layer.LayerStateFixedCrossFading
	} else {
		d.LayerState = layer.LayerStateCrossFading
	}
	return nil
}

func (a *animator) CancelCrossFade(layerIndex int) error {
	l, err := a.layer(layerIndex)
	if err != nil {
		return err
	}
	if !l.crossFading() {
		return nil
	}
	d := l.data
	*d.DestPlayData = layer.PlayData{}
	d.CrossFadeTransitionInfo = layer.TransitionInfo{}
	d.SrcPlayData.NormalizedWeight = 1
	d.LayerState = layer.LayerStatePlaying
	return nil
}

func (a *animator) Update(dt float32) int {
	commits := a.pendingCommits
	a.pendingCommits = 0

	for i, l := range a.layers {
		if a.advanceLayer(i, l, dt) {
			commits++
		}
	}
	a.buildPose()
	return commits
}

// advanceLayer moves a layer's clocks forward and reports whether a cross-fade committed.
func (a *animator) advanceLayer(layerIndex int, l *layerEntry, dt float32) bool {
	d := l.data
	switch {
	case d.LayerState == layer.LayerStatePlaying:
		d.SrcPlayData.Advance(dt)
		d.SrcPlayData.NormalizedWeight = 1
	case l.crossFading():
		d.SrcPlayData.Advance(dt)
		d.DestPlayData.Advance(dt)
		if l.crossFadeProgress() >= 1 {
			a.commitCrossFade(layerIndex, l)
			return true
		}
		a.applyCrossFadeWeights(l)
	}
	return false
}

func (a *animator) applyCrossFadeWeights(l *layerEntry) {
	w := float32(l.easing(float64(l.crossFadeProgress())))
	l.data.DestPlayData.NormalizedWeight = w
	l.data.SrcPlayData.NormalizedWeight = 1 - w
}

// commitCrossFade promotes the destination to source. The old source record is cleared and kept as
// the next destination.
func (a *animator) commitCrossFade(layerIndex int, l *layerEntry) {
	d := l.data
	d.SwitchPlayData()
	d.SrcPlayData.NormalizedWeight = 1
	*d.DestPlayData = layer.PlayData{}
	d.CrossFadeTransitionInfo = layer.TransitionInfo{}
	d.LayerState = layer.LayerStatePlaying

	if a.onCommit != nil {
		a.onCommit(a.name, layerIndex, d.SrcPlayData.StateName)
	}
}

func (a *animator) Pose() map[string]curve.Value {
	return a.pose
}

func (a *animator) Layer(layerIndex int) (*layer.LayerData, error) {
	l, err := a.layer(layerIndex)
	if err != nil {
		return nil, err
	}
	return l.data, nil
}

func (a *animator) CurrentState(layerIndex int) (string, error) {
	l, err := a.layer(layerIndex)
	if err != nil {
		return "", err
	}
	return l.data.SrcPlayData.StateName, nil
}

func (a *animator) IsCrossFading(layerIndex int) bool {
	l, err := a.layer(layerIndex)
	if err != nil {
		return false
	}
	return l.crossFading()
}

func (a *animator) CrossFadeProgress(layerIndex int) float32 {
	l, err := a.layer(layerIndex)
	if err != nil {
		return 0
	}
	return l.crossFadeProgress()
}

func (a *animator) layer(layerIndex int) (*layerEntry, error) {
	if layerIndex < 0 || layerIndex >= len(a.layers) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrLayerIndex, layerIndex, len(a.layers))
	}
	return a.layers[layerIndex], nil
}

func (a *animator) lookup(stateName string, layerIndex int) (*layerEntry, *State, error) {
	l, err := a.layer(layerIndex)
	if err != nil {
		return nil, nil, err
	}
	s, ok := l.states[stateName]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q on layer %q", ErrUnknownState, stateName, l.name)
	}
	return l, s, nil
}
