package layer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/engine/clip"
)

// LayerState tags what a layer is doing. The tag is written and read by the animator; this
// package stores it without interpreting it.
type LayerState int

const (
	// LayerStateStandby means the layer has no playing state.
	LayerStateStandby LayerState = iota

	// LayerStatePlaying means the source play data is playing alone.
	LayerStatePlaying

	// LayerStateCrossFading means the layer is blending toward the destination play data over a
	// duration normalized to the destination clip length.
	LayerStateCrossFading

	// LayerStateFixedCrossFading means the layer is blending toward the destination play data over
	// a duration in seconds.
	LayerStateFixedCrossFading
)

func (s LayerState) String() string {
	switch s {
	case LayerStatePlaying:
		return "playing"
	case LayerStateCrossFading:
		return "crossfading"
	case LayerStateFixedCrossFading:
		return "fixed-crossfading"
	default:
		return "standby"
	}
}

// ParseLayerState converts the name produced by LayerState.String back into a LayerState.
//
// Parameters:
//   - name: the state name, case-insensitive
//
// Returns:
//   - LayerState: the parsed state
//   - error: error if the name is not recognized
func ParseLayerState(name string) (LayerState, error) {
	switch strings.ToLower(name) {
	case "", "standby":
		return LayerStateStandby, nil
	case "playing":
		return LayerStatePlaying, nil
	case "crossfading":
		return LayerStateCrossFading, nil
	case "fixed-crossfading":
		return LayerStateFixedCrossFading, nil
	default:
		return LayerStateStandby, fmt.Errorf("unknown layer state %q", name)
	}
}

// Transition describes a move from one state to another. Only the shape is stored; condition
// evaluation belongs to the caller.
type Transition struct {
	// Destination is the name of the state transitioned to.
	Destination string

	// Duration is the cross-fade length, normalized or in seconds depending on the layer state.
	Duration float32

	// Offset is where the destination starts, normalized to its clip length.
	Offset float32

	// ExitTime is the normalized source time at which the transition may fire.
	ExitTime float32

	Solo bool
	Mute bool
}

// TransitionInfo is the resolved cross-fade in flight on a layer.
type TransitionInfo struct {
	// Transition is the descriptor being executed, or nil when no cross-fade has been requested.
	Transition *Transition

	// Duration is the cross-fade length.
	Duration float32

	// Offset is the destination start offset.
	Offset float32
}

// PlayData is the playback record of one state on a layer.
type PlayData struct {
	// StateName is the name of the state being played, empty for an unused record.
	StateName string

	// Clip is the clip played by the state. It is shared and never owned by the record.
	Clip clip.Clip

	// Speed scales the time step applied by Advance.
	Speed float32

	// WrapMode decides how LocalTime maps onto the clip timeline.
	WrapMode clip.WrapMode

	// LocalTime is the unwrapped play clock in seconds.
	LocalTime float32

	// Elapsed is the wall time in seconds since Reset, independent of Speed.
	Elapsed float32

	// NormalizedWeight is the weight this record contributes to the layer pose.
	NormalizedWeight float32

	// Finished is set once a WrapModeOnce clock reaches the end of its clip.
	Finished bool
}

// Reset reinitializes the record to play a state from the given normalized offset.
//
// Parameters:
//   - name: the state name
//   - c: the clip played by the state
//   - speed: the playback speed multiplier
//   - wrap: the wrap mode
//   - offset: the start position normalized to the clip length
func (p *PlayData) Reset(name string, c clip.Clip, speed float32, wrap clip.WrapMode, offset float32) {
	p.StateName = name
	p.Clip = c
	p.Speed = speed
	p.WrapMode = wrap
	p.LocalTime = 0
	if c != nil {
		p.LocalTime = offset * c.Length()
	}
	p.Elapsed = 0
	p.NormalizedWeight = 0
	p.Finished = false
}

// Advance moves the play clock forward by dt scaled by Speed and updates Finished.
//
// Parameters:
//   - dt: the time step in seconds
func (p *PlayData) Advance(dt float32) {
	if p.Clip == nil {
		return
	}
	p.Elapsed += dt
	p.LocalTime += dt * p.Speed
	_, p.Finished = p.WrapMode.WrapTime(p.LocalTime, p.Clip.Length())
}

// ClipTime returns the play clock wrapped onto the clip timeline.
//
// Returns:
//   - float32: the time to sample the clip at
func (p *PlayData) ClipTime() float32 {
	if p.Clip == nil {
		return 0
	}
	t, _ := p.WrapMode.WrapTime(p.LocalTime, p.Clip.Length())
	return t
}

// NormalizedTime returns the play clock as a fraction of the clip length. Looping clocks
// keep counting past 1.
//
// Returns:
//   - float32: the normalized time, 0 for an empty clip
func (p *PlayData) NormalizedTime() float32 {
	if p.Clip == nil || p.Clip.Length() <= 0 {
		return 0
	}
	return p.LocalTime / p.Clip.Length()
}
