package layer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/engine/clip"
	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClip(length float32) clip.Clip {
	t := curve.NewTrack(curve.WithKeys(
		curve.NewKeyframe(0, curve.Float(0), curve.InterpolationLinear),
		curve.NewKeyframe(length, curve.Float(1), curve.InterpolationLinear),
	))
	return clip.NewClip("test", clip.WithCurve("root", "x", t))
}

func TestNewLayerData(t *testing.T) {
	l := NewLayerData()
	require.NotNil(t, l.SrcPlayData)
	require.NotNil(t, l.DestPlayData)
	require.NotNil(t, l.ManuallyTransition)
	assert.NotSame(t, l.SrcPlayData, l.DestPlayData)
	assert.Equal(t, LayerStateStandby, l.LayerState)
	assert.Nil(t, l.CrossFadeTransitionInfo.Transition)
	assert.Zero(t, l.CrossCurveMark)
}

func TestSwitchPlayData_SwapsRoles(t *testing.T) {
	l := NewLayerData()
	a, b := l.SrcPlayData, l.DestPlayData
	a.StateName = "idle"
	b.StateName = "walk"

	l.SwitchPlayData()
	assert.Same(t, b, l.SrcPlayData)
	assert.Same(t, a, l.DestPlayData)
	assert.Equal(t, "walk", l.SrcPlayData.StateName)
	assert.Equal(t, "idle", l.DestPlayData.StateName)
}

func TestSwitchPlayData_Involution(t *testing.T) {
	l := NewLayerData()
	a, b := l.SrcPlayData, l.DestPlayData

	l.SwitchPlayData()
	l.SwitchPlayData()
	assert.Same(t, a, l.SrcPlayData)
	assert.Same(t, b, l.DestPlayData)
}

func TestSwitchPlayData_LeavesOtherFieldsAlone(t *testing.T) {
	l := NewLayerData()
	l.LayerState = LayerStateCrossFading
	l.CrossCurveMark = 3
	l.CrossFadeTransitionInfo = TransitionInfo{Transition: l.ManuallyTransition, Duration: 0.25, Offset: 0.1}

	l.SwitchPlayData()
	assert.Equal(t, LayerStateCrossFading, l.LayerState)
	assert.Equal(t, 3, l.CrossCurveMark)
	assert.Same(t, l.ManuallyTransition, l.CrossFadeTransitionInfo.Transition)
	assert.Equal(t, float32(0.25), l.CrossFadeTransitionInfo.Duration)
}

func TestLayerState_RoundTripsThroughNames(t *testing.T) {
	for _, s := range []LayerState{LayerStateStandby, LayerStatePlaying, LayerStateCrossFading, LayerStateFixedCrossFading} {
		got, err := ParseLayerState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseLayerState("paused")
	assert.Error(t, err)
}

func TestPlayData_ResetAppliesOffset(t *testing.T) {
	p := &PlayData{Finished: true, Elapsed: 4, NormalizedWeight: 1}
	p.Reset("walk", testClip(2), 1, clip.WrapModeLoop, 0.25)

	assert.Equal(t, "walk", p.StateName)
	assert.Equal(t, float32(0.5), p.LocalTime)
	assert.Zero(t, p.Elapsed)
	assert.Zero(t, p.NormalizedWeight)
	assert.False(t, p.Finished)
	assert.Equal(t, float32(0.25), p.NormalizedTime())
}

func TestPlayData_AdvanceOnce(t *testing.T) {
	p := &PlayData{}
	p.Reset("jump", testClip(1), 2, clip.WrapModeOnce, 0)

	p.Advance(0.25)
	assert.Equal(t, float32(0.5), p.LocalTime)
	assert.Equal(t, float32(0.25), p.Elapsed)
	assert.False(t, p.Finished)

	p.Advance(0.5)
	assert.True(t, p.Finished)
	assert.Equal(t, float32(1), p.ClipTime())
}

func TestPlayData_AdvanceLoop(t *testing.T) {
	p := &PlayData{}
	p.Reset("run", testClip(1), 1, clip.WrapModeLoop, 0)

	p.Advance(1.5)
	assert.False(t, p.Finished)
	assert.InDelta(t, 0.5, p.ClipTime(), 1e-6)
	assert.InDelta(t, 1.5, p.NormalizedTime(), 1e-6)
}

func TestPlayData_UnusedRecordIsInert(t *testing.T) {
	p := &PlayData{}
	p.Advance(1)
	assert.Zero(t, p.LocalTime)
	assert.Zero(t, p.ClipTime())
	assert.Zero(t, p.NormalizedTime())
}
