package animator

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/clip"
	"github.com/Carmen-Shannon/oxy-anim/engine/config"
	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
	"github.com/Carmen-Shannon/oxy-anim/engine/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyX = "root/x"
	keyY = "root/y"
)

// rampClip animates property from "from" to "to" over length seconds.
func rampClip(name, property string, from, to, length float32) clip.Clip {
	t := curve.NewTrack(curve.WithKeys(
		curve.NewKeyframe(0, curve.Float(from), curve.InterpolationLinear),
		curve.NewKeyframe(length, curve.Float(to), curve.InterpolationLinear),
	))
	return clip.NewClip(name, clip.WithCurve("root", property, t))
}

func constClip(name, property string, v, length float32) clip.Clip {
	return rampClip(name, property, v, v, length)
}

// newTestAnimator builds one layer with idle (x=0, 1s), run (x=10, 2s), ramp (x 0..10, 1s) and
// wave (y=8, 1s).
func newTestAnimator(t *testing.T, options ...AnimatorBuilderOption) Animator {
	t.Helper()
	a := NewAnimator(append([]AnimatorBuilderOption{WithName("hero")}, options...)...)
	base := a.AddLayer("base", 1)
	require.NoError(t, a.AddState(base, State{Name: "idle", Clip: constClip("idle", "x", 0, 1)}))
	require.NoError(t, a.AddState(base, State{Name: "run", Clip: constClip("run", "x", 10, 2)}))
	require.NoError(t, a.AddState(base, State{Name: "ramp", Clip: rampClip("ramp", "x", 0, 10, 1)}))
	require.NoError(t, a.AddState(base, State{Name: "wave", Clip: constClip("wave", "y", 8, 1)}))
	return a
}

func poseFloat(t *testing.T, a Animator, key string) float32 {
	t.Helper()
	v, ok := a.Pose()[key]
	require.True(t, ok, "pose has no %s", key)
	return v.V[0]
}

func TestAnimator_PlayAndUpdate(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.Play("ramp", 0, 0))

	assert.Equal(t, 0, a.Update(0.25))
	assert.InDelta(t, 2.5, poseFloat(t, a, keyX), 1e-5)

	a.Update(1)
	assert.InDelta(t, 2.5, poseFloat(t, a, keyX), 1e-5, "loop wraps")

	state, err := a.CurrentState(0)
	require.NoError(t, err)
	assert.Equal(t, "ramp", state)

	d, err := a.Layer(0)
	require.NoError(t, err)
	assert.Equal(t, layer.LayerStatePlaying, d.LayerState)
	assert.Equal(t, float32(1), d.SrcPlayData.NormalizedWeight)
}

func TestAnimator_PlayWithOffset(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.Play("ramp", 0, 0.5))
	a.Update(0)
	assert.InDelta(t, 5, poseFloat(t, a, keyX), 1e-5)
}

func TestAnimator_StandbyLayerContributesNothing(t *testing.T) {
	a := newTestAnimator(t)
	a.Update(0.1)
	assert.Empty(t, a.Pose())
}

func TestAnimator_CrossFadeNormalized(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.Play("idle", 0, 0))
	a.Update(0)

	d, err := a.Layer(0)
	require.NoError(t, err)

	// run is 2s long, so a 0.5 normalized fade lasts 1s.
	require.NoError(t, a.CrossFade("run", 0, 0.5, 0))
	assert.True(t, a.IsCrossFading(0))
	assert.Equal(t, layer.LayerStateCrossFading, d.LayerState)
	assert.Equal(t, "run", d.ManuallyTransition.Destination)
	assert.Same(t, d.ManuallyTransition, d.CrossFadeTransitionInfo.Transition)
	assert.Equal(t, float32(0.5), d.CrossFadeTransitionInfo.Duration)
	destRecord := d.DestPlayData

	assert.Equal(t, 0, a.Update(0.25))
	assert.InDelta(t, 0.25, a.CrossFadeProgress(0), 1e-6)
	assert.InDelta(t, 2.5, poseFloat(t, a, keyX), 1e-5)
	assert.InDelta(t, 0.25, d.DestPlayData.NormalizedWeight, 1e-6)
	assert.InDelta(t, 0.75, d.SrcPlayData.NormalizedWeight, 1e-6)

	assert.Equal(t, 1, a.Update(0.75))
	assert.False(t, a.IsCrossFading(0))
	assert.Zero(t, a.CrossFadeProgress(0))
	assert.Equal(t, layer.LayerStatePlaying, d.LayerState)
	assert.Same(t, destRecord, d.SrcPlayData, "the destination record becomes the source")
	assert.Empty(t, d.DestPlayData.StateName)
	assert.Nil(t, d.CrossFadeTransitionInfo.Transition)
	assert.InDelta(t, 10, poseFloat(t, a, keyX), 1e-5)

	state, _ := a.CurrentState(0)
	assert.Equal(t, "run", state)
}

func TestAnimator_CrossFadeFixedDuration(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.Play("idle", 0, 0))
	require.NoError(t, a.CrossFadeInFixedDuration("run", 0, 0.5, 0))

	d, _ := a.Layer(0)
	assert.Equal(t, layer.LayerStateFixedCrossFading, d.LayerState)

	a.Update(0.25)
	assert.InDelta(t, 5, poseFloat(t, a, keyX), 1e-5)
	assert.Equal(t, 1, a.Update(0.25))
}

func TestAnimator_CrossFadeEasing(t *testing.T) {
	inQuad, ok := common.EasingByName("in-quad")
	require.True(t, ok)

	a := newTestAnimator(t, WithEasing(inQuad))
	require.NoError(t, a.Play("idle", 0, 0))
	require.NoError(t, a.CrossFadeInFixedDuration("run", 0, 1, 0))

	a.Update(0.5)
	assert.InDelta(t, 0.5, a.CrossFadeProgress(0), 1e-6)
	assert.InDelta(t, 2.5, poseFloat(t, a, keyX), 1e-5)
}

func TestAnimator_CrossFadeFromStandbyPlays(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.CrossFade("run", 0, 0.5, 0))
	assert.False(t, a.IsCrossFading(0))

	state, _ := a.CurrentState(0)
	assert.Equal(t, "run", state)
}

func TestAnimator_CrossFadeWhileCrossFadingCommitsFirst(t *testing.T) {
	var commits []string
	a := newTestAnimator(t, WithCommitCallback(func(name string, layerIndex int, state string) {
		assert.Equal(t, "hero", name)
		assert.Equal(t, 0, layerIndex)
		commits = append(commits, state)
	}))
	require.NoError(t, a.Play("idle", 0, 0))
	require.NoError(t, a.CrossFadeInFixedDuration("run", 0, 1, 0))
	a.Update(0.25)

	require.NoError(t, a.CrossFadeInFixedDuration("idle", 0, 1, 0))
	assert.Equal(t, []string{"run"}, commits)

	d, _ := a.Layer(0)
	assert.Equal(t, "run", d.SrcPlayData.StateName)
	assert.Equal(t, "idle", d.DestPlayData.StateName)
	assert.True(t, a.IsCrossFading(0))

	assert.Equal(t, 1, a.Update(0), "the forced commit is reported by the next update")
	assert.Equal(t, 0, a.Update(0))
}

func TestAnimator_CrossFadeToUsesLayerDefaults(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.SetLayerCrossFade(0, 0.5, true, "linear"))
	require.NoError(t, a.Play("idle", 0, 0))
	require.NoError(t, a.CrossFadeTo("run", 0))

	d, _ := a.Layer(0)
	assert.Equal(t, layer.LayerStateFixedCrossFading, d.LayerState)
	assert.Equal(t, float32(0.5), d.CrossFadeTransitionInfo.Duration)

	assert.Error(t, a.SetLayerCrossFade(0, 1, false, "wobble"))
}

func TestAnimator_CancelCrossFade(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.Play("idle", 0, 0))
	require.NoError(t, a.CrossFadeInFixedDuration("run", 0, 1, 0))
	a.Update(0.5)

	require.NoError(t, a.CancelCrossFade(0))
	assert.False(t, a.IsCrossFading(0))
	a.Update(0.1)
	assert.InDelta(t, 0, poseFloat(t, a, keyX), 1e-5)
	assert.ErrorIs(t, a.CancelCrossFade(3), ErrLayerIndex)
}

func TestAnimator_CrossFadeDefaultsMissingProperties(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.Play("ramp", 0, 0))
	require.NoError(t, a.CrossFadeInFixedDuration("wave", 0, 1, 0))

	a.Update(0.75)
	// x is only on ramp (7.5 at 0.75s) and blends toward its first frame 0; y is only on wave.
	assert.InDelta(t, 7.5*0.25, poseFloat(t, a, keyX), 1e-5)
	assert.InDelta(t, 8, poseFloat(t, a, keyY), 1e-5)
}

func TestAnimator_LayersOverrideByWeight(t *testing.T) {
	a := newTestAnimator(t)
	upper := a.AddLayer("upper", 0.5)
	require.NoError(t, a.AddState(upper, State{Name: "run", Clip: constClip("run", "x", 10, 2)}))

	require.NoError(t, a.Play("idle", 0, 0))
	require.NoError(t, a.Play("run", upper, 0))
	a.Update(0.1)
	assert.InDelta(t, 5, poseFloat(t, a, keyX), 1e-5)

	require.NoError(t, a.SetLayerWeight(upper, 1))
	a.Update(0.1)
	assert.InDelta(t, 10, poseFloat(t, a, keyX), 1e-5)

	require.NoError(t, a.SetLayerWeight(upper, 0))
	a.Update(0.1)
	assert.InDelta(t, 0, poseFloat(t, a, keyX), 1e-5)

	idx, ok := a.LayerIndex("upper")
	assert.True(t, ok)
	assert.Equal(t, upper, idx)
	_, ok = a.LayerIndex("legs")
	assert.False(t, ok)
}

func TestAnimator_Errors(t *testing.T) {
	a := newTestAnimator(t)

	assert.ErrorIs(t, a.Play("fly", 0, 0), ErrUnknownState)
	assert.ErrorIs(t, a.Play("idle", 4, 0), ErrLayerIndex)
	assert.ErrorIs(t, a.CrossFade("fly", 0, 0.5, 0), ErrUnknownState)
	assert.ErrorIs(t, a.CrossFadeTo("idle", -1), ErrLayerIndex)
	assert.ErrorIs(t, a.SetLayerWeight(9, 1), ErrLayerIndex)
	assert.ErrorIs(t, a.AddState(9, State{Name: "x"}), ErrLayerIndex)
	assert.Error(t, a.AddState(0, State{Name: "empty"}))
	assert.Error(t, a.AddState(0, State{Clip: constClip("c", "x", 0, 1)}))

	_, err := a.Layer(2)
	assert.ErrorIs(t, err, ErrLayerIndex)
	_, err = a.CurrentState(2)
	assert.ErrorIs(t, err, ErrLayerIndex)
	assert.False(t, a.IsCrossFading(2))
	assert.Zero(t, a.CrossFadeProgress(2))
}

func TestAnimator_AddStatePrimesClip(t *testing.T) {
	tr := curve.NewTrack(curve.WithKeys(curve.NewKeyframe(0, curve.Float(1), curve.InterpolationLinear)))
	a := NewAnimator()
	idx := a.AddLayer("base", 1)
	require.NoError(t, a.AddState(idx, State{Name: "s", Clip: clip.NewClip("c", clip.WithCurve("root", "x", tr))}))

	_, ok := tr.FirstFrameValue()
	assert.True(t, ok)
}

func TestAnimator_SnapshotRestore(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.Play("ramp", 0, 0))
	a.Update(0.5)
	require.NoError(t, a.CrossFadeInFixedDuration("run", 0, 1, 0.25))
	a.Update(0.25)

	snap := a.Snapshot()
	assert.Equal(t, "hero", snap.Animator)
	require.Len(t, snap.Layers, 1)
	assert.Equal(t, "fixed-crossfading", snap.Layers[0].LayerState)
	assert.Equal(t, "ramp", snap.Layers[0].State)
	assert.Equal(t, "run", snap.Layers[0].DestState)

	b := newTestAnimator(t)
	require.NoError(t, b.Restore(snap))
	assert.Equal(t, snap, b.Snapshot())
	assert.True(t, b.IsCrossFading(0))
	assert.InDelta(t, a.CrossFadeProgress(0), b.CrossFadeProgress(0), 1e-6)
	assert.InDelta(t, poseFloat(t, a, keyX), poseFloat(t, b, keyX), 1e-5)

	// Both finish the fade on the same step.
	assert.Equal(t, a.Update(0.75), b.Update(0.75))
	assert.InDelta(t, poseFloat(t, a, keyX), poseFloat(t, b, keyX), 1e-5)
}

func TestAnimator_RestoreClampsLayerWeight(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.Play("idle", 0, 0))

	snap := a.Snapshot()
	snap.Layers[0].Weight = 3
	require.NoError(t, a.Restore(snap))
	assert.Equal(t, float32(1), a.Snapshot().Layers[0].Weight)

	snap.Layers[0].Weight = -2
	require.NoError(t, a.Restore(snap))
	assert.Equal(t, float32(0), a.Snapshot().Layers[0].Weight)
}

func TestAnimator_RestoreRejectsMismatch(t *testing.T) {
	a := newTestAnimator(t)
	require.NoError(t, a.Play("idle", 0, 0))

	snap := a.Snapshot()
	snap.Layers[0].State = "fly"

	b := newTestAnimator(t)
	require.NoError(t, b.Play("run", 0, 0))
	assert.ErrorIs(t, b.Restore(snap), ErrUnknownState)
	state, _ := b.CurrentState(0)
	assert.Equal(t, "run", state, "a rejected snapshot leaves the animator untouched")

	snap.Layers = append(snap.Layers, snap.Layers[0])
	assert.ErrorIs(t, b.Restore(snap), ErrLayerIndex)
}

func TestNewAnimatorFromConfig(t *testing.T) {
	cfg, err := config.ParseAnimatorConfig([]byte(`
layers:
  - name: base
    default_state: idle
    cross_fade: {duration: 0.5, fixed: true, easing: linear}
    states:
      - {name: idle, clip: idle}
      - {name: run, clip: run, speed: 2, wrap: once}
`))
	require.NoError(t, err)

	clips := map[string]clip.Clip{
		"idle": constClip("idle", "x", 0, 1),
		"run":  constClip("run", "x", 10, 2),
	}
	a, err := NewAnimatorFromConfig(cfg, clips, WithName("cfg"))
	require.NoError(t, err)
	assert.Equal(t, "cfg", a.Name())
	assert.Equal(t, 1, a.LayerCount())

	state, _ := a.CurrentState(0)
	assert.Equal(t, "idle", state)

	require.NoError(t, a.CrossFadeTo("run", 0))
	d, _ := a.Layer(0)
	assert.Equal(t, layer.LayerStateFixedCrossFading, d.LayerState)
	assert.Equal(t, float32(2), d.DestPlayData.Speed)
	assert.Equal(t, clip.WrapModeOnce, d.DestPlayData.WrapMode)

	delete(clips, "run")
	_, err = NewAnimatorFromConfig(cfg, clips)
	assert.ErrorIs(t, err, ErrUnknownClip)
}
