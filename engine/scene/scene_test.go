package scene

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/clip"
	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
	"github.com/Carmen-Shannon/oxy-anim/engine/metrics"
	"github.com/Carmen-Shannon/oxy-anim/engine/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedClips are shared by every test animator so parallel updates exercise concurrent sampling.
var sharedClips = map[string]clip.Clip{
	"idle": clip.NewClip("idle", clip.WithCurve("root", "x", curve.NewTrack(curve.WithKeys(
		curve.NewKeyframe(0, curve.Float(0), curve.InterpolationLinear),
		curve.NewKeyframe(1, curve.Float(0), curve.InterpolationLinear),
	)))),
	"ramp": clip.NewClip("ramp", clip.WithCurve("root", "x", curve.NewTrack(curve.WithKeys(
		curve.NewKeyframe(0, curve.Float(0), curve.InterpolationLinear),
		curve.NewKeyframe(1, curve.Float(10), curve.InterpolationLinear),
	)))),
}

func newAnimator(t *testing.T, name string) animator.Animator {
	t.Helper()
	a := animator.NewAnimator(animator.WithName(name))
	base := a.AddLayer("base", 1)
	require.NoError(t, a.AddState(base, animator.State{Name: "idle", Clip: sharedClips["idle"]}))
	require.NoError(t, a.AddState(base, animator.State{Name: "ramp", Clip: sharedClips["ramp"]}))
	require.NoError(t, a.Play("ramp", base, 0))
	return a
}

func TestScene_AddGetRemove(t *testing.T) {
	s := NewScene("registry", WithUpdateWorkers(2))
	defer s.Release()

	a := newAnimator(t, "a")
	b := newAnimator(t, "b")
	idA := s.Add(a)
	idB := s.Add(b)
	assert.NotEqual(t, idA, idB)
	assert.Equal(t, 2, s.Count())
	assert.Same(t, a, s.Get(idA))
	assert.Equal(t, []uint64{idA, idB}, s.IDs())

	s.Remove(idA)
	assert.Nil(t, s.Get(idA))
	assert.Equal(t, 1, s.Count())
	s.Remove(999)

	s.Clear()
	assert.Zero(t, s.Count())
}

func TestScene_Options(t *testing.T) {
	a := newAnimator(t, "a")
	s := NewScene("options", WithActive(true), WithAnimators(a), WithUpdateWorkers(0))
	defer s.Release()

	assert.True(t, s.Active())
	assert.Equal(t, "options", s.Name())
	assert.Same(t, a, s.Get(1))

	s.SetActive(false)
	s.SetName("renamed")
	assert.False(t, s.Active())
	assert.Equal(t, "renamed", s.Name())
}

func TestScene_UpdateAdvancesEveryAnimator(t *testing.T) {
	s := NewScene("parallel", WithUpdateWorkers(4))
	defer s.Release()

	var ids []uint64
	for i := range 32 {
		ids = append(ids, s.Add(newAnimator(t, fmt.Sprintf("a%d", i))))
	}

	assert.Equal(t, 0, s.Update(0.25))
	for _, id := range ids {
		v := s.Get(id).Pose()["root/x"]
		assert.InDelta(t, 2.5, v.V[0], 1e-5)
	}
}

func TestScene_UpdateCountsCommits(t *testing.T) {
	s := NewScene("commits", WithUpdateWorkers(2))
	defer s.Release()

	for i := range 3 {
		a := newAnimator(t, fmt.Sprintf("a%d", i))
		require.NoError(t, a.CrossFadeInFixedDuration("idle", 0, 0.5, 0))
		s.Add(a)
	}

	assert.Equal(t, 0, s.Update(0.25))
	assert.Equal(t, 3, s.Update(0.25))

	var buf bytes.Buffer
	require.NoError(t, metrics.WritePrometheus(&buf))
	assert.Contains(t, buf.String(), `oxy_anim_crossfade_commits_total{scene="commits"} 3`)
	assert.Contains(t, buf.String(), `oxy_anim_updates_total{scene="commits"} 6`)
	assert.Contains(t, buf.String(), `oxy_anim_animators{scene="commits"} 3`)
}

func TestScene_UpdateAfterReleaseIsNoop(t *testing.T) {
	s := NewScene("released", WithUpdateWorkers(1))
	s.Add(newAnimator(t, "a"))
	s.Release()
	s.Release()
	assert.Equal(t, 0, s.Update(0.1))
}

func TestScene_Snapshots(t *testing.T) {
	store := snapshot.NewStore()

	s := NewScene("save", WithUpdateWorkers(2))
	defer s.Release()
	s.Add(newAnimator(t, "hero"))
	s.Add(newAnimator(t, "villain"))
	s.Update(0.4)
	require.NoError(t, s.SaveSnapshots(store))

	other := NewScene("save", WithUpdateWorkers(2))
	defer other.Release()
	hero := newAnimator(t, "hero")
	extra := newAnimator(t, "extra")
	other.Add(hero)
	other.Add(extra)

	n, err := other.LoadSnapshots(store)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 4, hero.Pose()["root/x"].V[0], 1e-5)

	bad := NewScene("bad name", WithUpdateWorkers(1))
	defer bad.Release()
	bad.Add(newAnimator(t, "hero"))
	assert.Error(t, bad.SaveSnapshots(store))
}

func TestScene_SnapshotsOfUnnamedAnimatorsStayApart(t *testing.T) {
	store := snapshot.NewStore()
	s := NewScene("unnamed", WithUpdateWorkers(1))
	defer s.Release()

	unnamed := func(offset float32) animator.Animator {
		a := animator.NewAnimator()
		base := a.AddLayer("base", 1)
		require.NoError(t, a.AddState(base, animator.State{Name: "ramp", Clip: sharedClips["ramp"]}))
		require.NoError(t, a.Play("ramp", base, offset))
		return a
	}
	first := unnamed(0)
	second := unnamed(0.5)
	s.Add(first)
	s.Add(second)
	s.Update(0)
	require.NoError(t, s.SaveSnapshots(store))

	s.Update(0.25)
	n, err := s.LoadSnapshots(store)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 0, first.Pose()["root/x"].V[0], 1e-5)
	assert.InDelta(t, 5, second.Pose()["root/x"].V[0], 1e-5)
}

func TestScene_SaveSnapshotsRejectsDuplicateNames(t *testing.T) {
	store := snapshot.NewStore()
	s := NewScene("dupes", WithUpdateWorkers(1))
	defer s.Release()
	s.Add(newAnimator(t, "twin"))
	s.Add(newAnimator(t, "twin"))

	err := s.SaveSnapshots(store)
	assert.ErrorIs(t, err, ErrSnapshotKeyConflict)
	_, ok, err := store.Load("dupes_twin")
	require.NoError(t, err)
	assert.False(t, ok)
}
