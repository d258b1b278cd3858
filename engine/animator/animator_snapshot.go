package animator

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/layer"
	"github.com/Carmen-Shannon/oxy-anim/engine/snapshot"
)

func (a *animator) Snapshot() snapshot.Snapshot {
	s := snapshot.Snapshot{
		Animator: a.name,
		Layers:   make([]snapshot.LayerSnapshot, len(a.layers)),
	}
	for i, l := range a.layers {
		d := l.data
		ls := snapshot.LayerSnapshot{
			Name:       l.name,
			Weight:     l.weight,
			LayerState: d.LayerState.String(),
		}
		if d.LayerState != layer.LayerStateStandby {
			ls.State = d.SrcPlayData.StateName
			ls.LocalTime = d.SrcPlayData.LocalTime
		}
		if l.crossFading() {
			ls.DestState = d.DestPlayData.StateName
			ls.DestTime = d.DestPlayData.LocalTime
			ls.CrossFadeElapsed = d.DestPlayData.Elapsed
			ls.CrossFadeDuration = d.CrossFadeTransitionInfo.Duration
			ls.CrossFadeOffset = d.CrossFadeTransitionInfo.Offset
		}
		s.Layers[i] = ls
	}
	return s
}

// restoredLayer is a validated layer snapshot ready to apply.
type restoredLayer struct {
	entry *layerEntry
	state layer.LayerState
	src   *State
	dest  *State
	snap  snapshot.LayerSnapshot
}

func (a *animator) Restore(s snapshot.Snapshot) error {
	if len(s.Layers) != len(a.layers) {
		return fmt.Errorf("%w: snapshot has %d layers, animator %q has %d", ErrLayerIndex, len(s.Layers), a.name, len(a.layers))
	}

	restored := make([]restoredLayer, len(s.Layers))
	for i, ls := range s.Layers {
		l := a.layers[i]
		state, err := layer.ParseLayerState(ls.LayerState)
		if err != nil {
			return fmt.Errorf("layer %q: %w", l.name, err)
		}
		r := restoredLayer{entry: l, state: state, snap: ls}

		if state != layer.LayerStateStandby {
			if _, r.src, err = a.lookup(ls.State, i); err != nil {
				return err
			}
		}
		if state == layer.LayerStateCrossFading || state == layer.LayerStateFixedCrossFading {
			if _, r.dest, err = a.lookup(ls.DestState, i); err != nil {
				return err
			}
		}
		restored[i] = r
	}

	for _, r := range restored {
		a.restoreLayer(r)
	}
	a.pendingCommits = 0
	a.buildPose()
	return nil
}

func (a *animator) restoreLayer(r restoredLayer) {
	l, d, ls := r.entry, r.entry.data, r.snap
	l.weight = common.Clamp(ls.Weight, 0, 1)

	*d.SrcPlayData = layer.PlayData{}
	*d.DestPlayData = layer.PlayData{}
	d.CrossFadeTransitionInfo = layer.TransitionInfo{}
	d.LayerState = r.state

	if r.src != nil {
		d.SrcPlayData.Reset(r.src.Name, r.src.Clip, r.src.Speed, r.src.WrapMode, 0)
		d.SrcPlayData.LocalTime = ls.LocalTime
		d.SrcPlayData.Advance(0)
		d.SrcPlayData.NormalizedWeight = 1
	}

	if r.dest != nil {
		t := d.ManuallyTransition
		*t = layer.Transition{Destination: r.dest.Name, Duration: ls.CrossFadeDuration, Offset: ls.CrossFadeOffset}
		d.CrossFadeTransitionInfo = layer.TransitionInfo{Transition: t, Duration: ls.CrossFadeDuration, Offset: ls.CrossFadeOffset}

		d.DestPlayData.Reset(r.dest.Name, r.dest.Clip, r.dest.Speed, r.dest.WrapMode, 0)
		d.DestPlayData.LocalTime = ls.DestTime
		d.DestPlayData.Elapsed = ls.CrossFadeElapsed
		d.DestPlayData.Advance(0)
		d.CrossCurveMark++
		a.applyCrossFadeWeights(l)
	}
}
