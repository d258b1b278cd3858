package animator

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/clip"
	"github.com/Carmen-Shannon/oxy-anim/engine/layer"
)

var (
	// ErrUnknownState is returned when a state name is not registered on the target layer.
	ErrUnknownState = errors.New("unknown animator state")

	// ErrLayerIndex is returned when a layer index is out of range.
	ErrLayerIndex = errors.New("layer index out of range")

	// ErrUnknownClip is returned when a configured state references a clip that was not supplied.
	ErrUnknownClip = errors.New("unknown clip")
)

// State is a named clip registered on a layer.
type State struct {
	Name string
	Clip clip.Clip

	// Speed scales playback; zero means 1.
	Speed float32

	// WrapMode overrides the clip's wrap mode unless it is clip.WrapModeDefault.
	WrapMode clip.WrapMode
}

// layerEntry is the animator's bookkeeping for one layer.
type layerEntry struct {
	name   string
	weight float32
	data   *layer.LayerData
	states map[string]*State

	// Cross-fade defaults used by CrossFadeTo.
	easing            common.EasingFunc
	crossFadeDuration float32
	crossFadeFixed    bool
}

func (l *layerEntry) crossFading() bool {
	return l.data.LayerState == layer.LayerStateCrossFading || l.data.LayerState == layer.LayerStateFixedCrossFading
}

// crossFadeSeconds converts the in-flight cross-fade duration to seconds.
func (l *layerEntry) crossFadeSeconds() float32 {
	info := l.data.CrossFadeTransitionInfo
	if l.data.LayerState == layer.LayerStateFixedCrossFading {
		return info.Duration
	}
	dest := l.data.DestPlayData
	if dest.Clip == nil {
		return 0
	}
	return info.Duration * dest.Clip.Length()
}

// crossFadeProgress returns the linear progress of the in-flight cross-fade in [0, 1].
func (l *layerEntry) crossFadeProgress() float32 {
	if !l.crossFading() {
		return 0
	}
	seconds := l.crossFadeSeconds()
	if seconds <= 0 {
		return 1
	}
	return common.Clamp(l.data.DestPlayData.Elapsed/seconds, 0, 1)
}
