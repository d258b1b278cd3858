package animator

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
	"github.com/Carmen-Shannon/oxy-anim/engine/layer"
)

// buildPose samples every active layer and combines the layers into a.pose.
func (a *animator) buildPose() {
	clear(a.pose)
	for _, l := range a.layers {
		d := l.data
		if d.LayerState == layer.LayerStateStandby || d.SrcPlayData.Clip == nil || l.weight <= 0 {
			continue
		}

		clear(a.srcScratch)
		d.SrcPlayData.Clip.Sample(d.SrcPlayData.ClipTime(), a.srcScratch)
		layerPose := a.srcScratch

		if l.crossFading() && d.DestPlayData.Clip != nil {
			clear(a.destScratch)
			d.DestPlayData.Clip.Sample(d.DestPlayData.ClipTime(), a.destScratch)
			a.blendCrossFade(d.DestPlayData.NormalizedWeight)
			layerPose = a.layerScratch
		}

		for key, v := range layerPose {
			if l.weight >= 1 {
				a.pose[key] = v
				continue
			}
			below, ok := a.pose[key]
			if !ok {
				below = a.defaultValue(key, v)
			}
			a.pose[key] = curve.Blend(below, v, l.weight)
		}
	}
}

// blendCrossFade blends srcScratch toward destScratch into layerScratch. A property animated on only
// one side blends against its default value.
func (a *animator) blendCrossFade(w float32) {
	clear(a.layerScratch)
	for key, src := range a.srcScratch {
		dest, ok := a.destScratch[key]
		if !ok {
			dest = a.defaultValue(key, src)
		}
		a.layerScratch[key] = curve.Blend(src, dest, w)
	}
	for key, dest := range a.destScratch {
		if _, ok := a.srcScratch[key]; ok {
			continue
		}
		a.layerScratch[key] = curve.Blend(a.defaultValue(key, dest), dest, w)
	}
}

// defaultValue returns the recorded default for key, or fallback when none of the same kind exists.
func (a *animator) defaultValue(key string, fallback curve.Value) curve.Value {
	if v, ok := a.defaults[key]; ok && v.Kind == fallback.Kind {
		return v
	}
	return fallback
}
