// Package layer holds the per-layer playback record of an animator: two play data slots, the
// layer state tag and the cross-fade bookkeeping.
package layer

// LayerData is the playback state of one animator layer.
//
// A layer always owns exactly two PlayData records. SrcPlayData is the state currently playing and
// DestPlayData is the state being blended toward during a cross-fade. Completing a cross-fade calls
// SwitchPlayData so the destination becomes the source, and the old source record is recycled as
// the next destination.
type LayerData struct {
	SrcPlayData  *PlayData
	DestPlayData *PlayData

	LayerState LayerState

	// CrossFadeTransitionInfo is the cross-fade currently in flight.
	CrossFadeTransitionInfo TransitionInfo

	// ManuallyTransition is the reusable descriptor filled by explicit cross-fade requests.
	ManuallyTransition *Transition

	// CrossCurveMark is a generation counter bumped each time the set of curves blended by a
	// cross-fade is rebuilt.
	CrossCurveMark int
}

// NewLayerData creates a LayerData in LayerStateStandby with both play data records and the manual
// transition allocated.
//
// Returns:
//   - *LayerData: the new layer data
func NewLayerData() *LayerData {
	return &LayerData{
		SrcPlayData:        &PlayData{},
		DestPlayData:       &PlayData{},
		LayerState:         LayerStateStandby,
		ManuallyTransition: &Transition{},
	}
}

// SwitchPlayData swaps the roles of the source and destination records. The records themselves are
// not copied, so a pointer held to either one keeps referring to the same record.
func (l *LayerData) SwitchPlayData() {
	l.SrcPlayData, l.DestPlayData = l.DestPlayData, l.SrcPlayData
}
