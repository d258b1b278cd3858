// Package snapshot persists animator playback state so a session can resume mid-animation.
package snapshot

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot is the saved playback state of one animator.
type Snapshot struct {
	Animator string          `yaml:"animator"`
	Layers   []LayerSnapshot `yaml:"layers"`
}

// LayerSnapshot is the saved playback state of one layer.
type LayerSnapshot struct {
	Name   string  `yaml:"name"`
	Weight float32 `yaml:"weight"`

	// LayerState is the layer state name, see layer.LayerState.String.
	LayerState string `yaml:"layerState"`

	State     string  `yaml:"state,omitempty"`
	LocalTime float32 `yaml:"localTime"`

	// Destination fields are only set while a cross-fade is in flight.
	DestState         string  `yaml:"destState,omitempty"`
	DestTime          float32 `yaml:"destTime,omitempty"`
	CrossFadeElapsed  float32 `yaml:"crossFadeElapsed,omitempty"`
	CrossFadeDuration float32 `yaml:"crossFadeDuration,omitempty"`
	CrossFadeOffset   float32 `yaml:"crossFadeOffset,omitempty"`
}

// Marshal encodes the snapshot as YAML.
//
// Returns:
//   - []byte: the encoded snapshot
//   - error: error if encoding fails
func (s Snapshot) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a YAML snapshot.
//
// Parameters:
//   - data: the encoded snapshot
//
// Returns:
//   - Snapshot: the decoded snapshot
//   - error: error if decoding fails
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return s, nil
}
