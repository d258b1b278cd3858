package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-anim/engine/curve"
	"gopkg.in/yaml.v3"
)

// plotTrack is one row of the viewer: a labelled scalar track.
type plotTrack struct {
	Label string
	Track curve.Track
}

// trackFile is the YAML layout accepted by --tracks.
//
//	tracks:
//	  - name: bounce
//	    interpolation: hermite
//	    keys:
//	      - {time: 0, value: 0, out: 4}
//	      - {time: 1, value: 1, in: 0}
type trackFile struct {
	Tracks []trackConfig `yaml:"tracks"`
}

type trackConfig struct {
	Name          string      `yaml:"name"`
	Interpolation string      `yaml:"interpolation"`
	Keys          []keyConfig `yaml:"keys"`
}

type keyConfig struct {
	Time  float32  `yaml:"time"`
	Value float32  `yaml:"value"`
	In    *float32 `yaml:"in"`
	Out   *float32 `yaml:"out"`
}

// builtinTracks samples the same key set with every interpolation mode.
func builtinTracks() []plotTrack {
	times := []float32{0, 0.6, 1.4, 2, 3}
	values := []float32{0, 1, -0.5, 0.75, 0}
	slopes := []float32{3, 0, 0, -1, 0}

	modes := []curve.InterpolationMode{
		curve.InterpolationStep,
		curve.InterpolationLinear,
		curve.InterpolationCubicSpline,
		curve.InterpolationHermite,
	}

	out := make([]plotTrack, 0, len(modes))
	for _, mode := range modes {
		t := curve.NewTrack(curve.WithCapacity(len(times)))
		for i := range times {
			v := curve.Float(values[i])
			s := curve.Float(slopes[i])
			if mode == curve.InterpolationHermite && i == 2 {
				// One key without tangents shows the hold fallback.
				t.AddKey(curve.NewKeyframe(times[i], v, mode))
				continue
			}
			t.AddKey(curve.NewTangentKeyframe(times[i], v, s, s, mode))
		}
		out = append(out, plotTrack{Label: mode.String(), Track: t})
	}
	return out
}

// loadTracks reads scalar tracks from a YAML file.
func loadTracks(path string) ([]plotTrack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks file %s: %w", path, err)
	}

	var file trackFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tracks file %s: %w", path, err)
	}
	if len(file.Tracks) == 0 {
		return nil, fmt.Errorf("tracks file %s declares no tracks", path)
	}

	out := make([]plotTrack, 0, len(file.Tracks))
	for _, tc := range file.Tracks {
		mode, err := curve.ParseInterpolation(tc.Interpolation)
		if err != nil {
			return nil, fmt.Errorf("track %q: %w", tc.Name, err)
		}
		t := curve.NewTrack(curve.WithCapacity(len(tc.Keys)))
		for _, k := range tc.Keys {
			// Only hermite has a missing-tangent fallback; other modes read zero slopes.
			missing := curve.Float(0)
			if mode == curve.InterpolationHermite {
				missing = curve.NoTangent(curve.ValueKindFloat)
			}
			inTangent, outTangent := missing, missing
			if k.In != nil {
				inTangent = curve.Float(*k.In)
			}
			if k.Out != nil {
				outTangent = curve.Float(*k.Out)
			}
			t.AddKey(curve.NewTangentKeyframe(k.Time, curve.Float(k.Value), inTangent, outTangent, mode))
		}
		if t.KeyCount() == 0 {
			return nil, fmt.Errorf("track %q has no keys", tc.Name)
		}
		out = append(out, plotTrack{Label: tc.Name, Track: t})
	}
	return out, nil
}
