package common

import (
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// EasingFunc maps a linear progress value in [0, 1] to an eased progress value.
type EasingFunc func(t float64) float64

// DefaultEasing is the easing name used when none is configured.
const DefaultEasing = "linear"

var easings = map[string]EasingFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
}

// EasingByName looks up a named easing curve. Names are case-insensitive, e.g. "in-out-quad".
//
// Parameters:
//   - name: the easing name
//
// Returns:
//   - EasingFunc: the easing function, or nil if the name is unknown
//   - bool: true if the name was found
func EasingByName(name string) (EasingFunc, bool) {
	fn, ok := easings[strings.ToLower(name)]
	return fn, ok
}

// EasingNames returns the sorted list of registered easing names.
//
// Returns:
//   - []string: the easing names
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
