package scene

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for updates.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithAnimators adds initial animators to the scene. IDs are assigned in argument order starting at 1.
//
// Parameters:
//   - animators: the animators to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAnimators(animators ...animator.Animator) SceneBuilderOption {
	return func(s *scene) {
		for _, a := range animators {
			s.registry[s.nextID] = a
			s.nextID++
		}
	}
}

// WithUpdateWorkers sets the number of worker goroutines used during the parallel
// update phase. Defaults to runtime.NumCPU()-1.
// Higher values may improve throughput with many animators; lower values reduce
// scheduling overhead for small scenes.
//
// Parameters:
//   - n: the number of update workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.updateWorkers = n
	}
}
