package animator

import "github.com/Carmen-Shannon/oxy-anim/common"

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithName is an option builder that sets the Animator's name, used in snapshots, commit callbacks and logs.
//
// Parameters:
//   - name: the animator name
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the name option to an animator
func WithName(name string) AnimatorBuilderOption {
	return func(a *animator) {
		a.name = name
	}
}

// WithEasing is an option builder that sets the cross-fade easing inherited by layers added afterwards.
// A nil function is ignored.
//
// Parameters:
//   - fn: the easing function
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the easing option to an animator
func WithEasing(fn common.EasingFunc) AnimatorBuilderOption {
	return func(a *animator) {
		if fn != nil {
			a.easing = fn
		}
	}
}

// WithCrossFadeDefaults is an option builder that sets the CrossFadeTo defaults inherited by layers
// added afterwards.
//
// Parameters:
//   - duration: the cross-fade length
//   - fixed: true if duration is in seconds, false if normalized to the destination clip length
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the cross-fade defaults to an animator
func WithCrossFadeDefaults(duration float32, fixed bool) AnimatorBuilderOption {
	return func(a *animator) {
		a.crossFadeDuration = duration
		a.crossFadeFixed = fixed
	}
}

// WithCommitCallback is an option builder that registers a function called whenever a cross-fade commits.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the callback option to an animator
func WithCommitCallback(fn CommitFunc) AnimatorBuilderOption {
	return func(a *animator) {
		a.onCommit = fn
	}
}
