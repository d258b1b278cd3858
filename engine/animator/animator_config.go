package animator

import (
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/engine/clip"
	"github.com/Carmen-Shannon/oxy-anim/engine/config"
)

// NewAnimatorFromConfig builds an Animator from a validated config. Layers and states are added in
// config order and each layer with a default state starts playing it.
//
// Parameters:
//   - cfg: the animator config
//   - clips: the available clips by name
//   - options: variadic list of AnimatorBuilderOption functions applied before the layers are added
//
// Returns:
//   - Animator: the configured animator
//   - error: ErrUnknownClip if a state names a missing clip, or any layer setup error
func NewAnimatorFromConfig(cfg *config.AnimatorConfig, clips map[string]clip.Clip, options ...AnimatorBuilderOption) (Animator, error) {
	a := NewAnimator(options...)

	for _, lc := range cfg.Layers {
		idx := a.AddLayer(lc.Name, lc.LayerWeight())
		if err := a.SetLayerCrossFade(idx, lc.CrossFade.Duration, lc.CrossFade.Fixed, lc.CrossFade.Easing); err != nil {
			return nil, err
		}

		for _, sc := range lc.States {
			c, ok := clips[sc.Clip]
			if !ok {
				return nil, fmt.Errorf("%w: %q for state %q on layer %q", ErrUnknownClip, sc.Clip, sc.Name, lc.Name)
			}
			s := State{
				Name:     sc.Name,
				Clip:     c,
				Speed:    sc.StateSpeed(),
				WrapMode: wrapModeFor(sc.Wrap),
			}
			if err := a.AddState(idx, s); err != nil {
				return nil, err
			}
		}

		if lc.DefaultState != "" {
			if err := a.Play(lc.DefaultState, idx, 0); err != nil {
				return nil, err
			}
		}
	}

	log.Printf("[Animator] %q built from config with %d layers", a.Name(), a.LayerCount())
	return a, nil
}

// wrapModeFor maps a configured wrap name onto a WrapMode. Empty defers to the clip.
func wrapModeFor(name string) clip.WrapMode {
	switch strings.ToLower(name) {
	case "loop":
		return clip.WrapModeLoop
	case "once":
		return clip.WrapModeOnce
	default:
		return clip.WrapModeDefault
	}
}
