// Package config loads animator layer and state setup from YAML.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"gopkg.in/yaml.v3"
)

// DefaultCrossFadeDuration is the normalized cross-fade length used when a layer sets none.
const DefaultCrossFadeDuration float32 = 0.25

// ErrInvalidConfig is wrapped by every validation failure returned from ParseAnimatorConfig.
var ErrInvalidConfig = errors.New("invalid animator config")

// AnimatorConfig is the root of an animator YAML file.
type AnimatorConfig struct {
	Version string        `yaml:"version"`
	Layers  []LayerConfig `yaml:"layers"`
}

// LayerConfig describes one animator layer.
type LayerConfig struct {
	Name string `yaml:"name"`

	// Weight is the layer's blend weight; nil means 1.
	Weight *float32 `yaml:"weight"`

	// DefaultState is played when the animator is built. Empty leaves the layer in standby.
	DefaultState string `yaml:"default_state"`

	CrossFade CrossFadeConfig `yaml:"cross_fade"`
	States    []StateConfig   `yaml:"states"`
}

// CrossFadeConfig holds the layer's default cross-fade settings.
type CrossFadeConfig struct {
	// Duration is the cross-fade length; zero means DefaultCrossFadeDuration.
	Duration float32 `yaml:"duration"`

	// Fixed selects seconds instead of a fraction of the destination clip length.
	Fixed bool `yaml:"fixed"`

	// Easing names the curve applied to the cross-fade weight, see common.EasingNames.
	Easing string `yaml:"easing"`
}

// StateConfig binds a state name to a clip.
type StateConfig struct {
	Name string `yaml:"name"`
	Clip string `yaml:"clip"`

	// Speed is the playback speed; nil means 1.
	Speed *float32 `yaml:"speed"`

	// Wrap is "loop" or "once"; empty keeps the clip's own wrap mode.
	Wrap string `yaml:"wrap"`
}

// LayerWeight returns the configured weight or 1 when unset.
func (l LayerConfig) LayerWeight() float32 {
	if l.Weight == nil {
		return 1
	}
	return *l.Weight
}

// StateSpeed returns the configured speed or 1 when unset.
func (s StateConfig) StateSpeed() float32 {
	if s.Speed == nil {
		return 1
	}
	return *s.Speed
}

// ParseAnimatorConfig decodes and validates an animator config, filling defaults.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *AnimatorConfig: the validated config
//   - error: error if the document cannot be decoded or fails validation
func ParseAnimatorConfig(data []byte) (*AnimatorConfig, error) {
	cfg := &AnimatorConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse animator config: %w", err)
	}

	for i := range cfg.Layers {
		l := &cfg.Layers[i]
		l.CrossFade.Duration = common.Coalesce(l.CrossFade.Duration, DefaultCrossFadeDuration)
		l.CrossFade.Easing = strings.ToLower(common.Coalesce(strings.TrimSpace(l.CrossFade.Easing), common.DefaultEasing))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAnimatorConfig reads and parses an animator config file.
//
// Parameters:
//   - path: the YAML file path
//
// Returns:
//   - *AnimatorConfig: the validated config
//   - error: error if the file cannot be read or parsed
func LoadAnimatorConfig(path string) (*AnimatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read animator config %q: %w", path, err)
	}

	cfg, err := ParseAnimatorConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Version == "" {
		log.Printf("[AnimatorConfig] %s has no version field", path)
	}
	log.Printf("[AnimatorConfig] loaded %s (version=%s, layers=%d)", path, cfg.Version, len(cfg.Layers))
	return cfg, nil
}

// Validate checks names, references and enumerations. Every failure wraps ErrInvalidConfig.
//
// Returns:
//   - error: the first problem found, or nil
func (c *AnimatorConfig) Validate() error {
	layerNames := make(map[string]struct{}, len(c.Layers))
	for i, l := range c.Layers {
		if l.Name == "" {
			return fmt.Errorf("%w: layer %d has no name", ErrInvalidConfig, i)
		}
		if _, dup := layerNames[l.Name]; dup {
			return fmt.Errorf("%w: duplicate layer %q", ErrInvalidConfig, l.Name)
		}
		layerNames[l.Name] = struct{}{}

		if w := l.LayerWeight(); w < 0 || w > 1 {
			return fmt.Errorf("%w: layer %q weight %g is outside [0, 1]", ErrInvalidConfig, l.Name, w)
		}
		if l.CrossFade.Duration < 0 {
			return fmt.Errorf("%w: layer %q cross-fade duration %g is negative", ErrInvalidConfig, l.Name, l.CrossFade.Duration)
		}
		if _, ok := common.EasingByName(l.CrossFade.Easing); !ok {
			return fmt.Errorf("%w: layer %q uses unknown easing %q (known: %s)",
				ErrInvalidConfig, l.Name, l.CrossFade.Easing, strings.Join(common.EasingNames(), ", "))
		}

		stateNames := make(map[string]struct{}, len(l.States))
		for j, s := range l.States {
			if s.Name == "" {
				return fmt.Errorf("%w: layer %q state %d has no name", ErrInvalidConfig, l.Name, j)
			}
			if _, dup := stateNames[s.Name]; dup {
				return fmt.Errorf("%w: layer %q has duplicate state %q", ErrInvalidConfig, l.Name, s.Name)
			}
			stateNames[s.Name] = struct{}{}

			if s.Clip == "" {
				return fmt.Errorf("%w: layer %q state %q has no clip", ErrInvalidConfig, l.Name, s.Name)
			}
			switch strings.ToLower(s.Wrap) {
			case "", "loop", "once":
			default:
				return fmt.Errorf("%w: layer %q state %q has unknown wrap %q", ErrInvalidConfig, l.Name, s.Name, s.Wrap)
			}
		}

		if l.DefaultState != "" {
			if _, ok := stateNames[l.DefaultState]; !ok {
				return fmt.Errorf("%w: layer %q default state %q is not declared", ErrInvalidConfig, l.Name, l.DefaultState)
			}
		}
	}
	return nil
}
