package ccd

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the tuning knobs of the continuous collision pass.
type Settings struct {
	// EnableResweep reruns the narrow phase on every constraint
	// attached to a particle that moved mid-pass. Disabling it falls
	// back to updating the existing manifold in place, which is
	// cheaper and may miss secondary impacts.
	EnableResweep bool `yaml:"enable_resweep"`

	// AllowClipping freezes a constraint's bodies in place when its
	// impulse budget runs out, trading kinetic energy for a
	// no-tunneling guarantee. Disabling it keeps the post-impulse
	// velocities and re-projects the end positions instead.
	AllowClipping bool `yaml:"allow_clipping"`

	// MaxProcessCount is the number of impulses a single constraint
	// may receive per step. Must be at least 1.
	MaxProcessCount int `yaml:"max_process_count"`

	// EnableThresholdBoundsScale scales the per-axis motion thresholds
	// that decide whether a pair needs sweeping. Zero sweeps every
	// pair, a negative value disables the pass.
	EnableThresholdBoundsScale float64 `yaml:"enable_threshold_bounds_scale"`

	// AllowedDepthBoundsScale scales geometry bounds into the
	// penetration depth below which an impact is shallow enough to
	// leave to the discrete solver.
	AllowedDepthBoundsScale float64 `yaml:"allowed_depth_bounds_scale"`

	// CharacteristicTimeRatio scales the free-fall time used by the
	// resting dependency heuristic.
	CharacteristicTimeRatio float64 `yaml:"characteristic_time_ratio"`
}

// DefaultSettings returns the tuning used when no settings file is
// loaded.
func DefaultSettings() Settings {
	return Settings{
		EnableResweep:              true,
		AllowClipping:              true,
		MaxProcessCount:            1,
		EnableThresholdBoundsScale: 0.4,
		AllowedDepthBoundsScale:    0.05,
		CharacteristicTimeRatio:    1.0,
	}
}

// Config is the process-wide tuning. A Manager copies it once at the
// start of each pass, so mid-pass changes take effect on the next step.
var Config = DefaultSettings()

// ReadSettings decodes Settings from YAML. Keys absent from the
// document keep their default values.
func ReadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// LoadSettings reads a YAML settings file into Config.
func LoadSettings(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := ReadSettings(f)
	if err != nil {
		return err
	}
	Config = s
	return nil
}
