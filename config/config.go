package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-ccfollower/follower"
	"go-ccfollower/midi"
)

// Defaults applied to fields missing from older config files. Decoding is
// backward compatible: absent fields get these values, they never fail the
// load.
const (
	DefaultLabel = "Control"
	DefaultStyle = "standard"
)

// ComponentConfig is one saved control binding. Style is an explicit field;
// earlier builds encoded it as a prefix on the label string, which the
// normalization below still migrates.
type ComponentConfig struct {
	Label   string       `json:"label,omitempty"`
	Style   string       `json:"style,omitempty"`
	Mapping midi.Mapping `json:"mapping"`
}

// FollowerConfig is the saved envelope follower setup. Zero values for
// MIDIChannel, Gain and Smoothing are treated as missing and replaced with
// defaults on load.
type FollowerConfig struct {
	CCNumber    int     `json:"ccNumber"`
	MIDIChannel int     `json:"midiChannel"`
	Threshold   float32 `json:"threshold"`
	Gain        float32 `json:"gain"`
	Smoothing   float32 `json:"smoothing"`
}

// OutputConfig selects the MIDI output port by name substring.
type OutputConfig struct {
	PortName string `json:"portName,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Components []ComponentConfig `json:"components,omitempty"`
	Follower   FollowerConfig    `json:"follower"`
	Output     OutputConfig      `json:"output,omitempty"`
}

// DefaultConfig returns a config with sensible defaults: one mod-wheel
// control and a follower on CC 1, channel 1.
func DefaultConfig() *Config {
	return &Config{
		Components: []ComponentConfig{
			{
				Label:   DefaultLabel,
				Style:   DefaultStyle,
				Mapping: midi.DefaultMapping(),
			},
		},
		Follower: FollowerConfig{
			CCNumber:    1,
			MIDIChannel: 1,
			Threshold:   0,
			Gain:        1,
			Smoothing:   0.9,
		},
	}
}

// NewFollower builds a follower from the saved settings, clamped into the
// documented parameter ranges.
func (fc FollowerConfig) NewFollower() *follower.Follower {
	f := follower.New()
	f.CCNumber = fc.CCNumber & 0x7F
	f.Channel = fc.MIDIChannel
	f.SetThreshold(fc.Threshold)
	f.SetGain(fc.Gain)
	f.SetSmoothing(fc.Smoothing)
	return f
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-ccfollower"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if it
// does not exist yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads and normalizes a config file at an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	return &cfg, nil
}

// normalize fills defaults for missing fields and migrates the legacy
// "style:label" prefix encoding.
func (c *Config) normalize() {
	for i := range c.Components {
		comp := &c.Components[i]
		if comp.Style == "" && comp.Label != "" {
			if style, label, ok := splitLegacyLabel(comp.Label); ok {
				comp.Style = style
				comp.Label = label
			}
		}
		if comp.Label == "" {
			comp.Label = DefaultLabel
		}
		if comp.Style == "" {
			comp.Style = DefaultStyle
		}
		if comp.Mapping.MIDIChannel < 1 {
			comp.Mapping.MIDIChannel = 1
		}
		if comp.Mapping.Range == (midi.RangeMapping{}) {
			comp.Mapping.Range = midi.DefaultRange()
		}
	}

	if c.Follower.MIDIChannel < 1 {
		c.Follower.MIDIChannel = 1
	}
	if c.Follower.Gain == 0 {
		c.Follower.Gain = 1
	}
	if c.Follower.Smoothing == 0 {
		c.Follower.Smoothing = 0.9
	}
}

// splitLegacyLabel unpacks the old "style:label" string encoding.
func splitLegacyLabel(s string) (style, label string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], i > 0
		}
	}
	return "", "", false
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FindComponent finds a component config by label.
func (c *Config) FindComponent(label string) *ComponentConfig {
	for i := range c.Components {
		if c.Components[i].Label == label {
			return &c.Components[i]
		}
	}
	return nil
}

// AddComponent adds or updates a component config, keyed by label.
func (c *Config) AddComponent(comp ComponentConfig) {
	for i := range c.Components {
		if c.Components[i].Label == comp.Label {
			c.Components[i] = comp
			return
		}
	}
	c.Components = append(c.Components, comp)
}
