package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"go-avril/theory"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// KeyConfig names the key both voices walk in
type KeyConfig struct {
	Tonic  string `yaml:"tonic"`
	Octave int    `yaml:"octave"`
	Scale  string `yaml:"scale"`
}

// VoiceConfig defines one melodic voice
type VoiceConfig struct {
	Name         string `yaml:"name"`
	Channel      int    `yaml:"channel"` // 1-16
	Program      int    `yaml:"program"`
	Start        int    `yaml:"start"` // scale steps from the tonic
	QuantumBeats int    `yaml:"quantum_beats"`
}

// OutputConfig defines the synth MIDI output
type OutputConfig struct {
	PortPrefix string `yaml:"port_prefix"`
	Velocity   int    `yaml:"velocity"`
}

// Config is the main configuration structure
type Config struct {
	Seed              string        `yaml:"seed"`
	Beat              time.Duration `yaml:"beat"`
	PhraseBeats       int           `yaml:"phrase_beats"`
	PhraseRepetitions int           `yaml:"phrase_repetitions"`
	Phrases           int           `yaml:"phrases"` // 0 plays forever
	ActiveSensing     time.Duration `yaml:"active_sensing"`
	Key               KeyConfig     `yaml:"key"`
	Output            OutputConfig  `yaml:"output"`
	Voices            []VoiceConfig `yaml:"voices"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Seed:              "frosted glass",
		Beat:              230 * time.Millisecond,
		PhraseBeats:       16,
		PhraseRepetitions: 2,
		Phrases:           6,
		ActiveSensing:     250 * time.Millisecond,
		Key: KeyConfig{
			Tonic:  "D",
			Octave: 4,
			Scale:  "ryukyu",
		},
		Output: OutputConfig{
			PortPrefix: "FLUID",
			Velocity:   0x40,
		},
		Voices: []VoiceConfig{
			{Name: "treble", Channel: 1, Start: 7, QuantumBeats: 1},
			{Name: "bass", Channel: 2, Start: -10, QuantumBeats: 2},
		},
	}
}

// Phrase is the length of one melodic phrase.
func (c *Config) Phrase() time.Duration {
	return c.Beat * time.Duration(c.PhraseBeats)
}

// Reseed is how long a phrase repeats before a voice draws a new one.
func (c *Config) Reseed() time.Duration {
	return c.Phrase() * time.Duration(c.PhraseRepetitions)
}

// Length is the total playing time, or 0 for endless play.
func (c *Config) Length() time.Duration {
	return c.Phrase() * time.Duration(c.Phrases)
}

// MusicalKey resolves the key section.
func (c *Config) MusicalKey() (*theory.Key, error) {
	pc, err := theory.ParsePitchClass(c.Key.Tonic)
	if err != nil {
		return nil, err
	}
	scale, err := theory.ScaleByName(c.Key.Scale)
	if err != nil {
		return nil, err
	}
	return theory.NewKey(theory.NewNote(pc, c.Key.Octave), scale), nil
}

// Validate reports the first problem with the config.
func (c *Config) Validate() error {
	switch {
	case c.Beat <= 0:
		return fmt.Errorf("%w: beat must be positive, got %v", ErrInvalid, c.Beat)
	case c.PhraseBeats <= 0:
		return fmt.Errorf("%w: phrase_beats must be positive, got %d", ErrInvalid, c.PhraseBeats)
	case c.PhraseRepetitions <= 0:
		return fmt.Errorf("%w: phrase_repetitions must be positive, got %d", ErrInvalid, c.PhraseRepetitions)
	case c.Phrases < 0:
		return fmt.Errorf("%w: phrases must not be negative, got %d", ErrInvalid, c.Phrases)
	case c.ActiveSensing < 0:
		return fmt.Errorf("%w: active_sensing must not be negative, got %v", ErrInvalid, c.ActiveSensing)
	case c.Output.Velocity < 1 || c.Output.Velocity > 127:
		return fmt.Errorf("%w: velocity must be in 1-127, got %d", ErrInvalid, c.Output.Velocity)
	case len(c.Voices) == 0:
		return fmt.Errorf("%w: no voices", ErrInvalid)
	}
	if _, err := c.MusicalKey(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	names := make(map[string]bool, len(c.Voices))
	for i, v := range c.Voices {
		switch {
		case v.Name == "":
			return fmt.Errorf("%w: voice %d has no name", ErrInvalid, i+1)
		case names[v.Name]:
			return fmt.Errorf("%w: duplicate voice %q", ErrInvalid, v.Name)
		case v.Channel < 1 || v.Channel > 16:
			return fmt.Errorf("%w: voice %q channel must be in 1-16, got %d", ErrInvalid, v.Name, v.Channel)
		case v.Program < 0 || v.Program > 127:
			return fmt.Errorf("%w: voice %q program must be in 0-127, got %d", ErrInvalid, v.Name, v.Program)
		case v.QuantumBeats <= 0:
			return fmt.Errorf("%w: voice %q quantum_beats must be positive, got %d", ErrInvalid, v.Name, v.QuantumBeats)
		}
		names[v.Name] = true
	}
	return nil
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-avril"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile reads a config file. Fields the file leaves out keep their
// defaults; unknown fields are an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
