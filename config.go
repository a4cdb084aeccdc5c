package backdrop

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes a whole Backdrop. The zero value is the default page.
type Config struct {
	Host      HostConfig      `yaml:"host"`
	Starfield StarfieldConfig `yaml:"starfield"`
	Composer  ComposerConfig  `yaml:"composer"`
	Gradient  GradientConfig  `yaml:"gradient"`
	Sections  []SectionConfig `yaml:"sections"`
	// TintTransition is the section overlay transition. Default 420ms;
	// negative snaps.
	TintTransition time.Duration `yaml:"tintTransition"`
	// HideStarfield leaves the starfield out of the stack.
	HideStarfield bool `yaml:"hideStarfield"`
	// Debug enables per-frame stats on stderr.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a Config for a desktop page with a handful of
// placeholder sections laid out one viewport apart.
func DefaultConfig() Config {
	cfg := Config{
		Host: HostConfig{Width: 1280, Height: 800, DevicePixelRatio: 1},
	}
	variants := []Variant{VariantExperience, VariantProjects, VariantSkills, VariantEducation, VariantContact}
	top := cfg.Host.Height
	for _, v := range variants {
		cfg.Sections = append(cfg.Sections, SectionConfig{
			ID:      string(v),
			Variant: v,
			Top:     top,
			Height:  cfg.Host.Height * 0.9,
		})
		top += cfg.Host.Height
	}
	cfg.Host.DocumentHeight = top
	return cfg
}

// LoadConfig decodes YAML into a copy of DefaultConfig. Keys not present in
// data keep their defaults; a sections list replaces the default sections.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data)
}

// UnmarshalYAML decodes an RGB from a hex string such as "#1a1030".
func (c *RGB) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalYAML encodes an RGB as a hex string.
func (c RGB) MarshalYAML() (any, error) {
	return c.Hex(), nil
}
