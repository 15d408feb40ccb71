package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MikeTheGreat/PersonalTool/internal/statement"
)

// FileName is the default config file name.
const FileName = "personaltool.yaml"

// Config represents the top-level personaltool.yaml configuration.
type Config struct {
	Log     LogConfig               `yaml:"log"`
	Output  OutputConfig            `yaml:"output"`
	Vendors map[string]VendorConfig `yaml:"vendors,omitempty"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Verbose bool `yaml:"verbose"`
}

// OutputConfig controls where converted files go.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty means next to the source
}

// VendorConfig overrides parts of a built-in statement format.
type VendorConfig struct {
	AccountName  string `yaml:"account_name,omitempty"`
	YearRollover string `yaml:"year_rollover,omitempty"` // "december-anchor" or "any-anchor"
}

// Load reads a personaltool.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config that spells out the built-in vendor settings.
func Default() *Config {
	cfg := &Config{Vendors: make(map[string]VendorConfig)}
	reg := statement.DefaultRegistry()
	for _, name := range reg.Names() {
		v := reg.Get(name)
		cfg.Vendors[name] = VendorConfig{
			AccountName:  v.AccountName,
			YearRollover: v.Rollover.String(),
		}
	}
	return cfg
}

// Apply returns reg with each configured vendor override applied. Vendors
// are copied, so reg itself is left untouched.
func (c *Config) Apply(reg *statement.Registry) (*statement.Registry, error) {
	out := statement.NewRegistry()
	for _, name := range reg.Names() {
		v := *reg.Get(name)
		if vc, ok := c.Vendors[name]; ok {
			if vc.AccountName != "" {
				v.AccountName = vc.AccountName
			}
			if vc.YearRollover != "" {
				r, err := statement.ParseRollover(vc.YearRollover)
				if err != nil {
					return nil, fmt.Errorf("vendor %s: %w", name, err)
				}
				v.Rollover = r
			}
		}
		out.Register(&v)
	}

	var unknown []string
	for name := range c.Vendors {
		if reg.Get(name) == nil {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown vendors in config: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
