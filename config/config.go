package config

import (
	"fmt"
	"os"

	"github.com/yairfalse/kulu/types"
	"gopkg.in/yaml.v3"
)

// Mode selects between reporting and destroying. There is no zero-value
// execute path: anything other than the two literals fails validation.
type Mode string

const (
	ModeDryRun  Mode = "dry-run"
	ModeExecute Mode = "execute"
)

// ParseMode parses a mode value from flags or config
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDryRun, ModeExecute:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid mode %q (must be dry-run or execute)", s)
}

// Valid reports whether the mode is one of the two accepted values
func (m Mode) Valid() bool {
	return m == ModeDryRun || m == ModeExecute
}

// IsExecute reports whether destructive calls are allowed
func (m Mode) IsExecute() bool {
	return m == ModeExecute
}

// DefaultConcurrency bounds the region worker pool to stay under
// provider API rate limits
const DefaultConcurrency = 5

// Config is the single explicit configuration passed into the pipeline
type Config struct {
	Mode          Mode     `yaml:"mode"`
	Regions       []string `yaml:"regions,omitempty"`        // empty means discover all
	ResourceTypes []string `yaml:"resource_types,omitempty"` // empty means all three
	Concurrency   int      `yaml:"concurrency,omitempty"`
	Profile       string   `yaml:"profile,omitempty"`

	// SkipWebsiteBuckets skips empty buckets that serve a static website.
	// Off by default.
	SkipWebsiteBuckets bool `yaml:"skip_website_buckets,omitempty"`

	// MonthlyRates overrides the built-in per-type monthly cost estimates,
	// keyed by resource type
	MonthlyRates map[string]float64 `yaml:"monthly_rates,omitempty"`
}

// Default returns the conservative baseline configuration
func Default() Config {
	return Config{
		Mode:        ModeDryRun,
		Concurrency: DefaultConcurrency,
	}
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate ensures the config is complete before any API call is made
func (c *Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("invalid mode %q (must be dry-run or execute)", c.Mode)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	for _, rt := range c.ResourceTypes {
		if rt == "all" {
			continue
		}
		if _, err := types.ParseResourceType(rt); err != nil {
			return err
		}
	}
	for key := range c.MonthlyRates {
		if _, err := types.ParseResourceType(key); err != nil {
			return fmt.Errorf("monthly_rates: %w", err)
		}
	}
	return nil
}

// SelectedTypes resolves the configured resource types into adapter
// registration order, expanding the empty list and "all"
func (c *Config) SelectedTypes() []types.ResourceType {
	if len(c.ResourceTypes) == 0 {
		return types.AllResourceTypes()
	}
	selected := make(map[types.ResourceType]bool)
	for _, rt := range c.ResourceTypes {
		if rt == "all" {
			return types.AllResourceTypes()
		}
		selected[types.ResourceType(rt)] = true
	}
	var result []types.ResourceType
	for _, rt := range types.AllResourceTypes() {
		if selected[rt] {
			result = append(result, rt)
		}
	}
	return result
}

// AllRegions reports whether region discovery should run
func (c *Config) AllRegions() bool {
	if len(c.Regions) == 0 {
		return true
	}
	for _, r := range c.Regions {
		if r == "all" {
			return true
		}
	}
	return false
}
