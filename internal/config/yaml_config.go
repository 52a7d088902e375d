package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Keyword lists are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Tracking TrackingConfig `yaml:"tracking"`
}

// TrackingConfig drives the scheduled rank checker.
type TrackingConfig struct {
	Interval time.Duration   `yaml:"interval"`
	Projects []ProjectConfig `yaml:"projects"`
}

// ProjectConfig is a domain with the keywords tracked for it.
type ProjectConfig struct {
	Domain   string   `yaml:"domain"`
	Keywords []string `yaml:"keywords"`
}

// DefaultTrackingInterval applies when the file leaves interval unset.
const DefaultTrackingInterval = 6 * time.Hour

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads the YAML configuration from path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Set defaults
	if cfg.Tracking.Interval <= 0 {
		cfg.Tracking.Interval = DefaultTrackingInterval
	}

	for i, p := range cfg.Tracking.Projects {
		if p.Domain == "" {
			return nil, fmt.Errorf("tracking project %d: domain is required", i)
		}
	}

	return &cfg, nil
}

// HasProjects returns true if at least one project is configured for tracking.
func (c *YAMLConfig) HasProjects() bool {
	return c != nil && len(c.Tracking.Projects) > 0
}

// GetProjectByDomain finds a tracking project by its domain.
func (c *YAMLConfig) GetProjectByDomain(domain string) *ProjectConfig {
	if c == nil {
		return nil
	}
	for i := range c.Tracking.Projects {
		if c.Tracking.Projects[i].Domain == domain {
			return &c.Tracking.Projects[i]
		}
	}
	return nil
}
