// Package config handles site generator configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents site configuration stored in site.yml.
type Config struct {
	Bibliography string `yaml:"bibliography"` // Path to the BibTeX source file
	Output       string `yaml:"output"`       // Output root for generated HTML
	BaseURL      string `yaml:"base_url"`     // Deployment subdirectory, e.g. /albertocarraro
	SiteTitle    string `yaml:"site_title"`   // Shown in page titles and the masthead
	AuthorName   string `yaml:"author_name"`  // Sidebar author name
	AuthorBio    string `yaml:"author_bio"`   // Sidebar author byline
	ScholarURL   string `yaml:"scholar_url"`  // Google Scholar profile link on the index
}

// DefaultConfigFile is the config file name looked up when --config is not given.
const DefaultConfigFile = "site.yml"

// Environment variable overrides, applied after the config file.
const (
	EnvBibliography = "PUBGEN_BIBLIOGRAPHY"
	EnvOutput       = "PUBGEN_OUTPUT"
	EnvBaseURL      = "PUBGEN_BASE_URL"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Bibliography: "my_publications.bib",
		Output:       "docs",
		BaseURL:      "/albertocarraro",
		SiteTitle:    "Alberto Carraro, PhD",
		AuthorName:   "Alberto Carraro, PhD",
		AuthorBio:    "Teacher, trainer, scientist, researcher",
	}
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist, then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	cfg.Bibliography = ExpandTilde(cfg.Bibliography)
	cfg.Output = ExpandTilde(cfg.Output)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides config values from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvBibliography); v != "" {
		cfg.Bibliography = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
}

// Validate checks paths and the base URL shape.
func (c *Config) Validate() error {
	if c.Bibliography == "" {
		return fmt.Errorf("bibliography path must not be empty")
	}
	if c.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "/") {
		return fmt.Errorf("base_url must start with '/': %q", c.BaseURL)
	}
	return nil
}

// ExpandTilde expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
