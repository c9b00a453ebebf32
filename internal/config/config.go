package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config is the top-level gitblit-mcp configuration, corresponding to
// .gitblit-mcp.yml.
type Config struct {
	// GitblitURL is the base URL of the Gitblit instance, e.g.
	// http://gitblit.example.com:8080. The Search API Plugin must be
	// installed there.
	GitblitURL string `yaml:"gitblit_url" koanf:"gitblit_url"`

	// Host and Port are only used by the SSE transport.
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`

	// RepoCacheTTL is how long, in seconds, the cached repository name
	// list stays valid before validation forces a refetch.
	RepoCacheTTL int `yaml:"repo_cache_ttl" koanf:"repo_cache_ttl"`

	// RequestTimeout is the per-request timeout, in seconds, for calls
	// to the Gitblit backend.
	RequestTimeout int `yaml:"request_timeout" koanf:"request_timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:           "0.0.0.0",
		Port:           8000,
		RepoCacheTTL:   300,
		RequestTimeout: 30,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (GITBLIT_MCP_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: GITBLIT_MCP_GITBLIT_URL -> gitblit_url, etc.
	if err := k.Load(env.Provider("GITBLIT_MCP_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GITBLIT_MCP_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.GitblitURL = strings.TrimRight(cfg.GitblitURL, "/")

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.GitblitURL == "" {
		return fmt.Errorf("gitblit_url is required: set it in the config file or via GITBLIT_MCP_GITBLIT_URL")
	}

	parsed, err := url.Parse(c.GitblitURL)
	if err != nil {
		return fmt.Errorf("invalid gitblit_url %q: %w", c.GitblitURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid gitblit_url %q: must be http:// or https://", c.GitblitURL)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.RepoCacheTTL <= 0 {
		return fmt.Errorf("repo_cache_ttl must be positive, got %d", c.RepoCacheTTL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %d", c.RequestTimeout)
	}

	return nil
}

// APIBaseURL returns the base URL of the Search API Plugin endpoints.
func (c *Config) APIBaseURL() string {
	return c.GitblitURL + "/api/mcp-server"
}
