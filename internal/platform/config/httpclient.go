package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// HTTPClient tunes the outbound resty clients. All fields are optional; zero
// values fall back to DefaultHTTPClient. Automatic retries are deliberately
// not configurable: recovery is always a manual user re-attempt.
type HTTPClient struct {
	Debug   bool          `yaml:"debug"`
	Timeout time.Duration `yaml:"timeout"`
	Proxy   string        `yaml:"proxy"`
	TLS     struct {
		Verify *bool `yaml:"verify"`
	} `yaml:"tls"`
}

// DefaultHTTPClient returns the tuning used when no file is provided.
func DefaultHTTPClient() HTTPClient {
	return HTTPClient{Timeout: 30 * time.Second}
}

// LoadHTTPClient reads an optional YAML tuning file. An empty path returns
// the defaults; a missing file is an error so typos surface at startup.
func LoadHTTPClient(path string) (HTTPClient, error) {
	cfg := DefaultHTTPClient()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read http client config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse http client config: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultHTTPClient().Timeout
	}
	return cfg, nil
}

// TLSVerify reports whether TLS verification is enabled (default true).
func (c HTTPClient) TLSVerify() bool {
	if c.TLS.Verify == nil {
		return true
	}
	return *c.TLS.Verify
}
