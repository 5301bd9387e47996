// Package config loads tool configuration from defaults, an optional
// layerlint.toml, environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the application.
type Config struct {
	Workspace   string   `koanf:"workspace"` // analyzed project root
	Src         string   `koanf:"src"`       // source directory under the workspace
	Layers      []string `koanf:"layers"`    // layer order, earliest first; rank = position
	Output      string   `koanf:"output"`    // directory for DOT/PNG/report output
	Render      bool     `koanf:"render"`    // rasterize the DOT file with graphviz
	WebMode     bool     `koanf:"web"`
	Port        int      `koanf:"port"`
	Watch       bool     `koanf:"watch"`
	OpenBrowser bool     `koanf:"open"`
	JSONLogs    bool     `koanf:"json-logs"`
	VerboseCnt  int      `koanf:"verbose"`
}

// Load loads configuration from defaults, config file, environment
// variables, and flags. Priority: Flags > Env > Config File > Defaults.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"workspace": ".",
		"src":       "src",
		"layers":    []string{"stream", "providers", "types", "utils"},
		"output":    "docs/architecture/dependencies",
		"render":    true,
		"web":       false,
		"port":      8080,
		"watch":     false,
		"open":      true,
		"json-logs": false,
		"verbose":   0,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional) - layerlint.toml
	// Ignore errors here as the file might not exist
	_ = k.Load(file.Provider("layerlint.toml"), toml.Parser())

	// 3. Environment Variables
	// Prefix: LAYERLINT_ (e.g., LAYERLINT_PORT=9090)
	if err := k.Load(env.Provider("LAYERLINT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "LAYERLINT_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.Layers) == 0 {
		return nil, fmt.Errorf("at least one layer must be configured")
	}

	return &cfg, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
