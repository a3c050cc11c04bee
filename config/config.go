// Package config provides parsing, validation, and convenient access to
// jsxlint configuration files written in CUE (or JSON, which CUE accepts).
//
// # Basic Usage
//
// Load the configuration of a project directory:
//
//	import (
//	    "context"
//	    "github.com/input-output-hk/catalyst-forge-libs/jsxlint/config"
//	    "github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs/billy"
//	    "github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint/rules"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    fs := billy.NewOSFS("/path/to/project")
//
//	    // Falls back to the defaults when .jsxlint.cue does not exist
//	    cfg, err := config.LoadDir(ctx, fs, ".")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Build the enabled rules and their severity overrides
//	    enabled, opts, err := cfg.BuildRules(rules.Registry())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    linter := lint.NewLinter(enabled, opts...)
//	}
//
// A configuration file looks like:
//
//	version: "0.1.0"
//	extensions: [".jsx", ".tsx"]
//	ignore: ["node_modules", "dist"]
//	rules: {
//	    "no-interactive-element-without-id-classname": {
//	        severity: "warning"
//	        options: attributes: ["data-testid"]
//	    }
//	}
package config

import (
	"context"
	"path/filepath"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs"
)

// FileName is the configuration file looked up by LoadDir.
const FileName = ".jsxlint.cue"

// SeverityOff disables a rule.
const SeverityOff = "off"

// DefaultExtensions are the source file extensions linted when a
// configuration does not list any.
var DefaultExtensions = []string{".jsx", ".tsx"}

// DefaultIgnore are the path segments skipped when a configuration does not
// list any.
var DefaultIgnore = []string{"node_modules", "vendor", ".git"}

// RuleConfig configures one rule.
type RuleConfig struct {
	// Severity is "error", "warning", "info" or "off". Empty keeps the
	// rule's own severity.
	Severity string `json:"severity,omitempty"`
	// Options is passed to the rule's factory.
	Options map[string][]string `json:"options,omitempty"`
}

// Config is a decoded jsxlint configuration.
type Config struct {
	// Version is the schema version the file was written against.
	Version string `json:"version"`
	// Extensions lists the file extensions to lint.
	Extensions []string `json:"extensions,omitempty"`
	// Ignore lists path segments or glob patterns to skip.
	Ignore []string `json:"ignore,omitempty"`
	// Rules configures rules by name. Rules not listed run with defaults.
	Rules map[string]RuleConfig `json:"rules,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{Version: SchemaVersion}
	cfg.applyDefaults()
	return cfg
}

// Load reads, validates and decodes the configuration file at path.
func Load(ctx context.Context, filesystem fs.ReadFS, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCanceled, "configuration load canceled")
	}

	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeNotFound, "failed to read configuration",
			map[string]interface{}{"path": path})
	}

	return Parse(path, data)
}

// LoadDir loads FileName from dir, returning Default() when the file does
// not exist.
func LoadDir(ctx context.Context, filesystem fs.ReadFS, dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)

	exists, err := filesystem.Exists(path)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInternal, "failed to check configuration",
			map[string]interface{}{"path": path})
	}
	if !exists {
		return Default(), nil
	}

	return Load(ctx, filesystem, path)
}

func (c *Config) applyDefaults() {
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if c.Ignore == nil {
		c.Ignore = append([]string(nil), DefaultIgnore...)
	}
	if c.Rules == nil {
		c.Rules = make(map[string]RuleConfig)
	}
}
