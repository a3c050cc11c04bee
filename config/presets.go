package config

import (
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/lint"
)

// Preset names.
const (
	PresetRecommended = "recommended"
	PresetStrict      = "strict"
)

// Presets lists the preset names accepted by Preset.
var Presets = []string{PresetRecommended, PresetStrict}

// Recommended returns the default configuration with every rule in reg
// listed explicitly at error severity without options.
func Recommended(reg *lint.Registry) *Config {
	cfg := Default()
	for _, name := range reg.Names() {
		cfg.Rules[name] = RuleConfig{Severity: lint.SeverityError.String()}
	}
	return cfg
}

// Preset returns the named preset. Both presets currently enable every
// registered rule at error severity; strict also lints plain .js files.
func Preset(name string, reg *lint.Registry) (*Config, error) {
	if reg == nil {
		return nil, errors.New(errors.CodeInvalidInput, "rule registry is nil")
	}

	switch name {
	case PresetRecommended:
		return Recommended(reg), nil
	case PresetStrict:
		cfg := Recommended(reg)
		if !slices.Contains(cfg.Extensions, ".js") {
			cfg.Extensions = append(cfg.Extensions, ".js")
		}
		return cfg, nil
	default:
		return nil, errors.Newf(errors.CodeInvalidInput, "unknown preset %q", name).
			WithContext("presets", Presets)
	}
}

// Encode renders the configuration as CUE source that Parse accepts.
func (c *Config) Encode() ([]byte, error) {
	value := cuecontext.New().Encode(c)
	if err := value.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to encode configuration")
	}

	node := value.Syntax(cue.Concrete(true))
	if st, ok := node.(*ast.StructLit); ok {
		node = &ast.File{Decls: st.Elts}
	}

	out, err := format.Node(node)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to format configuration")
	}
	return out, nil
}
