package config

import (
	_ "embed"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/input-output-hk/catalyst-forge-libs/jsxlint/errors"
)

// schemaSource holds the #Config definition every file is unified with.
//
//go:embed schema.cue
var schemaSource []byte

// Parse validates and decodes configuration source. name is used in error
// messages and positions.
//
// The function performs the following steps:
// 1. Compiles the embedded schema and the source in one CUE context
// 2. Unifies the source with #Config and validates it as concrete data
// 3. Decodes the result and fills in defaults
// 4. Checks the declared version against SchemaVersion
func Parse(name string, data []byte) (*Config, error) {
	cueCtx := cuecontext.New()

	schema, err := compileSchema(cueCtx)
	if err != nil {
		return nil, err
	}

	value := cueCtx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeParseFailed, "failed to compile configuration",
			map[string]interface{}{"path": name})
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeSchemaFailed, "configuration does not match schema",
			map[string]interface{}{"path": name})
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeSchemaFailed, "failed to decode configuration",
			map[string]interface{}{"path": name})
	}
	cfg.applyDefaults()

	if err := validateVersion(cfg.Version); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "unsupported configuration version",
			map[string]interface{}{"path": name})
	}

	return &cfg, nil
}

func compileSchema(cueCtx *cue.Context) (cue.Value, error) {
	schema := cueCtx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, errors.Wrap(err, errors.CodeInternal, "failed to compile configuration schema")
	}
	return schema.LookupPath(cue.ParsePath("#Config")), nil
}
