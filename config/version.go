package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is the current configuration schema version.
// Configuration files declare their version to indicate compatibility.
const SchemaVersion = "0.1.0"

// IsCompatible checks if a configuration's version is compatible with
// SchemaVersion using a caret constraint.
//
// For version 0.x.y the caret constraint allows only patch changes, so
// 0.1.5 is compatible while 0.2.0 and 1.0.0 are not.
//
// Returns an error if version is not a valid semantic version.
func IsCompatible(version string) (bool, error) {
	constraint, err := semver.NewConstraint("^" + SchemaVersion)
	if err != nil {
		return false, fmt.Errorf("invalid schema version: %w", err)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", version, err)
	}

	return constraint.Check(v), nil
}
