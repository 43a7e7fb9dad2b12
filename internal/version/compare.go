package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckSchemaCompatibility checks whether a persisted ledger document with
// the given schema version can be loaded by this binary.
// Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - An empty or "main" file version (development state) is accepted
//   - Major versions must match exactly
//   - The file's minor version must not be newer than ours
//   - Patch versions can differ freely
//
// Examples:
//   - Ours 1.2.0, file 1.2.0 -> OK (exact match)
//   - Ours 1.2.0, file 1.1.3 -> OK (older minor)
//   - Ours 1.2.0, file 1.3.0 -> ERROR (file written by a newer minor)
//   - Ours 2.0.0, file 1.2.0 -> ERROR (major differs)
func CheckSchemaCompatibility(fileVersion string) error {
	fileVersion = strings.TrimPrefix(fileVersion, "v")

	// Skip the check for development states
	if fileVersion == "" || fileVersion == "main" {
		return nil
	}

	ours, err := semver.NewVersion(SchemaVersion)
	if err != nil {
		return fmt.Errorf("invalid schema version '%s': %w", SchemaVersion, err)
	}

	theirs, err := semver.NewVersion(fileVersion)
	if err != nil {
		return fmt.Errorf("invalid file schema version '%s': %w", fileVersion, err)
	}

	if ours.Major() != theirs.Major() {
		return fmt.Errorf("schema major version mismatch: binary reads %d.x.x but file is %d.x.x",
			ours.Major(), theirs.Major())
	}

	if theirs.Minor() > ours.Minor() {
		return fmt.Errorf("file schema %d.%d.x is newer than supported %d.%d.x",
			theirs.Major(), theirs.Minor(), ours.Major(), ours.Minor())
	}

	return nil
}
