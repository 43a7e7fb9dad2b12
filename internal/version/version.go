package version

// Version is the current version of the paper-trading binary.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/paper-trading/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// SchemaVersion is the version written into every persisted ledger document.
// Bump the major part when the document layout changes incompatibly.
const SchemaVersion = "1.0.0"

// GetVersion returns the current version of the binary.
func GetVersion() string {
	return Version
}
