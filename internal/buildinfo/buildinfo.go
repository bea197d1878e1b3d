package buildinfo

// Set via -ldflags "-X github.com/varsilias/crystal/internal/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	BuiltAt = "unknown"
)
