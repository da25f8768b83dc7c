package version

// Set via -ldflags "-X cblbot/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "none"
)
