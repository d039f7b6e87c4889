package version

// Version information for forcelint
const (
	// Version is the current semantic version
	Version = "0.2.0"

	// BuildDate is set during build time (use -ldflags)
	BuildDate = "development"

	// GitCommit is set during build time (use -ldflags)
	GitCommit = "unknown"
)

// FullInfo returns detailed version information
func FullInfo() string {
	return "forcelint " + Version + " (commit: " + GitCommit + ", built: " + BuildDate + ")"
}
