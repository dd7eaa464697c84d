package version

// These variables are set at build time using -ldflags
// Example: go build -ldflags "-X rc-building-model/internal/version.Version=0.3.0"
var (
	// Version is the semantic version of the application
	Version = "0.3.0"

	// BuildTime is the time the binary was built (set via ldflags)
	BuildTime = "unknown"

	// GitCommit is the git commit hash (set via ldflags)
	GitCommit = "unknown"

	// Methodology the calculators follow
	Methodology = "DEAP 4.2.0"
)

// String renders the version line shared by every binary.
func String() string {
	return Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
