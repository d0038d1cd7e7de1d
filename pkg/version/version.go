package version

// Injected at build time via -ldflags "-X mediasearch/pkg/version.Version=..."
var (
	Version     = "0.1.0"
	GitCommit   = "unknown"
	BuildDate   = "unknown"
	ServiceName = "media-search"
)

// Info represents version information for the service
type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// GetInfo returns version information as a struct
func GetInfo() Info {
	return Info{
		Service:   ServiceName,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}
}

// GetShortCommit returns the short git commit hash (first 7 characters)
func GetShortCommit() string {
	if len(GitCommit) >= 7 {
		return GitCommit[:7]
	}
	return GitCommit
}
