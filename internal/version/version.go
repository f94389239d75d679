package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/quarrysec/quarry/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/quarrysec/quarry/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/quarrysec/quarry/internal/version.Date={{.Date}}
)
