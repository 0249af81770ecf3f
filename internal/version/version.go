package version

// Version is overridden at release time with
// -ldflags "-X github.com/bnema/collab-cli/internal/version.Version=v...".
var Version = "v0.1.0-dev"
