package version

import "fmt"

// Set with -ldflags "-X github.com/nguyentantai21042004/tubedigest/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func Full() string {
	return fmt.Sprintf("tubedigest %s, commit %s, built at %s", Version, Commit, Date)
}
