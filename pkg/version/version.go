package version

import (
	"fmt"
	"runtime"
)

// Overridden at build time via -ldflags "-X".
var (
	// GitCommit indicates which git commit the binary was built from
	GitCommit string
	// Version is the release the binary was built for
	Version string
)

const fallbackVersion = "v0.0.0-dev"

// Info collects build metadata for display.
type Info struct {
	Commit    string
	Version   string
	GoVersion string
}

// Get returns the build metadata of the running binary.
func Get() Info {
	v := Version
	if v == "" {
		v = fallbackVersion
	}
	return Info{
		Commit:    GitCommit,
		Version:   v,
		GoVersion: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a pretty string concatenation of Version and GitCommit
func String() string {
	i := Get()
	return fmt.Sprintf("gen-csv %s, git commit: %s\n", i.Version, i.Commit)
}
