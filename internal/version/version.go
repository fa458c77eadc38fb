package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Name of the application
	AppName = "MirrorBox"

	// Version of the application
	Version = "0.2.0-dev"

	// Git commit hash of the application
	Revision = "HEAD"
)

// resolveFromBuildInfo populates Version/Revision from Go build metadata
// when ldflags didn't provide real values.
func resolveFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return
	}

	if Version == "0.2.0-dev" || Version == "" {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			Version = strings.TrimPrefix(v, "v")
		}
	}

	if Revision == "HEAD" || Revision == "" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				Revision = s.Value
				break
			}
		}
	}
}

// Short returns a concise version string - `0.1.0 (5e23a4)`
func Short() string {
	return fmt.Sprintf("%s (%s)", Version, Revision)
}

// Detailed returns a detailed version string - `0.1.0 (5e23a4; go1.23.6; linux/amd64)`
func Detailed() string {
	return fmt.Sprintf("%s (%s; %s; %s/%s)", Version, Revision, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func init() {
	resolveFromBuildInfo()
}
