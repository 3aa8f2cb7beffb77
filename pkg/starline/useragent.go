package starline

import (
	_ "embed" // Used to embed version for use with user agent
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	//go:embed version.txt
	libraryVersion string
)

// LibraryVersion is the version of this package reported in the User-Agent header.
func LibraryVersion() string {
	return strings.TrimSpace(libraryVersion)
}

// buildUserAgent prefixes the library token with app, or with the main module's name and version
// when app is empty.
func buildUserAgent(app string) string {
	library := "starline-go/" + LibraryVersion()
	if app != "" {
		return fmt.Sprintf("%s %s", app, library)
	}
	build, ok := debug.ReadBuildInfo()
	if !ok || build.Path == "" {
		return library
	}
	path := strings.Split(build.Path, "/")
	app = path[len(path)-1]

	var version string
	if build.Main.Version != "(devel)" && build.Main.Version != "" {
		version = build.Main.Version
	} else {
		for _, info := range build.Settings {
			if info.Key == "vcs.revision" {
				if len(info.Value) > 8 {
					version = info.Value[0:8]
				}
				break
			}
		}
	}
	if version != "" {
		app = fmt.Sprintf("%s/%s", app, version)
	}
	return fmt.Sprintf("%s %s", app, library)
}
