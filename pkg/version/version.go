// Package version reports build information of the textdlg binary.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

var (
	// Set via ldflags.
	Version   string
	Branch    string
	BuildUser string
	BuildDate string

	Revision  = getRevision(debug.ReadBuildInfo)
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// Info is a snapshot of the build information.
type Info struct {
	Version   string
	Revision  string
	Branch    string
	BuildUser string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   GetVersion(),
		Revision:  Revision,
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  GoOS + "/" + GoArch,
	}
}

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// Print writes a human readable report headed by name. Empty fields are
// omitted.
func (i Info) Print(w io.Writer, name string) error {
	lines := []struct {
		key, value string
	}{
		{"revision", i.Revision},
		{"branch", i.Branch},
		{"build user", i.BuildUser},
		{"build date", i.BuildDate},
		{"go", i.GoVersion + " " + i.Platform},
	}

	_, err := fmt.Fprintf(w, "%s %s\n", name, i.Version)
	if err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	for _, l := range lines {
		if l.value == "" {
			continue
		}

		_, err = fmt.Fprintf(w, "  %s: %s\n", l.key, l.value)
		if err != nil {
			return fmt.Errorf("write version: %w", err)
		}
	}

	return nil
}

func getRevision(read func() (*debug.BuildInfo, bool)) string {
	rev := "unknown"

	buildInfo, ok := read()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value[:min(len(v.Value), 7)]

		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
