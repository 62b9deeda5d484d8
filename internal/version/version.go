// Package version reports the build identity of the SeekBug tools.
package version

import (
	"fmt"

	"github.com/blang/semver"
)

// These are overridden at link time with -ldflags "-X ...".
var (
	projectName = "seek-bug"
	version     = "0.1.0"
	commit      = "unknown"
)

// Version is the build identity of this binary.
var Version = VersionContext{
	Name:    projectName,
	Version: version,
	Commit:  commit,
}

// VersionContext describes a build of the SeekBug tools.
type VersionContext struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func (vc VersionContext) String() string {
	return fmt.Sprintf("%s <commit: %s>", vc.Version, vc.Commit)
}

// Semver parses Version. A leading "v" is accepted.
func (vc VersionContext) Semver() (semver.Version, error) {
	v, err := semver.ParseTolerant(vc.Version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("version %q is not a semantic version: %w", vc.Version, err)
	}
	return v, nil
}
