package version

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrNotFound indicates the canonical version file or a target file is
	// missing.
	ErrNotFound = errors.New("file not found")
	// ErrBadFormat indicates the canonical version file does not hold a
	// plain major.minor.patch triple.
	ErrBadFormat = errors.New("invalid version format")
	// ErrPatternNotFound indicates a target file exists but contains no
	// match for its configured pattern.
	ErrPatternNotFound = errors.New("version pattern not found")
	// ErrInvalidBump indicates an unsupported bump kind.
	ErrInvalidBump = errors.New("invalid bump type")
)

// canonicalRE is the only accepted shape for the canonical version: three
// dot-separated non-negative integers with nothing else, so no "v" prefix
// and no prerelease or build metadata.
var canonicalRE = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Version is a strict major.minor.patch triple.
type Version struct {
	v semver.Version
}

// Parse validates and parses a canonical version string. Surrounding
// whitespace is ignored; any other deviation from major.minor.patch is
// rejected with ErrBadFormat.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if !canonicalRE.MatchString(s) {
		return Version{}, fmt.Errorf("%w: %q", ErrBadFormat, s)
	}

	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrBadFormat, s, err)
	}

	return Version{v: *v}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.v.Major(), v.v.Minor(), v.v.Patch())
}

// Bump returns the next version for the given kind. Lower-order components
// reset to zero; patch bumps increment patch only. The receiver is not
// modified.
func (v Version) Bump(kind string) (Version, error) {
	switch kind {
	case "major":
		return Version{v: v.v.IncMajor()}, nil
	case "minor":
		return Version{v: v.v.IncMinor()}, nil
	case "patch":
		return Version{v: v.v.IncPatch()}, nil
	}

	return Version{}, fmt.Errorf("%w: %q (expected major, minor, or patch)", ErrInvalidBump, kind)
}
