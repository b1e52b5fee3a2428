package domain

import (
	"github.com/Masterminds/semver/v3"
)

// Version wraps semver.Version for additional methods. The string form
// carries no "v" prefix; tag names are composed from the configured
// prefix/suffix around it.
type Version struct {
	*semver.Version
}

// NewVersion creates a new Version from a string. A leading "v" is accepted
// for convenience in configuration values.
func NewVersion(s string) (*Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, err
	}
	return &Version{v}, nil
}

// ParseVersion parses exactly "major.minor.patch" text, as produced by tag
// decoding. Unlike NewVersion it rejects a leading "v" so that prefix
// stripping stays invertible.
func ParseVersion(s string) (*Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, err
	}
	return &Version{v}, nil
}

// Bump returns the next version for the given severity. BumpNone returns
// the receiver unchanged, which is the signal that no release is needed.
func (v *Version) Bump(b BumpType) *Version {
	switch b {
	case BumpMajor:
		next := v.IncMajor()
		return &Version{&next}
	case BumpMinor:
		next := v.IncMinor()
		return &Version{&next}
	case BumpPatch:
		next := v.IncPatch()
		return &Version{&next}
	default:
		return v
	}
}

// Compare orders versions by (major, minor, patch).
func (v *Version) Compare(other *Version) int {
	return v.Version.Compare(other.Version)
}

// String returns the bare semantic version string.
func (v *Version) String() string {
	return v.Version.String()
}
