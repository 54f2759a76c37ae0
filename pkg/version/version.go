// Package version parses and classifies the markups fiducial file format
// version declared in the first line of an fcsv file.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoVersion is returned when a header line carries no "major.minor" token.
var ErrNoVersion = errors.New("no major.minor version token")

// FormatVersion represents a parsed "major.minor" format version.
type FormatVersion struct {
	Major uint16
	Minor uint16
}

var (
	// MinSupported is the oldest format version accepted.
	MinSupported = FormatVersion{Major: 4, Minor: 6}

	// SignFlip is the first version whose x and y axes are stored with the
	// opposite sign (LPS instead of RAS).
	SignFlip = FormatVersion{Major: 4, Minor: 11}
)

// Parse parses a "major.minor" version string.
func Parse(s string) (FormatVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return FormatVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return FormatVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return FormatVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// versionToken matches the first "digits.digits" run in a header line.
var versionToken = regexp.MustCompile(`\d+\.\d+`)

// Extract finds and parses the version token in a header line such as
// "# Markups fiducial file version = 4.10".
func Extract(line string) (FormatVersion, error) {
	tok := versionToken.FindString(line)
	if tok == "" {
		return FormatVersion{}, ErrNoVersion
	}
	v, err := Parse(tok)
	if err != nil {
		return FormatVersion{}, fmt.Errorf("%w: %v", ErrNoVersion, err)
	}
	return v, nil
}

// String returns the version as "major.minor".
func (v FormatVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0 or +1 as v is older than, equal to, or newer than other.
func (v FormatVersion) Compare(other FormatVersion) int {
	switch {
	case v.Major != other.Major:
		if v.Major < other.Major {
			return -1
		}
		return 1
	case v.Minor < other.Minor:
		return -1
	case v.Minor > other.Minor:
		return 1
	}
	return 0
}

// Less reports whether v is older than other.
func (v FormatVersion) Less(other FormatVersion) bool {
	return v.Compare(other) < 0
}

// Convention describes how coordinates of a given version must be read.
type Convention int

const (
	// TooOld versions are rejected.
	TooOld Convention = iota
	// Standard versions are read as stored.
	Standard
	// SignFlipped versions have x and y negated on read.
	SignFlipped
)

// String returns the convention name.
func (c Convention) String() string {
	switch c {
	case TooOld:
		return "too-old"
	case Standard:
		return "standard"
	case SignFlipped:
		return "sign-flip"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// Classify returns the coordinate convention for v.
func Classify(v FormatVersion) Convention {
	switch {
	case v.Less(MinSupported):
		return TooOld
	case v.Less(SignFlip):
		return Standard
	default:
		return SignFlipped
	}
}
