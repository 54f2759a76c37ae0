package afids

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Count is the number of landmarks in the protocol.
const Count = 32

// ErrUnknownLabel is returned for labels outside 1..32.
var ErrUnknownLabel = errors.New("unknown fiducial label")

// Label identifies one of the 32 landmarks.
type Label int

// String returns the decimal form used as the record key ("1".."32").
func (l Label) String() string {
	return strconv.Itoa(int(l))
}

// Valid reports whether l names a landmark.
func (l Label) Valid() bool {
	return l >= 1 && l <= Count
}

// Descriptor describes one landmark.
type Descriptor struct {
	// Label is the landmark number.
	Label Label

	// Name is the canonical description written to parsed records.
	Name string

	// Code is the upper-case abbreviation (e.g. "SIPF").
	Code string

	aliases []string
}

// Aliases returns the accepted description strings, canonical name first.
func (d Descriptor) Aliases() []string {
	out := make([]string, len(d.aliases))
	copy(out, d.aliases)
	return out
}

// Matches reports whether desc is an accepted description, ignoring case.
func (d Descriptor) Matches(desc string) bool {
	for _, a := range d.aliases {
		if strings.EqualFold(a, desc) {
			return true
		}
	}
	return false
}

func landmark(label Label, code string, names ...string) Descriptor {
	return Descriptor{
		Label:   label,
		Name:    names[0],
		Code:    code,
		aliases: names,
	}
}

// table is indexed by label-1.
var table = [Count]Descriptor{
	landmark(1, "AC", "AC"),
	landmark(2, "PC", "PC"),
	landmark(3, "ICS", "infracollicular sulcus", "ICS"),
	landmark(4, "PMJ", "PMJ"),
	landmark(5, "SIPF", "superior interpeduncular fossa", "SIPF"),
	landmark(6, "RSLMS", "R superior LMS", "RSLMS"),
	landmark(7, "LSLMS", "L superior LMS", "LSLMS"),
	landmark(8, "RILMS", "R inferior LMS", "RILMS"),
	landmark(9, "LILMS", "L inferior LMS", "LILMS"),
	landmark(10, "CUL", "Culmen", "CUL"),
	landmark(11, "IMS", "Intermammillary sulcus", "IMS"),
	landmark(12, "RMB", "R MB", "RMB"),
	landmark(13, "LMB", "L MB", "LMB"),
	landmark(14, "PG", "pineal gland", "PG"),
	landmark(15, "RLVAC", "R LV at AC", "RLVAC"),
	landmark(16, "LLVAC", "L LV at AC", "LLVAC"),
	landmark(17, "RLVPC", "R LV at PC", "RLVPC"),
	landmark(18, "LLVPC", "L LV at PC", "LLVPC"),
	landmark(19, "GENU", "Genu of CC", "GENU"),
	landmark(20, "SPLE", "Splenium of CC", "SPLE"),
	landmark(21, "RALTH", "R AL temporal horn", "RALTH"),
	landmark(22, "LALTH", "L AL temporal horn", "LALTH"),
	landmark(23, "RSAMTH", "R superior AM temporal horn", "RSAMTH"),
	landmark(24, "LSAMTH", "L superior AM temporal horn", "LSAMTH"),
	landmark(25, "RIAMTH", "R inferior AM temporal horn", "RIAMTH"),
	landmark(26, "LIAMTH", "L inferior AM temporal horn", "LIAMTH"),
	landmark(27, "RIGO", "R indusium griseum origin", "RIGO"),
	landmark(28, "LIGO", "L indusium griseum origin", "LIGO"),
	landmark(29, "RVOH", "R ventral occipital horn", "RVOH"),
	landmark(30, "LVOH", "L ventral occipital horn", "LVOH"),
	landmark(31, "ROSF", "R olfactory sulcal fundus", "ROSF"),
	landmark(32, "LOSF", "L olfactory sulcal fundus", "LOSF"),
}

// Describe returns the descriptor for label.
func Describe(label Label) (Descriptor, error) {
	if !label.Valid() {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrUnknownLabel, int(label))
	}
	return table[label-1], nil
}

// ParseLabel parses a record key. Only the canonical decimal forms "1".."32"
// are accepted; "01" or " 1" are unknown labels.
func ParseLabel(s string) (Label, error) {
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s || !Label(n).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
	}
	return Label(n), nil
}

// All returns every descriptor in ascending label order.
func All() []Descriptor {
	out := make([]Descriptor, Count)
	copy(out, table[:])
	return out
}

// Labels returns 1..32 in ascending order.
func Labels() []Label {
	out := make([]Label, Count)
	for i := range out {
		out[i] = Label(i + 1)
	}
	return out
}
