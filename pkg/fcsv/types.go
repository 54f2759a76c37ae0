package fcsv

import (
	"fmt"
	"math"

	"github.com/afids/afids-go/pkg/afids"
	"github.com/afids/afids-go/pkg/version"
)

// Record is one validated landmark.
type Record struct {
	// Label is the landmark number.
	Label afids.Label

	// Desc is the canonical landmark name, whatever alias the file used.
	Desc string

	// X, Y, Z are the coordinates in the pre-4.11 (RAS) convention.
	X float64
	Y float64
	Z float64
}

// ParsedFile is a complete, validated set of 32 landmarks.
type ParsedFile struct {
	version version.FormatVersion
	records [afids.Count]Record
}

// NewParsedFile assembles a ParsedFile from records in any order. It checks
// the same invariants the parser guarantees: one record per label, canonical
// descriptions and finite coordinates.
func NewParsedFile(v version.FormatVersion, records []Record) (*ParsedFile, error) {
	switch {
	case len(records) < afids.Count:
		return nil, &ParseError{Err: ErrTooFewRows, Count: len(records)}
	case len(records) > afids.Count:
		return nil, &ParseError{Err: ErrTooManyRows, Count: len(records)}
	}

	pf := &ParsedFile{version: v}
	var seen [afids.Count]bool
	for _, r := range records {
		d, err := afids.Describe(r.Label)
		if err != nil {
			return nil, &ParseError{Err: ErrUnknownLabel, Label: r.Label.String()}
		}
		if seen[r.Label-1] {
			return nil, &ParseError{Err: ErrDuplicateLabel, Label: r.Label.String()}
		}
		if !d.Matches(r.Desc) {
			return nil, &ParseError{Err: ErrLabelDescMismatch, Label: r.Label.String(), Value: r.Desc}
		}
		for _, c := range []struct {
			field string
			value float64
		}{{"x", r.X}, {"y", r.Y}, {"z", r.Z}} {
			if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
				return nil, &ParseError{Err: ErrNotFinite, Label: r.Label.String(), Field: c.field}
			}
		}
		seen[r.Label-1] = true
		r.Desc = d.Name
		pf.records[r.Label-1] = r
	}
	return pf, nil
}

// Version returns the format version declared by the source file.
func (p *ParsedFile) Version() version.FormatVersion {
	return p.version
}

// Len returns the number of records, always 32.
func (p *ParsedFile) Len() int {
	return len(p.records)
}

// Records returns the records in ascending label order.
func (p *ParsedFile) Records() []Record {
	out := make([]Record, len(p.records))
	copy(out, p.records[:])
	return out
}

// Get returns the record for label.
func (p *ParsedFile) Get(label afids.Label) (Record, bool) {
	if !label.Valid() {
		return Record{}, false
	}
	return p.records[label-1], true
}

// String returns a short summary.
func (p *ParsedFile) String() string {
	return fmt.Sprintf("fcsv v%s (%d fiducials)", p.version, len(p.records))
}
