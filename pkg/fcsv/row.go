package fcsv

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/afids/afids-go/pkg/afids"
	"github.com/afids/afids-go/pkg/version"
)

// Columns lists the positional fields of a data row.
var Columns = [...]string{
	"id", "x", "y", "z",
	"ow", "ox", "oy", "oz",
	"vis", "sel", "lock",
	"label", "desc", "associatedNodeID",
}

// NumColumns is the number of fields every data row must carry.
const NumColumns = len(Columns)

const (
	colX     = 1
	colY     = 2
	colZ     = 3
	colLabel = 11
	colDesc  = 12
)

// decodedRow is one data row mapped onto the named columns.
type decodedRow struct {
	line   int
	count  int
	values [NumColumns]string
	// present is false for trailing columns the row did not carry.
	present [NumColumns]bool
	// errs holds failures of the sign transform, reported during validation
	// so that label and description problems are still diagnosed first.
	errs [NumColumns]error
}

// decodeRow maps raw fields onto the named columns and applies the
// coordinate convention of the file version to x and y.
func decodeRow(fields []string, conv version.Convention, line int) decodedRow {
	row := decodedRow{line: line, count: len(fields)}
	for i := 0; i < NumColumns && i < len(fields); i++ {
		row.values[i] = fields[i]
		row.present[i] = true
	}

	if conv == version.SignFlipped {
		for _, col := range []int{colX, colY} {
			if !row.present[col] {
				continue
			}
			row.values[col], row.errs[col] = negate(row.values[col])
		}
	}
	return row
}

// negate flips the sign of a coordinate and formats it back to text. The
// text, not the float, is what validation parses afterwards.
func negate(s string) (string, error) {
	f, err := parseReal(s)
	if err != nil {
		return s, err
	}
	return strconv.FormatFloat(-f, 'g', -1, 64), nil
}

var errNotDecimal = errors.New("not a decimal number")

// parseReal parses a decimal real number. Surrounding blanks are ignored.
// Values too large for float64 parse to ±Inf without error so they are
// rejected as not finite rather than as malformed.
func parseReal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX_") {
		return 0, errNotDecimal
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return 0, err
	}
	return f, nil
}

// validateRow checks a decoded row and converts it to a Record.
func validateRow(row decodedRow) (Record, error) {
	fail := func(sentinel error, label, field string) *ParseError {
		return &ParseError{Err: sentinel, Line: row.line, Label: label, Field: field}
	}

	if !row.present[colLabel] {
		return Record{}, fail(ErrMissingField, "", "label")
	}
	rawLabel := row.values[colLabel]
	label, err := afids.ParseLabel(rawLabel)
	if err != nil {
		return Record{}, fail(ErrUnknownLabel, rawLabel, "label")
	}
	desc, _ := afids.Describe(label)

	if !row.present[colDesc] {
		return Record{}, fail(ErrMissingField, rawLabel, "desc")
	}
	if got := row.values[colDesc]; !desc.Matches(got) {
		e := fail(ErrLabelDescMismatch, rawLabel, "desc")
		e.Value = got
		return Record{}, e
	}

	rec := Record{Label: label, Desc: desc.Name}
	for _, c := range []struct {
		col int
		dst *float64
	}{{colX, &rec.X}, {colY, &rec.Y}, {colZ, &rec.Z}} {
		field := Columns[c.col]
		if !row.present[c.col] {
			return Record{}, fail(ErrMissingField, rawLabel, field)
		}
		if row.errs[c.col] != nil {
			return Record{}, fail(ErrNotARealNumber, rawLabel, field)
		}
		f, err := parseReal(row.values[c.col])
		if err != nil {
			return Record{}, fail(ErrNotARealNumber, rawLabel, field)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Record{}, fail(ErrNotFinite, rawLabel, field)
		}
		*c.dst = f
	}

	if row.count != NumColumns {
		e := fail(ErrWrongColumnCount, rawLabel, "")
		e.Count = row.count
		return Record{}, e
	}

	return rec, nil
}
