package fcsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/afids/afids-go/pkg/afids"
	"github.com/afids/afids-go/pkg/version"
)

// headerRows is the number of leading records (version line, two comment
// lines) that precede the data rows.
const headerRows = 3

// Parser parses fcsv files.
type Parser struct {
	// AllowDuplicateLabels lets a later row silently replace an earlier row
	// with the same label instead of failing with ErrDuplicateLabel.
	AllowDuplicateLabels bool
}

// NewParser creates a new fcsv parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses an fcsv file from the filesystem.
func (p *Parser) ParseFile(path string) (*ParsedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// ParseBytes parses fcsv data from a byte slice.
func (p *Parser) ParseBytes(data []byte) (*ParsedFile, error) {
	return p.Parse(bytes.NewReader(data))
}

// ParseString parses fcsv data from a string.
func (p *Parser) ParseString(s string) (*ParsedFile, error) {
	return p.Parse(strings.NewReader(s))
}

// Parse reads a complete fcsv file from r. It returns the first problem found
// as a *ParseError.
func (p *Parser) Parse(r io.Reader) (*ParsedFile, error) {
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: ErrRead, Line: 1, Cause: err}
	}
	v, err := version.Extract(header)
	if err != nil {
		return nil, &ParseError{Err: ErrInvalidHeader, Line: 1}
	}
	conv := version.Classify(v)
	if conv == version.TooOld {
		return nil, &ParseError{Err: ErrTooOldVersion, Line: 1, Value: v.String()}
	}

	// Replay the header so record numbering starts at the top of the file.
	cr := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		records  [afids.Count]Record
		seen     [afids.Count]bool
		rows     int
		consumed int
	)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			pe := &ParseError{Err: ErrRead, Cause: err}
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				pe.Line = csvErr.Line
			}
			return nil, pe
		}
		line, _ := cr.FieldPos(0)

		if consumed < headerRows {
			consumed++
			continue
		}

		if rows >= afids.Count {
			return nil, &ParseError{Err: ErrTooManyRows, Line: line, Count: rows + 1}
		}

		rec, err := validateRow(decodeRow(fields, conv, line))
		if err != nil {
			return nil, err
		}
		rows++

		idx := rec.Label - 1
		if seen[idx] && !p.AllowDuplicateLabels {
			return nil, &ParseError{Err: ErrDuplicateLabel, Line: line, Label: rec.Label.String()}
		}
		seen[idx] = true
		records[idx] = rec
	}

	unique := 0
	for _, ok := range seen {
		if ok {
			unique++
		}
	}
	if unique < afids.Count {
		return nil, &ParseError{Err: ErrTooFewRows, Count: unique}
	}

	return &ParsedFile{version: v, records: records}, nil
}

// Parse is a convenience function to parse fcsv data from a reader.
func Parse(r io.Reader) (*ParsedFile, error) {
	return NewParser().Parse(r)
}

// ParseFile is a convenience function to parse an fcsv file.
func ParseFile(path string) (*ParsedFile, error) {
	return NewParser().ParseFile(path)
}

// ParseString is a convenience function to parse fcsv data from a string.
func ParseString(s string) (*ParsedFile, error) {
	return NewParser().ParseString(s)
}

// ParseBytes is a convenience function to parse fcsv data from bytes.
func ParseBytes(data []byte) (*ParsedFile, error) {
	return NewParser().ParseBytes(data)
}
