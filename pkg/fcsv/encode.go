package fcsv

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/afids/afids-go/pkg/afids"
)

// recordOut is the serialized form of a Record; the label is the map key.
type recordOut struct {
	Desc string  `json:"desc" yaml:"desc" cbor:"desc"`
	X    float64 `json:"x" yaml:"x" cbor:"x"`
	Y    float64 `json:"y" yaml:"y" cbor:"y"`
	Z    float64 `json:"z" yaml:"z" cbor:"z"`
}

func toOut(r Record) recordOut {
	return recordOut{Desc: r.Desc, X: r.X, Y: r.Y, Z: r.Z}
}

// cborEncMode uses canonical (length-first) key order, which for the keys
// "1".."32" is ascending numeric order.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create fcsv CBOR encoder mode: %v", err))
	}
}

// MarshalJSON encodes the file as an object keyed "1".."32" in ascending
// label order.
func (p *ParsedFile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range p.records {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", r.Label.String())
		val, err := json.Marshal(toOut(r))
		if err != nil {
			return nil, fmt.Errorf("label %s: %w", r.Label, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the form produced by MarshalJSON. The result is
// validated like a parsed file; the version is left unchanged.
func (p *ParsedFile) UnmarshalJSON(data []byte) error {
	var raw map[string]recordOut
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	records := make([]Record, 0, len(raw))
	for key, r := range raw {
		label, err := afids.ParseLabel(key)
		if err != nil {
			return &ParseError{Err: ErrUnknownLabel, Label: key}
		}
		records = append(records, Record{Label: label, Desc: r.Desc, X: r.X, Y: r.Y, Z: r.Z})
	}

	pf, err := NewParsedFile(p.version, records)
	if err != nil {
		return err
	}
	*p = *pf
	return nil
}

// Canonical returns the indented JSON form written by the original AFIDs
// tooling (four-space indentation, ascending labels).
func (p *ParsedFile) Canonical() ([]byte, error) {
	return json.MarshalIndent(p, "", "    ")
}

// MarshalYAML encodes the file as a mapping keyed "1".."32" in ascending
// label order.
func (p *ParsedFile) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, r := range p.records {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Label.String()}
		val := &yaml.Node{}
		if err := val.Encode(toOut(r)); err != nil {
			return nil, fmt.Errorf("label %s: %w", r.Label, err)
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// EncodeCBOR encodes the file as a canonical CBOR map keyed "1".."32".
func (p *ParsedFile) EncodeCBOR() ([]byte, error) {
	m := make(map[string]recordOut, len(p.records))
	for _, r := range p.records {
		m[r.Label.String()] = toOut(r)
	}
	return cborEncMode.Marshal(m)
}
