package ras

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is an output format for Encode.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat maps a format name (json, yaml, yml, toml; case-insensitive)
// to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported format %q: want json, yaml or toml", s)
	}
}

// Encode writes doc to w in the given format. JSON and YAML keep the
// document's list order; TOML tables are written in key order.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, doc)
	case FormatYAML:
		return encodeYAML(w, doc)
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc.Native()); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %v", format)
	}
}

// orderedLists marshals a document as a JSON object in list order.
type orderedLists struct{ doc *Document }

func (o orderedLists) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range o.doc.lists {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(l.name)
		if err != nil {
			return nil, err
		}
		rows, err := json.Marshal(valueRecords(l))
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", l.name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(rows)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes a Float with a fractional part, so whole numbers such
// as 100.0 read back as floats.
func (v Float) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("unsupported float value %v", f)
	}
	return []byte(floatText(f)), nil
}

// floatText formats f like strconv's shortest form, adding ".0" when the
// result would otherwise read as an integer.
func floatText(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func valueRecords(l *List) [][]Value {
	rows := make([][]Value, len(l.records))
	for i, r := range l.records {
		rows[i] = r.fields
	}
	return rows
}

func encodeJSON(w io.Writer, doc *Document) error {
	out, err := json.MarshalIndent(orderedLists{doc: doc}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

func encodeYAML(w io.Writer, doc *Document) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, l := range doc.lists {
		rows, err := yamlRecords(l)
		if err != nil {
			return fmt.Errorf("encode yaml: list %q: %w", l.name, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: l.name},
			rows,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func yamlRecords(l *List) (*yaml.Node, error) {
	rows := &yaml.Node{Kind: yaml.SequenceNode}
	if len(l.records) == 0 {
		rows.Style = yaml.FlowStyle
	}
	for i, r := range l.records {
		row := &yaml.Node{Kind: yaml.SequenceNode}
		for j, f := range r.fields {
			n, err := yamlScalar(f)
			if err != nil {
				return nil, fmt.Errorf("item %d sub-item %d: %w", i, j, err)
			}
			row.Content = append(row.Content, n)
		}
		rows.Content = append(rows.Content, row)
	}
	return rows, nil
}

// yamlScalar tags floats explicitly so whole numbers keep their type.
func yamlScalar(v Value) (*yaml.Node, error) {
	if f, ok := v.(Float); ok {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: floatText(float64(f))}, nil
	}
	var n yaml.Node
	if err := n.Encode(Native(v)); err != nil {
		return nil, err
	}
	return &n, nil
}
