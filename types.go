// Package ras defines the core data structures for RAS parsing.
package ras

import (
	"fmt"
	"strconv"
)

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInteger
	KindFloat
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one scalar field of a record. The set of implementations is
// closed: String, Integer, Float and Boolean.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

// String is a quoted literal, or an unquoted literal that matched no other
// variant.
type String string

// Integer is an unquoted base-10 integer literal.
type Integer int64

// Float is an unquoted decimal literal with a fractional part.
type Float float64

// Boolean is one of the two boolean tokens.
type Boolean bool

func (String) Kind() Kind { return KindString }
func (Integer) Kind() Kind { return KindInteger }
func (Float) Kind() Kind { return KindFloat }
func (Boolean) Kind() Kind { return KindBoolean }

func (v String) String() string { return string(v) }
func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

func (v Boolean) String() string {
	if v {
		return "True"
	}
	return "False"
}

func (String) isValue() {}
func (Integer) isValue() {}
func (Float) isValue() {}
func (Boolean) isValue() {}

// AsString returns the text of a String value.
func AsString(v Value) (string, error) {
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", typeError(v, KindString)
}

// AsInt returns the number held by an Integer value.
func AsInt(v Value) (int64, error) {
	if i, ok := v.(Integer); ok {
		return int64(i), nil
	}
	return 0, typeError(v, KindInteger)
}

// AsFloat returns the number held by a Float value. Integer values are
// widened; every other variant is an error.
func AsFloat(v Value) (float64, error) {
	switch x := v.(type) {
	case Float:
		return float64(x), nil
	case Integer:
		return float64(x), nil
	default:
		return 0, typeError(v, KindFloat)
	}
}

// AsBool returns the truth value of a Boolean value.
func AsBool(v Value) (bool, error) {
	if b, ok := v.(Boolean); ok {
		return bool(b), nil
	}
	return false, typeError(v, KindBoolean)
}

// Native returns the plain Go representation of v: string, int64, float64
// or bool.
func Native(v Value) any {
	switch x := v.(type) {
	case String:
		return string(x)
	case Integer:
		return int64(x)
	case Float:
		return float64(x)
	case Boolean:
		return bool(x)
	default:
		return nil
	}
}

func typeError(v Value, want Kind) error {
	if v == nil {
		return fmt.Errorf("%w: want %s, got nil", ErrType, want)
	}
	return fmt.Errorf("%w: want %s, got %s %q", ErrType, want, v.Kind(), v.String())
}

// Record is one decoded data line.
type Record struct {
	line   int
	fields []Value
}

// NewRecord builds a record from fields. The slice is copied.
func NewRecord(line int, fields ...Value) Record {
	return Record{line: line, fields: append([]Value(nil), fields...)}
}

// Line returns the 1-based source line of the record, or 0 if unknown.
func (r Record) Line() int { return r.line }

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Field returns the field at index i. It panics if i is out of range;
// use Document.Get for checked access.
func (r Record) Field(i int) Value { return r.fields[i] }

// Fields returns a copy of the record's fields.
func (r Record) Fields() []Value { return append([]Value(nil), r.fields...) }

// Key returns field 0, which by convention names the record.
func (r Record) Key() (Value, bool) {
	if len(r.fields) == 0 {
		return nil, false
	}
	return r.fields[0], true
}

// Equal reports whether r and o hold the same fields in the same order.
// Source lines are not compared.
func (r Record) Equal(o Record) bool {
	if len(r.fields) != len(o.fields) {
		return false
	}
	for i := range r.fields {
		if r.fields[i] != o.fields[i] {
			return false
		}
	}
	return true
}

// List is a named, ordered sequence of records.
type List struct {
	name    string
	line    int
	records []Record
}

// Name returns the list name.
func (l *List) Name() string { return l.name }

// Line returns the 1-based line of the list opener.
func (l *List) Line() int { return l.line }

// Len returns the number of records.
func (l *List) Len() int { return len(l.records) }

// Record returns the record at index i. It panics if i is out of range.
func (l *List) Record(i int) Record { return l.records[i] }

// Records returns a copy of the record sequence.
func (l *List) Records() []Record { return append([]Record(nil), l.records...) }

// Document is a parsed RAS document. It is immutable once returned by the
// parser and safe for concurrent reads.
type Document struct {
	lists []*List
	index map[string]int
}

func newDocument() *Document {
	return &Document{index: make(map[string]int)}
}

// add appends a list, reporting false if the name is already taken.
func (d *Document) add(l *List) bool {
	if _, ok := d.index[l.name]; ok {
		return false
	}
	d.index[l.name] = len(d.lists)
	d.lists = append(d.lists, l)
	return true
}

// Len returns the number of lists.
func (d *Document) Len() int { return len(d.lists) }

// Names returns the list names in source order.
func (d *Document) Names() []string {
	names := make([]string, len(d.lists))
	for i, l := range d.lists {
		names[i] = l.name
	}
	return names
}

// List returns the list with the given name.
func (d *Document) List(name string) (*List, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.lists[i], true
}

// Lists returns the lists in source order.
func (d *Document) Lists() []*List {
	return append([]*List(nil), d.lists...)
}

// Equal reports whether d and o have the same lists, in the same order,
// holding equal records.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.lists) != len(o.lists) {
		return false
	}
	for i, l := range d.lists {
		m := o.lists[i]
		if l.name != m.name || len(l.records) != len(m.records) {
			return false
		}
		for j := range l.records {
			if !l.records[j].Equal(m.records[j]) {
				return false
			}
		}
	}
	return true
}

// Native converts the document into plain Go values: each list name maps to
// a slice of records, each record a slice of string, int64, float64 or bool.
func (d *Document) Native() map[string][][]any {
	out := make(map[string][][]any, len(d.lists))
	for _, l := range d.lists {
		out[l.name] = nativeRecords(l)
	}
	return out
}

func nativeRecords(l *List) [][]any {
	rows := make([][]any, len(l.records))
	for i, r := range l.records {
		row := make([]any, len(r.fields))
		for j, f := range r.fields {
			row[j] = Native(f)
		}
		rows[i] = row
	}
	return rows
}
