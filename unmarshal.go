package ras

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var valueType = reflect.TypeOf((*Value)(nil)).Elem()

// Unmarshal parses RAS data and stores the result in the value pointed to by v.
// If v is not a pointer to a struct, Unmarshal returns an error.
//
// Each struct field receives one list. The `ras` tag names the list; without
// a tag the lower-cased field name is used:
//   - `ras:"products"` - decodes list "products" into this field
//   - `ras:"products,required"` - fails if the list is missing
//   - `ras:"-"` - ignores this field
//
// A list field is a slice of structs or a slice of slices. Record fields map
// to struct fields by position, taken from a numeric tag or, without one,
// from declaration order:
//
//	type Product struct {
//	    Key   string  `ras:"0"`
//	    Name  string  `ras:"1"`
//	    Stock int     `ras:"2,required"`
//	}
//
//	type Inventory struct {
//	    Products []Product `ras:"products"`
//	    Prices   [][]any   `ras:"prices"`
//	}
//
// Conversions are type-checked: String values fill string fields, Integer
// values fill integer and float fields, Float values fill float fields,
// Boolean values fill bool fields, and any value fills an interface field.
// A mismatch is an error wrapping ErrType.
func Unmarshal(data []byte, v any) error {
	doc, err := Parse(string(data))
	if err != nil {
		return err
	}
	return UnmarshalDocument(doc, v)
}

// UnmarshalDocument unmarshals a parsed Document into v.
func UnmarshalDocument(doc *Document, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be a non-nil pointer")
	}

	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("unmarshal target must be a pointer to struct")
	}

	return unmarshalLists(doc, elem)
}

// DecodeList decodes the records of one list into v, which must be a
// pointer to a slice of structs or a pointer to a slice of slices.
func (d *Document) DecodeList(name string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer")
	}

	l, ok := d.List(name)
	if !ok {
		return &LookupError{List: name, Err: ErrUnknownList}
	}
	if err := setList(rv.Elem(), l); err != nil {
		return fmt.Errorf("list %q: %w", name, err)
	}
	return nil
}

// unmarshalLists fills each list-bearing field of a struct value.
func unmarshalLists(doc *Document, v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Skip unexported fields
		if !fieldValue.CanSet() {
			continue
		}

		tag := field.Tag.Get("ras")
		if tag == "-" {
			continue
		}

		listName, opts := parseTag(tag)
		if listName == "" {
			listName = strings.ToLower(field.Name)
		}

		l, ok := doc.List(listName)
		if !ok {
			if hasOption(opts, "required") {
				return &LookupError{List: listName, Err: ErrUnknownList}
			}
			continue
		}

		if err := setList(fieldValue, l); err != nil {
			return fmt.Errorf("field %s: list %q: %w", field.Name, listName, err)
		}
	}

	return nil
}

// setList builds a slice with one element per record of l.
func setList(field reflect.Value, l *List) error {
	if field.Kind() != reflect.Slice {
		return fmt.Errorf("cannot decode list into %s", field.Type())
	}

	slice := reflect.MakeSlice(field.Type(), len(l.records), len(l.records))
	for i, rec := range l.records {
		if err := setRecord(slice.Index(i), rec); err != nil {
			return fmt.Errorf("item %d (line %d): %w", i, rec.line, err)
		}
	}
	field.Set(slice)
	return nil
}

// setRecord decodes one record into a struct, a slice or a pointer to either.
func setRecord(elem reflect.Value, rec Record) error {
	switch elem.Kind() {
	case reflect.Struct:
		return setStruct(elem, rec)
	case reflect.Slice:
		slice := reflect.MakeSlice(elem.Type(), len(rec.fields), len(rec.fields))
		for i, f := range rec.fields {
			if err := setField(slice.Index(i), f); err != nil {
				return fmt.Errorf("sub-item %d: %w", i, err)
			}
		}
		elem.Set(slice)
		return nil
	case reflect.Ptr:
		ptr := reflect.New(elem.Type().Elem())
		if err := setRecord(ptr.Elem(), rec); err != nil {
			return err
		}
		elem.Set(ptr)
		return nil
	default:
		return fmt.Errorf("cannot decode record into %s", elem.Type())
	}
}

// setStruct maps record fields onto struct fields by position.
func setStruct(v reflect.Value, rec Record) error {
	t := v.Type()
	position := 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !fieldValue.CanSet() {
			continue
		}

		tag := field.Tag.Get("ras")
		if tag == "-" {
			continue
		}

		name, opts := parseTag(tag)
		index := position
		position++
		if name != "" {
			n, err := strconv.Atoi(name)
			if err != nil || n < 0 {
				return fmt.Errorf("field %s: record tag %q is not a field position", field.Name, name)
			}
			index = n
		}

		if index >= len(rec.fields) {
			if hasOption(opts, "required") {
				return fmt.Errorf("field %s: %w: %d not in [0, %d)", field.Name, ErrSubItemIndexOutOfRange, index, len(rec.fields))
			}
			continue
		}

		if err := setField(fieldValue, rec.fields[index]); err != nil {
			return fmt.Errorf("field %s (sub-item %d): %w", field.Name, index, err)
		}
	}

	return nil
}

// setField stores one value into a scalar destination.
func setField(field reflect.Value, value Value) error {
	if value == nil {
		return nil
	}

	if field.Type() == valueType {
		field.Set(reflect.ValueOf(value))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		return setString(field, value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setInt(field, value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return setUint(field, value)
	case reflect.Float32, reflect.Float64:
		return setFloat(field, value)
	case reflect.Bool:
		return setBool(field, value)
	case reflect.Ptr:
		return setPointer(field, value)
	case reflect.Interface:
		return setInterface(field, value)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
}

func setString(field reflect.Value, value Value) error {
	s, err := AsString(value)
	if err != nil {
		return err
	}
	field.SetString(s)
	return nil
}

func setInt(field reflect.Value, value Value) error {
	i, err := AsInt(value)
	if err != nil {
		return err
	}
	if field.OverflowInt(i) {
		return fmt.Errorf("%w: %d overflows %s", ErrType, i, field.Type())
	}
	field.SetInt(i)
	return nil
}

func setUint(field reflect.Value, value Value) error {
	i, err := AsInt(value)
	if err != nil {
		return err
	}
	if i < 0 || field.OverflowUint(uint64(i)) {
		return fmt.Errorf("%w: %d overflows %s", ErrType, i, field.Type())
	}
	field.SetUint(uint64(i))
	return nil
}

func setFloat(field reflect.Value, value Value) error {
	f, err := AsFloat(value)
	if err != nil {
		return err
	}
	if field.OverflowFloat(f) {
		return fmt.Errorf("%w: %g overflows %s", ErrType, f, field.Type())
	}
	field.SetFloat(f)
	return nil
}

func setBool(field reflect.Value, value Value) error {
	b, err := AsBool(value)
	if err != nil {
		return err
	}
	field.SetBool(b)
	return nil
}

func setPointer(field reflect.Value, value Value) error {
	ptr := reflect.New(field.Type().Elem())
	if err := setField(ptr.Elem(), value); err != nil {
		return err
	}
	field.Set(ptr)
	return nil
}

// setInterface stores the native Go value into an empty interface, or the
// Value itself into any interface it satisfies.
func setInterface(field reflect.Value, value Value) error {
	if field.NumMethod() == 0 {
		field.Set(reflect.ValueOf(Native(value)))
		return nil
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().Implements(field.Type()) {
		return fmt.Errorf("%w: %s does not implement %s", ErrType, rv.Type(), field.Type())
	}
	field.Set(rv)
	return nil
}

// Helper functions

func parseTag(tag string) (string, []string) {
	parts := strings.Split(tag, ",")
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func hasOption(opts []string, option string) bool {
	for _, opt := range opts {
		if opt == option {
			return true
		}
	}
	return false
}
