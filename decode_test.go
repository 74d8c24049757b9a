package ras

import (
	"errors"
	"testing"
)

func TestDecodeLine(t *testing.T) {
	tests := []struct {
		input    string
		expected []Value
	}{
		{`"a,b",1`, []Value{String("a,b"), Integer(1)}},
		{`product1,"The first item",1,"tbh"`, []Value{String("product1"), String("The first item"), Integer(1), String("tbh")}},
		{`item_2,"Another Item, with a comma",42,"done"`, []Value{String("item_2"), String("Another Item, with a comma"), Integer(42), String("done")}},
		{`milk,2.99`, []Value{String("milk"), Float(2.99)}},
		{`product1,True,45`, []Value{String("product1"), Boolean(true), Integer(45)}},
		{`"42"`, []Value{String("42")}},
		{`"True"`, []Value{String("True")}},
		{` 7 , " x " `, []Value{Integer(7), String(" x ")}},
		{`a,,b`, []Value{String("a"), String(""), String("b")}},
		{`a,`, []Value{String("a"), String("")}},
		{`""`, []Value{String("")}},
		{`"",""`, []Value{String(""), String("")}},
		{`"a,b,c"`, []Value{String("a,b,c")}},
		{`"  spaced  inside  "`, []Value{String("  spaced  inside  ")}},
		{"\t\"tab\"\t,\t3\t", []Value{String("tab"), Integer(3)}},
		{`bare words here,1`, []Value{String("bare words here"), Integer(1)}},
		{`x,"é, ü",ß`, []Value{String("x"), String("é, ü"), String("ß")}},
	}

	for _, test := range tests {
		result, err := DecodeLine(test.input)
		if err != nil {
			t.Errorf("DecodeLine(%s) failed: %v", test.input, err)
			continue
		}

		if len(result) != len(test.expected) {
			t.Errorf("DecodeLine(%s) length mismatch: expected %d, got %d (%#v)",
				test.input, len(test.expected), len(result), result)
			continue
		}

		for i, expected := range test.expected {
			if result[i] != expected {
				t.Errorf("DecodeLine(%s)[%d]: expected %#v, got %#v",
					test.input, i, expected, result[i])
			}
		}
	}
}

func TestDecodeLine_FormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		column int
	}{
		{"unterminated quote", `"abc`, 1},
		{"unterminated later field", `a,"b`, 3},
		{"unterminated after comma inside", `x,"a,b`, 3},
		{"text before quote", `abc"def"`, 4},
		{"text before quote after space", `  ab "cd"`, 6},
		{"text after quote", `"a"b`, 4},
		{"second quoted literal", `"a" "b"`, 5},
		{"doubled quote", `"a""b"`, 4},
		{"quote in bare field", `a,b"c`, 4},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeLine(test.input)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("Expected ErrFormat, got %v", err)
			}

			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Expected *SyntaxError, got %T", err)
			}
			if se.Column != test.column {
				t.Errorf("Expected column %d, got %d (%v)", test.column, se.Column, err)
			}
			if se.Line != 0 {
				t.Errorf("Expected no line for a detached decode, got %d", se.Line)
			}
		})
	}
}

func TestDecodeLine_WhitespaceAroundQuotes(t *testing.T) {
	result, err := DecodeLine(`  "a"  ,  "b"`)
	if err != nil {
		t.Fatalf("DecodeLine() failed: %v", err)
	}
	if len(result) != 2 || result[0] != String("a") || result[1] != String("b") {
		t.Errorf("Expected [a b], got %#v", result)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{"42", Integer(42)},
		{"-7", Integer(-7)},
		{"+5", Integer(5)},
		{"0", Integer(0)},
		{"007", Integer(7)},
		{"2.99", Float(2.99)},
		{"3.50", Float(3.5)},
		{"-0.25", Float(-0.25)},
		{".5", Float(0.5)},
		{"5.", Float(5)},
		{"1.5e3", Float(1500)},
		{"2.5E-1", Float(0.25)},
		{"True", Boolean(true)},
		{"False", Boolean(false)},
		{"true", String("true")},
		{"FALSE", String("FALSE")},
		{"abc", String("abc")},
		{"", String("")},
		{"1e5", String("1e5")},
		{"Inf", String("Inf")},
		{"NaN", String("NaN")},
		{"0x10", String("0x10")},
		{"1_000", String("1_000")},
		{"1.2.3", String("1.2.3")},
		{"12abc", String("12abc")},
		{"99999999999999999999", String("99999999999999999999")},
		{"1.0e999", String("1.0e999")},
	}

	for _, test := range tests {
		result := Coerce(test.input)
		if result != test.expected {
			t.Errorf("Coerce(%q): expected %#v, got %#v", test.input, test.expected, result)
		}
	}
}

func TestParserWithBoolTokens(t *testing.T) {
	p := NewParser().WithBoolTokens("yes", "no")

	tests := []struct {
		input    string
		expected Value
	}{
		{"yes", Boolean(true)},
		{"no", Boolean(false)},
		{"True", String("True")},
		{"1", Integer(1)},
	}

	for _, test := range tests {
		if result := p.Coerce(test.input); result != test.expected {
			t.Errorf("Coerce(%q): expected %#v, got %#v", test.input, test.expected, result)
		}
	}

	doc, err := p.Parse("flags-\na,yes\n+\n")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if v, _ := doc.Get("flags", 0, 1); v != Boolean(true) {
		t.Errorf("Expected Boolean(true), got %#v", v)
	}
}

func TestParserWithBoolTokens_Ignored(t *testing.T) {
	tests := []struct {
		name    string
		yes, no string
	}{
		{"empty true token", "", "no"},
		{"empty false token", "yes", ""},
		{"same tokens", "on", "on"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := NewParser().WithBoolTokens(test.yes, test.no)
			if v := p.Coerce(""); v != String("") {
				t.Errorf("Coerce(\"\"): expected String(\"\"), got %#v", v)
			}
			if v := p.Coerce("on"); v != String("on") {
				t.Errorf("Coerce(\"on\"): expected String(\"on\"), got %#v", v)
			}
			if v := p.Coerce("True"); v != Boolean(true) {
				t.Errorf("Coerce(\"True\"): expected Boolean(true), got %#v", v)
			}
			if v := p.Coerce("False"); v != Boolean(false) {
				t.Errorf("Coerce(\"False\"): expected Boolean(false), got %#v", v)
			}
		})
	}
}
