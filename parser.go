// Package ras provides parsing and indexed lookup for RAS documents.
//
// A RAS document is a sequence of named lists. A list opens with a line
// holding its name followed by a hyphen, closes with a line holding a single
// plus sign, and contains one comma-separated record per line:
//
//	products-
//	product1,"The first item",100,"tbh"
//	item_2,"Beta Product, with comma",42,"done"
//	+
//
// Quoted fields are always strings. Unquoted fields are coerced to Boolean
// (True/False), Integer, Float or, failing those, String.
package ras

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
)

const (
	listCloser = "+"
	openSuffix = "-"

	defaultMaxLineSize = bufio.MaxScanTokenSize
)

// Scanner wraps a bufio.Scanner with line counting.
type Scanner struct {
	*bufio.Scanner
	lineNum int
}

// NewScanner creates a new Scanner from an io.Reader.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		Scanner: bufio.NewScanner(r),
		lineNum: 0,
	}
}

// NextLine advances the scanner and returns the current line number and text.
func (s *Scanner) NextLine() (int, string, bool) {
	if !s.Scan() {
		return s.lineNum, "", false
	}
	s.lineNum++
	return s.lineNum, s.Text(), true
}

// RawLine is an undecoded record line and its 1-based source line.
type RawLine struct {
	Line int
	Text string
}

// Segment is one list block as found by the segmenter: its name, the line of
// its opener and its record lines in source order.
type Segment struct {
	Name  string
	Line  int
	Lines []RawLine
}

// Parser provides configurable parsing functionality. A Parser holds no
// per-parse state and may be shared between goroutines.
type Parser struct {
	maxLineSize int
	trueToken   string
	falseToken  string
	logger      *slog.Logger
}

// NewParser creates a new Parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxLineSize: defaultMaxLineSize,
		trueToken:   "True",
		falseToken:  "False",
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithMaxLineSize sets the longest line, in bytes, the parser accepts.
func (p *Parser) WithMaxLineSize(n int) *Parser {
	if n > 0 {
		p.maxLineSize = n
	}
	return p
}

// WithBoolTokens configures the unquoted tokens decoded as Boolean values.
// Matching is case-sensitive. The call is ignored unless both tokens are
// non-empty and distinct.
func (p *Parser) WithBoolTokens(trueToken, falseToken string) *Parser {
	if trueToken == "" || falseToken == "" || trueToken == falseToken {
		return p
	}
	p.trueToken = trueToken
	p.falseToken = falseToken
	return p
}

// WithLogger configures a logger for debug events. A nil logger silences
// the parser.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p.logger = logger
	return p
}

var defaultParser = NewParser()

// Parse parses RAS text with the default parser.
func Parse(text string) (*Document, error) {
	return defaultParser.Parse(text)
}

// ParseReader parses RAS text read from r with the default parser.
func ParseReader(r io.Reader) (*Document, error) {
	return defaultParser.ParseDocument(r)
}

// SegmentText splits RAS text into list blocks with the default parser.
func SegmentText(text string) ([]Segment, error) {
	return defaultParser.Segment(strings.NewReader(text))
}

// Parse parses RAS text.
func (p *Parser) Parse(text string) (*Document, error) {
	return p.ParseDocument(strings.NewReader(text))
}

// ParseDocument parses a RAS document from an io.Reader. Any structural or
// format error aborts the parse; no partial document is returned.
func (p *Parser) ParseDocument(r io.Reader) (*Document, error) {
	segments, err := p.Segment(r)
	if err != nil {
		return nil, err
	}

	doc := newDocument()
	for _, seg := range segments {
		list := &List{
			name:    seg.Name,
			line:    seg.Line,
			records: make([]Record, 0, len(seg.Lines)),
		}
		for _, raw := range seg.Lines {
			fields, err := p.DecodeLine(raw.Text)
			if err != nil {
				return nil, atLine(err, raw.Line)
			}
			list.records = append(list.records, Record{line: raw.Line, fields: fields})
		}
		// Segment already rejects duplicates.
		doc.add(list)
	}

	p.logger.Debug("parsed document", "lists", doc.Len())
	return doc, nil
}

// Segment reads r line by line and groups record lines under their list.
// Lists and lines keep their source order.
func (p *Parser) Segment(r io.Reader) ([]Segment, error) {
	scanner := NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(p.maxLineSize, 4096)), p.maxLineSize)

	var (
		segments []Segment
		current  *Segment
		seen     = make(map[string]int)
	)

	for {
		lineNum, line, ok := scanner.NextLine()
		if !ok {
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if trimmed == listCloser {
			if current == nil {
				return nil, structuralError(lineNum, "list closer %q without an open list", listCloser)
			}
			p.logger.Debug("list closed", "list", current.Name, "line", lineNum, "records", len(current.Lines))
			segments = append(segments, *current)
			current = nil
			continue
		}

		if name, ok := listOpener(trimmed); ok {
			if current != nil {
				return nil, structuralError(lineNum, "list %q opened inside list %q (opened at line %d); lists do not nest",
					name, current.Name, current.Line)
			}
			if name == "" {
				return nil, structuralError(lineNum, "list opener without a name")
			}
			if first, dup := seen[name]; dup {
				return nil, structuralError(lineNum, "duplicate list %q (first opened at line %d)", name, first)
			}
			seen[name] = lineNum
			current = &Segment{Name: name, Line: lineNum}
			p.logger.Debug("list opened", "list", name, "line", lineNum)
			continue
		}

		if current == nil {
			return nil, structuralError(lineNum, "content outside of any list: %q", trimmed)
		}
		current.Lines = append(current.Lines, RawLine{Line: lineNum, Text: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", scanner.lineNum+1, err)
	}

	if current != nil {
		return nil, structuralError(current.Line, "list %q is never closed", current.Name)
	}

	return segments, nil
}

// listOpener reports whether a trimmed line opens a list and returns the
// list name. The bare opener "-" yields an empty name, which the caller
// rejects.
func listOpener(line string) (string, bool) {
	name, ok := strings.CutSuffix(line, openSuffix)
	if !ok {
		return "", false
	}
	if name == "" {
		return "", true
	}
	if !isIdentifier(name) {
		return "", false
	}
	return name, true
}

// isIdentifier reports whether s is a run of letters, digits, '_', '.' or '-'.
func isIdentifier(s string) bool {
	alnum := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			alnum = true
		case r == '_', r == '.', r == '-':
		default:
			return false
		}
	}
	return alnum
}

// atLine attaches a source line to a decoder error.
func atLine(err error, line int) error {
	if se, ok := err.(*SyntaxError); ok {
		cp := *se
		cp.Line = line
		return &cp
	}
	return fmt.Errorf("line %d: %w", line, err)
}
