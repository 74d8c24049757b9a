package ras

import (
	"bufio"
	"fmt"
	"os"
)

// Load reads and parses the RAS file at path with the default parser.
func Load(path string) (*Document, error) {
	return defaultParser.Load(path)
}

// Load reads and parses the RAS file at path.
func (p *Parser) Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	doc, err := p.ParseDocument(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// GetFile loads the RAS file at path and resolves one value from it. The
// file is read and parsed on every call.
func GetFile(path, list string, item, subItem int) (Value, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Get(list, item, subItem)
}

// ConvertFile parses the RAS file at src with the default parser and writes
// it to dst in the given format.
func ConvertFile(src, dst string, format Format) error {
	return defaultParser.ConvertFile(src, dst, format)
}

// ConvertFile parses the RAS file at src and writes it to dst in the given
// format. dst is only created once src has parsed, and is removed again if
// writing it fails.
func (p *Parser) ConvertFile(src, dst string, format Format) error {
	doc, err := p.Load(src)
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	w := bufio.NewWriter(out)
	if err := Encode(w, doc, format); err != nil {
		discard(out)
		return err
	}
	if err := w.Flush(); err != nil {
		discard(out)
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// discard closes and removes a partially written output file.
func discard(f *os.File) {
	f.Close()
	os.Remove(f.Name())
}
