package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses phonetic annotation documents written in JSON
type JSONParser struct{}

// CanParse returns true if this parser can handle the file
func (p *JSONParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeJSON
}

// Parse parses a JSON annotation document
func (p *JSONParser) Parse(path string, content []byte) (*ParsedFile, error) {
	doc, err := DecodeJSON(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &ParsedFile{
		Path:     path,
		Content:  content,
		FileType: FileTypeJSON,
		Title:    doc.Title,
		Author:   doc.Author,
		Stanzas:  stanzasOf(doc),
		Document: doc,
	}, nil
}

// DecodeJSON reads and validates a JSON annotation document
func DecodeJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if _, err := doc.Poem(); err != nil {
		return nil, err
	}
	return &doc, nil
}
