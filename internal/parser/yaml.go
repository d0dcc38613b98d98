package parser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses phonetic annotation documents written in YAML
type YAMLParser struct{}

// CanParse returns true if this parser can handle the file
func (p *YAMLParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeYAML
}

// Parse parses a YAML annotation document
func (p *YAMLParser) Parse(path string, content []byte) (*ParsedFile, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// Validate by converting once; callers convert again as needed
	if _, err := doc.Poem(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &ParsedFile{
		Path:     path,
		Content:  content,
		FileType: FileTypeYAML,
		Title:    doc.Title,
		Author:   doc.Author,
		Stanzas:  stanzasOf(&doc),
		Document: &doc,
	}, nil
}
