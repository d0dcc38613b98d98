package parser

import (
	"strings"
)

// PlainParser parses plain poem text: one line per row, stanzas separated
// by blank rows
type PlainParser struct{}

// CanParse returns true (fallback parser)
func (p *PlainParser) CanParse(path string) bool {
	return true
}

// Parse parses a plain text poem
func (p *PlainParser) Parse(path string, content []byte) (*ParsedFile, error) {
	return &ParsedFile{
		Path:     path,
		Content:  content,
		FileType: FileTypeUnknown,
		Stanzas:  SplitStanzas(string(content)),
	}, nil
}

// SplitStanzas splits raw poem text into stanzas of trimmed lines
func SplitStanzas(text string) [][]string {
	var stanzas [][]string
	var current []string

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, row := range strings.Split(text, "\n") {
		row = strings.TrimRight(row, " \t")
		if strings.TrimSpace(row) == "" {
			if len(current) > 0 {
				stanzas = append(stanzas, current)
				current = nil
			}
			continue
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		stanzas = append(stanzas, current)
	}
	return stanzas
}
