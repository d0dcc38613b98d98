package parser

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParsedFile represents a parsed poem source. Annotation files carry a
// Document; raw poem sources only carry stanzas of text and still need a
// phonetic source.
type ParsedFile struct {
	Path        string
	Content     []byte
	FileType    FileType
	Title       string
	Author      string
	Stanzas     [][]string
	Document    *Document
	Frontmatter map[string]interface{} // YAML frontmatter from markdown files
}

// FileType represents the type of poem source
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeMarkdown
	FileTypeJSON
	FileTypeYAML
)

func (ft FileType) String() string {
	switch ft {
	case FileTypeMarkdown:
		return "markdown"
	case FileTypeJSON:
		return "json"
	case FileTypeYAML:
		return "yaml"
	default:
		return "text"
	}
}

// Annotated reports whether the file already holds phonetic annotations
func (f *ParsedFile) Annotated() bool {
	return f.Document != nil
}

// Text returns the raw poem text, stanzas separated by blank lines
func (f *ParsedFile) Text() string {
	blocks := make([]string, 0, len(f.Stanzas))
	for _, stanza := range f.Stanzas {
		blocks = append(blocks, strings.Join(stanza, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// Parser defines the interface for parsing poem sources
type Parser interface {
	Parse(path string, content []byte) (*ParsedFile, error)
	CanParse(path string) bool
}

// Parse reads and parses a file using the appropriate parser
func Parse(path string) (*ParsedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseContent(path, content)
}

// ParseContent parses content as if read from path; the extension picks the parser
func ParseContent(path string, content []byte) (*ParsedFile, error) {
	return getParser(path).Parse(path, content)
}

// getParser returns the appropriate parser for a file
func getParser(path string) Parser {
	switch GetFileType(path) {
	case FileTypeMarkdown:
		return &MarkdownParser{}
	case FileTypeJSON:
		return &JSONParser{}
	case FileTypeYAML:
		return &YAMLParser{}
	default:
		return &PlainParser{}
	}
}

// GetFileType returns the FileType for a given path
func GetFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown":
		return FileTypeMarkdown
	case ".json":
		return FileTypeJSON
	case ".yaml", ".yml":
		return FileTypeYAML
	default:
		return FileTypeUnknown
	}
}

// stanzasOf lists the line texts of each stanza in a document
func stanzasOf(d *Document) [][]string {
	out := make([][]string, 0, len(d.Stanzas))
	for _, sd := range d.Stanzas {
		lines := make([]string, 0, len(sd.Lines))
		for _, ld := range sd.Lines {
			lines = append(lines, ld.Text)
		}
		out = append(out, lines)
	}
	return out
}

// ParseFrontmatter extracts YAML frontmatter from content between --- delimiters
// Returns the parsed frontmatter and the remaining content without frontmatter
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte) {
	s := string(content)

	// Must start with ---
	if !strings.HasPrefix(s, "---") {
		return nil, content
	}

	// Find the closing ---
	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}

	frontmatterStr := strings.TrimSpace(rest[:endIdx])

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(frontmatterStr), &frontmatter); err != nil {
		return nil, content
	}

	remaining := rest[endIdx+4:] // +4 for "\n---"
	if strings.HasPrefix(remaining, "\n") {
		remaining = remaining[1:]
	}

	return frontmatter, []byte(remaining)
}

// frontmatterString returns a string field from frontmatter, or ""
func frontmatterString(fm map[string]interface{}, key string) string {
	if v, ok := fm[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
