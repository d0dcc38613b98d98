package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser parses poems written in markdown. Each paragraph is a
// stanza; the first level-one heading is the title unless frontmatter
// names one.
type MarkdownParser struct{}

// CanParse returns true if this parser can handle the file
func (p *MarkdownParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeMarkdown
}

// Parse parses a markdown file into stanzas
func (p *MarkdownParser) Parse(path string, content []byte) (*ParsedFile, error) {
	// Extract frontmatter if present
	frontmatter, body := ParseFrontmatter(content)

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(body))

	title, stanzas := p.extractStanzas(doc, body)
	if fmTitle := frontmatterString(frontmatter, "title"); fmTitle != "" {
		title = fmTitle
	}

	return &ParsedFile{
		Path:        path,
		Content:     content, // Keep original content
		FileType:    FileTypeMarkdown,
		Title:       title,
		Author:      frontmatterString(frontmatter, "author"),
		Stanzas:     stanzas,
		Frontmatter: frontmatter,
	}, nil
}

// extractStanzas walks the AST collecting the title heading and paragraphs
func (p *MarkdownParser) extractStanzas(doc ast.Node, source []byte) (string, [][]string) {
	var title string
	var stanzas [][]string

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && title == "" {
				title = strings.TrimSpace(string(node.Text(source)))
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			var lines []string
			segs := node.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				line := strings.TrimSpace(string(seg.Value(source)))
				line = strings.TrimSuffix(line, "\\")
				if line != "" {
					lines = append(lines, strings.TrimSpace(line))
				}
			}
			if len(lines) > 0 {
				stanzas = append(stanzas, lines)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return title, stanzas
}
