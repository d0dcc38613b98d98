package parser

import (
	"fmt"
	"strings"

	"github.com/pthm/prosody/internal/poem"
)

// Document is the phonetic parser's output for a whole poem. It is the
// wire format of annotation files and of the phonetic services.
type Document struct {
	Title   string      `yaml:"title,omitempty" json:"title,omitempty"`
	Author  string      `yaml:"author,omitempty" json:"author,omitempty"`
	Stanzas []StanzaDoc `yaml:"stanzas" json:"stanzas"`
	Pairs   []PairDoc   `yaml:"pairs,omitempty" json:"pairs,omitempty"`
}

// StanzaDoc is a stanza in a Document
type StanzaDoc struct {
	Lines []LineDoc `yaml:"lines" json:"lines"`
}

// LineDoc is a line in a Document
type LineDoc struct {
	Text         string    `yaml:"text" json:"text"`
	Parseable    *bool     `yaml:"parseable,omitempty" json:"parseable,omitempty"`
	Syllables    []string  `yaml:"syllables,omitempty" json:"syllables,omitempty"`
	Words        []WordDoc `yaml:"words,omitempty" json:"words,omitempty"`
	Stress       string    `yaml:"stress,omitempty" json:"stress,omitempty"`
	FootType     string    `yaml:"foot_type,omitempty" json:"foot_type,omitempty"`
	FootCount    *int      `yaml:"foot_count,omitempty" json:"foot_count,omitempty"`
	Slots        int       `yaml:"slots,omitempty" json:"slots,omitempty"`
	NumSyllables int       `yaml:"num_syllables,omitempty" json:"num_syllables,omitempty"`
	Rendered     string    `yaml:"rendered,omitempty" json:"rendered,omitempty"`
	Rime         string    `yaml:"rime,omitempty" json:"rime,omitempty"`
}

// WordDoc is a word with its syllables
type WordDoc struct {
	Text      string        `yaml:"text" json:"text"`
	Syllables []SyllableDoc `yaml:"syllables,omitempty" json:"syllables,omitempty"`
}

// SyllableDoc is a syllable with its rime
type SyllableDoc struct {
	Text string `yaml:"text" json:"text"`
	Rime string `yaml:"rime,omitempty" json:"rime,omitempty"`
}

// PairDoc links two lines by 1-based poem position
type PairDoc struct {
	A        int     `yaml:"a" json:"a"`
	B        int     `yaml:"b" json:"b"`
	Distance float64 `yaml:"distance,omitempty" json:"distance,omitempty"`
}

// Poem validates the document and converts it to an annotated poem.
// Lines are parseable unless the document says otherwise.
func (d *Document) Poem() (*poem.Poem, error) {
	p := &poem.Poem{
		Title:  d.Title,
		Author: d.Author,
	}

	for si, sd := range d.Stanzas {
		stanza := poem.Stanza{}
		for li, ld := range sd.Lines {
			line, err := ld.line()
			if err != nil {
				return nil, fmt.Errorf("stanza %d line %d: %w", si+1, li+1, err)
			}
			stanza.Lines = append(stanza.Lines, line)
		}
		p.Stanzas = append(p.Stanzas, stanza)
	}
	p.Renumber()

	total := p.LineCount()
	for i, pd := range d.Pairs {
		if pd.A < 1 || pd.A > total || pd.B < 1 || pd.B > total {
			return nil, fmt.Errorf("pair %d: line numbers %d,%d out of range 1..%d", i+1, pd.A, pd.B, total)
		}
		if pd.Distance < 0 {
			return nil, fmt.Errorf("pair %d: negative distance %v", i+1, pd.Distance)
		}
		p.Pairs = append(p.Pairs, poem.RhymePair{
			A:        p.Line(pd.A),
			B:        p.Line(pd.B),
			Distance: pd.Distance,
		})
	}

	return p, nil
}

func (ld LineDoc) line() (*poem.Line, error) {
	stress, err := normalizeStress(ld.Stress)
	if err != nil {
		return nil, err
	}
	if ld.FootCount != nil && *ld.FootCount < 0 {
		return nil, fmt.Errorf("negative foot count %d", *ld.FootCount)
	}

	parseable := true
	if ld.Parseable != nil {
		parseable = *ld.Parseable
	}

	line := &poem.Line{
		Text:         ld.Text,
		Parseable:    parseable,
		Syllables:    ld.Syllables,
		Stress:       stress,
		FootType:     strings.ToLower(strings.TrimSpace(ld.FootType)),
		FootCount:    ld.FootCount,
		Slots:        ld.Slots,
		NumSyllables: ld.NumSyllables,
		Rendered:     ld.Rendered,
		RimeKey:      poem.RimeKey(ld.Rime),
	}
	for _, wd := range ld.Words {
		word := poem.Word{Text: wd.Text}
		for _, sd := range wd.Syllables {
			word.Syllables = append(word.Syllables, poem.Syllable{
				Text: sd.Text,
				Rime: poem.RimeKey(sd.Rime),
			})
		}
		line.Words = append(line.Words, word)
	}
	return line, nil
}

// normalizeStress lowercases the pattern and rejects symbols other than
// stressed and unstressed
func normalizeStress(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, r := range s {
		if r != poem.Stressed && r != poem.Unstressed {
			return "", fmt.Errorf("stress pattern %q: invalid symbol %q at %d", s, r, i)
		}
	}
	return s, nil
}

// FromPoem converts an annotated poem back to its document form
func FromPoem(p *poem.Poem) *Document {
	d := &Document{Title: p.Title, Author: p.Author}

	for _, stanza := range p.Stanzas {
		sd := StanzaDoc{}
		for _, l := range stanza.Lines {
			parseable := l.Parseable
			ld := LineDoc{
				Text:         l.Text,
				Parseable:    &parseable,
				Syllables:    l.Syllables,
				Stress:       l.Stress,
				FootType:     l.FootType,
				FootCount:    l.FootCount,
				Slots:        l.Slots,
				NumSyllables: l.NumSyllables,
				Rendered:     l.Rendered,
				Rime:         string(l.RimeKey),
			}
			for _, w := range l.Words {
				wd := WordDoc{Text: w.Text}
				for _, s := range w.Syllables {
					wd.Syllables = append(wd.Syllables, SyllableDoc{Text: s.Text, Rime: string(s.Rime)})
				}
				ld.Words = append(ld.Words, wd)
			}
			sd.Lines = append(sd.Lines, ld)
		}
		d.Stanzas = append(d.Stanzas, sd)
	}

	for _, pair := range p.Pairs {
		if pair.A == nil || pair.B == nil {
			continue
		}
		d.Pairs = append(d.Pairs, PairDoc{A: pair.A.Num, B: pair.B.Num, Distance: pair.Distance})
	}
	return d
}
