// Package poem holds the phonetic annotations produced by an external
// phonetic parser: lines, stanzas, and the rhyme pairs between lines.
// Values are built once by a parser and treated as read-only afterwards.
package poem

// Stress symbols used in a line's stress pattern
const (
	Stressed   = 's'
	Unstressed = 'w'
)

// UnknownFoot is the foot type reported when the parser could not decide one
const UnknownFoot = "unknown"

// RimeKey is the phonological content of a line's final syllable, from the
// vowel nucleus to the end. It is opaque to the classifier and only
// compared for equality.
type RimeKey string

// Syllable is a single syllable of a word
type Syllable struct {
	Text string
	Rime RimeKey
}

// Word is a word of a line with its syllables
type Word struct {
	Text      string
	Syllables []Syllable
}

// Line is a single line of a poem as annotated by the phonetic parser
type Line struct {
	// Num is the 1-based position of the line in poem order
	Num int

	// Text is the raw text of the line
	Text string

	// Parseable is false when the parser found no valid metrical parse
	Parseable bool

	// Syllables is the syllable breakdown of the chosen parse
	Syllables []string

	// Words is the per-word breakdown, used when Syllables is empty
	Words []Word

	// Stress has one symbol per syllable (Stressed or Unstressed)
	Stress string

	// FootType is the metrical foot category (iambic, trochaic, ...)
	FootType string

	// FootCount is the number of feet; nil when the parser did not report it
	FootCount *int

	// Slots is the number of metrical positions of the chosen parse
	Slots int

	// NumSyllables is the parser's own syllable count (0 = not reported)
	NumSyllables int

	// Rendered is the parser's raw rendering of the chosen parse
	Rendered string

	// RimeKey is the rime of the final syllable
	RimeKey RimeKey
}

// Stanza is an ordered group of lines
type Stanza struct {
	Lines []*Line
}

// RhymePair associates two lines the parser considers rhyming.
// Smaller distances mean closer rhymes.
type RhymePair struct {
	A        *Line
	B        *Line
	Distance float64
}

// Poem is an annotated poem
type Poem struct {
	Title   string
	Author  string
	Stanzas []Stanza
	Pairs   []RhymePair
}

// Lines returns all lines in poem order (stanzas concatenated)
func (p *Poem) Lines() []*Line {
	if p == nil {
		return nil
	}
	var lines []*Line
	for _, stanza := range p.Stanzas {
		lines = append(lines, stanza.Lines...)
	}
	return lines
}

// LineCount returns the total number of lines across all stanzas
func (p *Poem) LineCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, stanza := range p.Stanzas {
		n += len(stanza.Lines)
	}
	return n
}

// Line returns the line at 1-based poem position num, or nil
func (p *Poem) Line(num int) *Line {
	if num < 1 {
		return nil
	}
	for _, stanza := range p.Stanzas {
		if num <= len(stanza.Lines) {
			return stanza.Lines[num-1]
		}
		num -= len(stanza.Lines)
	}
	return nil
}

// Renumber assigns Num to every line according to poem order
func (p *Poem) Renumber() {
	n := 0
	for _, stanza := range p.Stanzas {
		for _, line := range stanza.Lines {
			n++
			line.Num = n
		}
	}
}

// Text returns the poem text, one line per row and a blank row between stanzas
func (p *Poem) Text() string {
	var out []byte
	for i, stanza := range p.Stanzas {
		if i > 0 {
			out = append(out, '\n')
		}
		for _, line := range stanza.Lines {
			out = append(out, line.Text...)
			out = append(out, '\n')
		}
	}
	return string(out)
}
