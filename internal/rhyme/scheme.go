package rhyme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pthm/prosody/internal/poem"
)

const (
	// Unrhymed labels a line that belongs to no rhyme group
	Unrhymed = "X"

	// Overflow labels groups past the 26th
	Overflow = "?"

	// NoneNotation is the scheme notation reported when no rhymes were detected
	NoneNotation = "None"

	// NoRhymesMessage explains the no-rhymes state
	NoRhymesMessage = "No rhyming lines detected"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Status tells whether any rhyme evidence was found
type Status int

const (
	StatusDetected Status = iota
	StatusNoRhymes
)

func (s Status) String() string {
	switch s {
	case StatusDetected:
		return "detected"
	case StatusNoRhymes:
		return "no_rhymes"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "detected":
		*s = StatusDetected
	case "no_rhymes":
		*s = StatusNoRhymes
	default:
		return fmt.Errorf("unknown rhyme status %q", text)
	}
	return nil
}

// LetterGroup lists the distinct line texts carrying a scheme letter
type LetterGroup struct {
	Letter  string       `json:"letter"`
	Key     poem.RimeKey `json:"key"`
	Members []string     `json:"members"`
}

// Assignment is the rhyme scheme of a poem
type Assignment struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`

	// Scheme has one symbol per line in poem order
	Scheme string `json:"scheme"`

	// Letters is Scheme split per line
	Letters []string `json:"letters"`

	// Groups are ordered by letter assignment
	Groups []LetterGroup `json:"groups"`

	// LineToLetter maps trimmed line text to its letter
	LineToLetter map[string]string `json:"-"`
}

// Notation returns the scheme as reported to readers: the scheme string,
// or NoneNotation when no rhymes were detected
func (a Assignment) Notation() string {
	if a.Status == StatusNoRhymes {
		return NoneNotation
	}
	return a.Scheme
}

// HasOverflow reports whether more than 26 groups were labelled
func (a Assignment) HasOverflow() bool {
	for _, g := range a.Groups {
		if g.Letter == Overflow {
			return true
		}
	}
	return false
}

// letterSequence hands out A..Z, then Overflow. It is created per call so
// no labelling state survives between classifications.
type letterSequence struct {
	next int
}

func (s *letterSequence) take() string {
	if s.next >= len(alphabet) {
		return Overflow
	}
	letter := alphabet[s.next : s.next+1]
	s.next++
	return letter
}

// Assign labels rhyme groups with letters in group order and derives the
// poem-order scheme. Lines are matched to groups by trimmed text, so lines
// with identical wording share membership while still getting one scheme
// symbol per position.
func Assign(res Resolution, lines []*poem.Line) Assignment {
	if !res.Detected {
		letters := make([]string, len(lines))
		for i := range letters {
			letters[i] = Unrhymed
		}
		return Assignment{
			Status:       StatusNoRhymes,
			Message:      NoRhymesMessage,
			Scheme:       strings.Join(letters, ""),
			Letters:      letters,
			LineToLetter: map[string]string{},
		}
	}

	seq := &letterSequence{}
	lineToLetter := make(map[string]string)
	var groups []LetterGroup
	byLetter := make(map[string]int)

	for _, g := range res.Groups {
		letter := seq.take()
		for _, member := range g.Members {
			lineToLetter[member] = letter
		}

		i, ok := byLetter[letter]
		if !ok {
			i = len(groups)
			byLetter[letter] = i
			groups = append(groups, LetterGroup{Letter: letter, Key: g.Key})
		}
		for _, member := range g.Members {
			if !slices.Contains(groups[i].Members, member) {
				groups[i].Members = append(groups[i].Members, member)
			}
		}
	}

	letters := make([]string, len(lines))
	for i, l := range lines {
		if letter, ok := lineToLetter[strings.TrimSpace(l.Text)]; ok {
			letters[i] = letter
		} else {
			letters[i] = Unrhymed
		}
	}

	return Assignment{
		Status:       StatusDetected,
		Scheme:       strings.Join(letters, ""),
		Letters:      letters,
		Groups:       groups,
		LineToLetter: lineToLetter,
	}
}

// Classify resolves the poem's rhyme pairs and assigns the scheme
func (r Resolver) Classify(p *poem.Poem) Assignment {
	if p == nil {
		return Assign(Resolution{}, nil)
	}
	return Assign(r.Resolve(p.Pairs), p.Lines())
}
