package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/prosody/internal/forms"
	"github.com/pthm/prosody/internal/meter"
	"github.com/pthm/prosody/internal/rhyme"
	"github.com/pthm/prosody/internal/rules"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	ID      string         `json:"id"`
	Source  string         `json:"source,omitempty"`
	Title   string         `json:"title,omitempty"`
	Author  string         `json:"author,omitempty"`
	Lines   int            `json:"lines"`
	Meter   []meter.Result `json:"meter"`
	Rhyme   JSONRhyme      `json:"rhyme"`
	Form    *forms.Match   `json:"form,omitempty"`
	Issues  []rules.Issue  `json:"issues"`
	Summary Summary        `json:"summary"`
}

// JSONRhyme is the rhyme scheme in JSON format. Scheme is the reader-facing
// notation ("None" when no rhymes were detected); Letters keeps one symbol
// per line either way.
type JSONRhyme struct {
	Status  rhyme.Status        `json:"status"`
	Message string              `json:"message,omitempty"`
	Scheme  string              `json:"scheme"`
	Letters []string            `json:"letters"`
	Groups  []rhyme.LetterGroup `json:"groups"`
}

// ToJSON converts a report to its JSON form
func ToJSON(r *Report) JSONOutput {
	a := r.Analysis.Rhyme
	out := JSONOutput{
		ID:     r.ID,
		Source: r.Source,
		Title:  r.Title,
		Author: r.Author,
		Lines:  r.Lines,
		Meter:  r.Analysis.Meter,
		Rhyme: JSONRhyme{
			Status:  a.Status,
			Message: a.Message,
			Scheme:  a.Notation(),
			Letters: a.Letters,
			Groups:  a.Groups,
		},
		Form:    r.Form,
		Issues:  r.Issues,
		Summary: ComputeSummary(r.Issues),
	}

	// Keep empty collections as [] rather than null
	if out.Meter == nil {
		out.Meter = []meter.Result{}
	}
	if out.Rhyme.Letters == nil {
		out.Rhyme.Letters = []string{}
	}
	if out.Rhyme.Groups == nil {
		out.Rhyme.Groups = []rhyme.LetterGroup{}
	}
	if out.Issues == nil {
		out.Issues = []rules.Issue{}
	}
	return out
}

// Report outputs the analysis as indented JSON
func (r *JSONReporter) Report(rep *Report) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ToJSON(rep))
}
