package reporter

import (
	"github.com/google/uuid"

	"github.com/pthm/prosody/internal/classify"
	"github.com/pthm/prosody/internal/forms"
	"github.com/pthm/prosody/internal/poem"
	"github.com/pthm/prosody/internal/rules"
)

// reportNamespace scopes report IDs so equal poems get equal IDs
var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pthm/prosody/report"))

// Report is everything known about one analyzed poem
type Report struct {
	ID       string
	Source   string
	Title    string
	Author   string
	Lines    int
	Analysis *classify.Analysis
	Form     *forms.Match
	Issues   []rules.Issue
}

// NewReport assembles a report. The ID is derived from the poem text.
func NewReport(source string, p *poem.Poem, a *classify.Analysis, form *forms.Match, issues []rules.Issue) *Report {
	return &Report{
		ID:       uuid.NewSHA1(reportNamespace, []byte(p.Text())).String(),
		Source:   source,
		Title:    p.Title,
		Author:   p.Author,
		Lines:    p.LineCount(),
		Analysis: a,
		Form:     form,
		Issues:   issues,
	}
}

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	// Report outputs the analysis
	Report(r *Report) error
}

// Summary holds issue counts for a report
type Summary struct {
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Suggestions int `json:"suggestions"`
	Info        int `json:"info"`
}

// ComputeSummary computes summary statistics from issues
func ComputeSummary(issues []rules.Issue) Summary {
	s := Summary{
		TotalIssues: len(issues),
	}

	for _, issue := range issues {
		switch issue.Severity {
		case rules.Error:
			s.Errors++
		case rules.Warning:
			s.Warnings++
		case rules.Suggestion:
			s.Suggestions++
		case rules.Info:
			s.Info++
		}
	}

	return s
}
