package reporter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/pthm/prosody/internal/meter"
	"github.com/pthm/prosody/internal/rhyme"
	"github.com/pthm/prosody/internal/rules"
	"github.com/pthm/prosody/internal/ui"
)

const reportWidth = 80

// TerminalReporter prints a human-readable report
type TerminalReporter struct {
	w io.Writer
	s *ui.Styles
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, u *ui.UI) *TerminalReporter {
	return &TerminalReporter{w: w, s: u.Styles}
}

// Report prints the meter block, the rhyme block, the matched form and
// any issues
func (r *TerminalReporter) Report(rep *Report) error {
	if rep.Title != "" {
		byline := rep.Title
		if rep.Author != "" {
			byline += " by " + rep.Author
		}
		fmt.Fprintln(r.w, r.s.Header.Render(byline))
	}

	r.printMeter(rep.Analysis.Meter)
	r.printRhyme(rep.Analysis.Rhyme)
	r.printForm(rep)
	r.printIssues(rep.Issues)
	r.printSummary(rep.Issues)
	return nil
}

func (r *TerminalReporter) banner(title string) {
	rule := r.s.Separator.Render(strings.Repeat(r.s.Rule, reportWidth))
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, r.s.Banner.Render(lipgloss.PlaceHorizontal(reportWidth, lipgloss.Center, title)))
	fmt.Fprintln(r.w, rule)
}

func (r *TerminalReporter) printMeter(results []meter.Result) {
	r.banner("METER ANALYSIS")

	for _, res := range results {
		fmt.Fprintf(r.w, "\n%s %s\n", r.s.Label.Render(fmt.Sprintf("Line %d:", res.LineNum)), res.Text)

		if !res.Parseable {
			fmt.Fprintf(r.w, "  %s\n", r.s.Warning.Render(res.Message))
			continue
		}

		fmt.Fprintf(r.w, "  Meter: %s\n", r.s.Meter.Render(res.FullMeter))
		fmt.Fprintf(r.w, "  Syllables: %d\n", res.Syllables)
		if res.StressPattern != "" {
			fmt.Fprintf(r.w, "  Stress pattern: %s\n", r.s.Stress.Render(res.StressPattern))
		}
		fmt.Fprintf(r.w, "  Visualization: %s\n", res.Visualization)
	}
}

func (r *TerminalReporter) printRhyme(a rhyme.Assignment) {
	r.banner("RHYME SCHEME ANALYSIS")

	fmt.Fprintf(r.w, "\nRhyme scheme: %s\n", r.s.Letter.Render(a.Notation()))

	if a.Status == rhyme.StatusNoRhymes {
		fmt.Fprintf(r.w, "\n%s\n", a.Message)
		return
	}

	fmt.Fprintln(r.w, "\nRhyming groups:")
	for _, g := range a.Groups {
		fmt.Fprintf(r.w, "\n  %s:\n", r.s.Letter.Render(g.Letter))
		for _, member := range g.Members {
			fmt.Fprintf(r.w, "    %s %s\n", r.s.Bullet, member)
		}
	}
}

func (r *TerminalReporter) printForm(rep *Report) {
	if rep.Form == nil {
		return
	}
	f := rep.Form.Form
	line := fmt.Sprintf("\nForm: %s (%s)", r.s.Form.Render(f.Title), f.Scheme)
	if f.Meter != "" {
		line += ", " + f.Meter
	}
	fmt.Fprintln(r.w, line)
}

func (r *TerminalReporter) printIssues(issues []rules.Issue) {
	if len(issues) == 0 {
		return
	}

	// Whole-poem issues first, then by line; stable keeps rule order
	sorted := append([]rules.Issue(nil), issues...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Line < sorted[j].Line
	})

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.s.Header.Render("Issues"))
	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

func (r *TerminalReporter) printIssue(issue rules.Issue) {
	var style lipgloss.Style
	var icon string

	switch issue.Severity {
	case rules.Error:
		style, icon = r.s.Error, r.s.IconError
	case rules.Warning:
		style, icon = r.s.Warning, r.s.IconWarning
	case rules.Suggestion:
		style, icon = r.s.Suggestion, r.s.IconSuggestion
	default:
		style, icon = r.s.Info, r.s.IconInfo
	}

	where := "poem"
	if issue.Line > 0 {
		where = fmt.Sprintf("line %d", issue.Line)
	}

	fmt.Fprintf(r.w, "  %s %s %s\n", style.Render(icon), where, r.s.Muted.Render("["+issue.Rule+"]"))
	fmt.Fprintf(r.w, "    %s\n", issue.Message)

	if issue.Context != "" && len(issue.Context) < 200 {
		fmt.Fprintf(r.w, "    %s\n", r.s.Muted.Render("> "+issue.Context))
	}
}

func (r *TerminalReporter) printSummary(issues []rules.Issue) {
	summary := ComputeSummary(issues)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.s.Separator.Render(strings.Repeat(r.s.Rule, 37)))

	if summary.TotalIssues == 0 {
		fmt.Fprintln(r.w, r.paint(color.New(color.FgGreen), r.s.IconSuccess+" No issues found"))
		return
	}

	var parts []string
	if summary.Errors > 0 {
		parts = append(parts, r.paint(color.New(color.FgRed), fmt.Sprintf("%d errors", summary.Errors)))
	}
	if summary.Warnings > 0 {
		parts = append(parts, r.paint(color.New(color.FgYellow), fmt.Sprintf("%d warnings", summary.Warnings)))
	}
	if summary.Suggestions > 0 {
		parts = append(parts, r.paint(color.New(color.FgCyan), fmt.Sprintf("%d suggestions", summary.Suggestions)))
	}
	if summary.Info > 0 {
		parts = append(parts, r.paint(color.New(color.FgBlue), fmt.Sprintf("%d info", summary.Info)))
	}

	fmt.Fprintf(r.w, "Found %d issues: %s\n", summary.TotalIssues, strings.Join(parts, ", "))
}

// paint colors s unless styling is off, so piped output stays plain
func (r *TerminalReporter) paint(c *color.Color, s string) string {
	if !r.s.Enabled() {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}
