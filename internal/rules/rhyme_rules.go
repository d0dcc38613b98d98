package rules

import (
	"fmt"

	"github.com/pthm/prosody/internal/rhyme"
)

// UnrhymedLineRule reports lines outside every rhyme group
type UnrhymedLineRule struct{}

func (r *UnrhymedLineRule) Name() string {
	return "unrhymed-line"
}

func (r *UnrhymedLineRule) Description() string {
	return "Reports lines that belong to no rhyme group"
}

func (r *UnrhymedLineRule) Config() RuleConfig {
	return RuleConfig{}
}

func (r *UnrhymedLineRule) Run(ctx *AnalysisContext) ([]Issue, error) {
	a := ctx.Analysis.Rhyme
	if a.Status == rhyme.StatusNoRhymes {
		return []Issue{{
			Rule:     r.Name(),
			Severity: Info,
			Message:  a.Message,
		}}, nil
	}

	var issues []Issue
	lines := ctx.Poem.Lines()
	for i, letter := range a.Letters {
		if letter != rhyme.Unrhymed {
			continue
		}
		issue := Issue{
			Rule:     r.Name(),
			Severity: Info,
			Message:  "Line does not rhyme with any other line",
			Line:     i + 1,
		}
		if i < len(lines) {
			issue.Context = lines[i].Text
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// SchemeOverflowRule reports schemes with more rhyme groups than letters
type SchemeOverflowRule struct{}

func (r *SchemeOverflowRule) Name() string {
	return "scheme-overflow"
}

func (r *SchemeOverflowRule) Description() string {
	return "Reports rhyme schemes that ran out of letters"
}

func (r *SchemeOverflowRule) Config() RuleConfig {
	return RuleConfig{}
}

func (r *SchemeOverflowRule) Run(ctx *AnalysisContext) ([]Issue, error) {
	if !ctx.Analysis.Rhyme.HasOverflow() {
		return nil, nil
	}

	var members int
	for _, g := range ctx.Analysis.Rhyme.Groups {
		if g.Letter == rhyme.Overflow {
			members = len(g.Members)
		}
	}
	return []Issue{{
		Rule:     r.Name(),
		Severity: Warning,
		Message: fmt.Sprintf("More than 26 rhyme groups; %d lines past Z share the %q label and may not rhyme with each other",
			members, rhyme.Overflow),
	}}, nil
}

// FixedFormRule reports the fixed form the poem matches, and whether its
// meter agrees with the form's
type FixedFormRule struct{}

func (r *FixedFormRule) Name() string {
	return "fixed-form"
}

func (r *FixedFormRule) Description() string {
	return "Reports the fixed poetic form matching the rhyme scheme"
}

func (r *FixedFormRule) Config() RuleConfig {
	return RuleConfig{MinLines: 2}
}

func (r *FixedFormRule) Run(ctx *AnalysisContext) ([]Issue, error) {
	m := ctx.Form
	if m == nil {
		return nil, nil
	}

	issues := []Issue{{
		Rule:     r.Name(),
		Severity: Info,
		Message:  fmt.Sprintf("Rhyme scheme matches the %s (%s)", m.Form.Title, m.Form.Scheme),
	}}

	if !m.MeterMatch {
		got := m.Meter
		if got == "" {
			got = "undetermined"
		}
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: Suggestion,
			Message:  fmt.Sprintf("A %s is usually in %s, but this poem is mostly %s", m.Form.Title, m.Form.Meter, got),
		})
	}
	return issues, nil
}
