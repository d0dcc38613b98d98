package rules

import (
	"fmt"

	"github.com/pthm/prosody/internal/meter"
)

// UnparseableLineRule reports lines the phonetic parser could not scan
type UnparseableLineRule struct{}

func (r *UnparseableLineRule) Name() string {
	return "unparseable-line"
}

func (r *UnparseableLineRule) Description() string {
	return "Reports lines that could not be parsed"
}

func (r *UnparseableLineRule) Config() RuleConfig {
	return RuleConfig{}
}

func (r *UnparseableLineRule) Run(ctx *AnalysisContext) ([]Issue, error) {
	var issues []Issue
	for _, res := range ctx.Analysis.Meter {
		if res.Parseable {
			continue
		}
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: Warning,
			Message:  res.Message,
			Line:     res.LineNum,
			Context:  res.Text,
		})
	}
	return issues, nil
}

// UndeterminedMeterRule reports parsed lines without a recognized foot type
type UndeterminedMeterRule struct{}

func (r *UndeterminedMeterRule) Name() string {
	return "undetermined-meter"
}

func (r *UndeterminedMeterRule) Description() string {
	return "Reports lines whose foot type could not be determined"
}

func (r *UndeterminedMeterRule) Config() RuleConfig {
	return RuleConfig{}
}

func (r *UndeterminedMeterRule) Run(ctx *AnalysisContext) ([]Issue, error) {
	var issues []Issue
	for _, res := range ctx.Analysis.Meter {
		if !res.Parseable || res.FullMeter != meter.Undetermined {
			continue
		}
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: Info,
			Message:  fmt.Sprintf("Meter undetermined (%s, %d syllables)", res.MeterName, res.Syllables),
			Line:     res.LineNum,
			Context:  res.Text,
		})
	}
	return issues, nil
}

// IrregularMeterRule reports lines that depart from the poem's dominant
// meter. It stays quiet unless the dominant meter covers at least
// MinShare of the determined lines.
type IrregularMeterRule struct {
	MinShare float64
}

func (r *IrregularMeterRule) Name() string {
	return "irregular-meter"
}

func (r *IrregularMeterRule) Description() string {
	return "Reports lines that break from the poem's dominant meter"
}

func (r *IrregularMeterRule) Config() RuleConfig {
	return RuleConfig{MinLines: 2}
}

func (r *IrregularMeterRule) Run(ctx *AnalysisContext) ([]Issue, error) {
	minShare := r.MinShare
	if minShare == 0 {
		minShare = 0.5 // Default
	}

	dominant, count := meter.Dominant(ctx.Analysis.Meter)
	if dominant == "" {
		return nil, nil
	}

	determined := 0
	for _, res := range ctx.Analysis.Meter {
		if res.Parseable && res.FullMeter != meter.Undetermined {
			determined++
		}
	}
	if float64(count) < minShare*float64(determined) {
		return nil, nil
	}

	var issues []Issue
	for _, res := range ctx.Analysis.Meter {
		if !res.Parseable || res.FullMeter == meter.Undetermined || res.FullMeter == dominant {
			continue
		}
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: Suggestion,
			Message:  fmt.Sprintf("Line is %s; the poem is mostly %s", res.FullMeter, dominant),
			Line:     res.LineNum,
			Context:  res.Text,
		})
	}
	return issues, nil
}
