package rules

import (
	"fmt"

	"github.com/pthm/prosody/internal/classify"
	"github.com/pthm/prosody/internal/forms"
	"github.com/pthm/prosody/internal/poem"
)

// Severity represents the severity level of an issue
type Severity int

const (
	Info Severity = iota
	Suggestion
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Suggestion:
		return "suggestion"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = Info
	case "suggestion":
		*s = Suggestion
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Issue represents a finding about a poem. Line is 1-based; 0 means the
// issue concerns the whole poem.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
	Context  string   `json:"context,omitempty"`
}

// AnalysisContext provides context for rule analysis
type AnalysisContext struct {
	Poem     *poem.Poem
	Analysis *classify.Analysis
	Catalog  *forms.Catalog

	// Form is the catalog match for the analysis, nil when none fits
	Form *forms.Match
}

// RuleConfig defines how a rule should be invoked
type RuleConfig struct {
	// MinLines skips the rule for poems with fewer lines
	MinLines int
}

// Rule defines the interface for poem rules
type Rule interface {
	// Name returns the unique identifier for this rule
	Name() string

	// Description returns a human-readable description
	Description() string

	// Config returns the rule's configuration
	Config() RuleConfig

	// Run executes the rule and returns any issues found
	Run(ctx *AnalysisContext) ([]Issue, error)
}
