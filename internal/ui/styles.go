package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Severity styles
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Suggestion lipgloss.Style
	Info       lipgloss.Style
	Success    lipgloss.Style

	// Report structure
	Banner    lipgloss.Style
	Header    lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Separator lipgloss.Style

	// Prosody
	Meter  lipgloss.Style
	Stress lipgloss.Style
	Letter lipgloss.Style
	Form   lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconError      string
	IconWarning    string
	IconSuggestion string
	IconInfo       string
	IconSuccess    string
	Bullet         string
	Rule           string
}

// NewStyles creates a new Styles instance.
// When enabled is false, styles return text unchanged (for non-TTY output).
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if !enabled {
		plain := lipgloss.NewStyle()
		s.Error, s.Warning, s.Suggestion, s.Info, s.Success = plain, plain, plain, plain, plain
		s.Banner, s.Header, s.Label, s.Muted, s.Separator = plain, plain, plain, plain, plain
		s.Meter, s.Stress, s.Letter, s.Form = plain, plain, plain, plain

		s.IconError = "ERROR:"
		s.IconWarning = "WARN:"
		s.IconSuggestion = "HINT:"
		s.IconInfo = "INFO:"
		s.IconSuccess = "OK:"
		s.Bullet = "-"
		s.Rule = "="
		return s
	}

	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))       // Red
	s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))    // Yellow
	s.Suggestion = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan
	s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))       // Blue
	s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))    // Green

	s.Banner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")) // Magenta bold
	s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
	s.Label = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	s.Meter = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	s.Stress = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	s.Letter = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	s.Form = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	s.IconError = "✗"
	s.IconWarning = "⚠"
	s.IconSuggestion = "\U0001f4a1"
	s.IconInfo = "ℹ"
	s.IconSuccess = "✓"
	s.Bullet = "•"
	s.Rule = "─"

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}
