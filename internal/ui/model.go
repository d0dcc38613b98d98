package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage represents the current stage of an analysis
type Stage int

const (
	StageLoadPoem Stage = iota
	StageAnnotate
	StageClassify
	StageRunRules
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageLoadPoem:
		return "load"
	case StageAnnotate:
		return "annotate"
	case StageClassify:
		return "classify"
	case StageRunRules:
		return "rules"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Message types for updating the model
type (
	StageMsg     Stage
	OperationMsg string
	RuleStartMsg string
	RuleDoneMsg  struct{}
	DoneMsg      struct{ Err error }
	RuleCountMsg int
)

// Model is the Bubbletea model for progress display
type Model struct {
	stage     Stage
	spinner   spinner.Model
	progress  progress.Model
	currentOp string
	ruleCount int
	rulesDone int
	quitting  bool
	err       error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		stage:    StageLoadPoem,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-4, 60)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = Stage(msg)
		m.currentOp = ""
		return m, nil

	case OperationMsg:
		m.currentOp = string(msg)
		return m, nil

	case RuleStartMsg:
		m.currentOp = string(msg)
		return m, nil

	case RuleCountMsg:
		m.ruleCount = int(msg)
		m.rulesDone = 0
		return m, nil

	case RuleDoneMsg:
		m.rulesDone++
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	switch m.stage {
	case StageLoadPoem:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Reading poem...")

	case StageAnnotate:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Scanning syllables and stress")
		if m.currentOp != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", m.currentOp))
		}

	case StageClassify:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Classifying meter and rhyme...")

	case StageRunRules:
		if m.ruleCount > 0 {
			sb.WriteString(m.progress.ViewAs(float64(m.rulesDone) / float64(m.ruleCount)))
			sb.WriteString("\n")
		}
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		if m.currentOp != "" {
			sb.WriteString(m.currentOp)
		} else {
			sb.WriteString("Running rules...")
		}
	}

	return sb.String()
}
