package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Progress receives pipeline progress. ProgressController draws it on a
// terminal; Quiet discards it.
type Progress interface {
	SetStage(stage Stage)
	SetOperation(op string)
	SetRuleCount(count int)
	RuleStart(name string)
	RuleDone()
}

// Quiet is a Progress that does nothing
type Quiet struct{}

func (Quiet) SetStage(Stage)      {}
func (Quiet) SetOperation(string) {}
func (Quiet) SetRuleCount(int)    {}
func (Quiet) RuleStart(string)    {}
func (Quiet) RuleDone()           {}

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	program *tea.Program
	done    chan struct{}
}

// StartProgress starts the progress display on the error writer.
// Returns nil if not in interactive mode.
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	p := tea.NewProgram(NewModel(), tea.WithOutput(ui.ErrWriter))
	ctrl := &ProgressController{program: p, done: make(chan struct{})}

	go func() {
		// Rendering errors only affect the spinner, never the analysis
		_, _ = p.Run()
		close(ctrl.done)
	}()

	return ctrl
}

// Progress returns the controller as a Progress, or Quiet when there is
// nothing to draw on
func (ui *UI) Progress(pc *ProgressController) Progress {
	if pc == nil {
		return Quiet{}
	}
	return pc
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetOperation updates the current operation description
func (pc *ProgressController) SetOperation(op string) {
	if pc != nil {
		pc.program.Send(OperationMsg(op))
	}
}

// SetRuleCount sets the total number of rules to run
func (pc *ProgressController) SetRuleCount(count int) {
	if pc != nil {
		pc.program.Send(RuleCountMsg(count))
	}
}

// RuleStart indicates a rule has started
func (pc *ProgressController) RuleStart(name string) {
	if pc != nil {
		pc.program.Send(RuleStartMsg(fmt.Sprintf("Running %s...", name)))
	}
}

// RuleDone indicates a rule has completed
func (pc *ProgressController) RuleDone() {
	if pc != nil {
		pc.program.Send(RuleDoneMsg{})
	}
}

// Done signals that all work is complete and waits for the display to clear
func (pc *ProgressController) Done(err error) {
	if pc != nil {
		pc.program.Send(DoneMsg{Err: err})
		<-pc.done
	}
}
