package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewDetectsMode(t *testing.T) {
	var buf bytes.Buffer

	if got := New(&buf, &buf, "json").Mode; got != OutputModeJSON {
		t.Errorf("json format mode = %v, want OutputModeJSON", got)
	}
	u := New(&buf, &buf, "terminal")
	if u.Mode != OutputModePlain {
		t.Errorf("buffer mode = %v, want OutputModePlain", u.Mode)
	}
	if u.Styles.Enabled() {
		t.Error("styles should be disabled for non-TTY output")
	}
	if u.StartProgress() != nil {
		t.Error("StartProgress should return nil when not interactive")
	}
	if _, ok := u.Progress(nil).(Quiet); !ok {
		t.Error("Progress(nil) should be Quiet")
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"", "terminal", "json"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("xml"); err == nil {
		t.Error("ValidateFormat(xml) should fail")
	}
}

func TestPlainStylesUseASCII(t *testing.T) {
	s := NewStyles(false)
	if s.IconWarning != "WARN:" || s.Bullet != "-" {
		t.Errorf("plain icons = %q %q", s.IconWarning, s.Bullet)
	}
	if got := s.Letter.Render("A"); got != "A" {
		t.Errorf("plain Render = %q", got)
	}
}

func TestWarn(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, "terminal")
	u.Warn("rule %s failed", "x")
	if got := errOut.String(); got != "WARN: rule x failed\n" {
		t.Errorf("Warn wrote %q", got)
	}
	if out.Len() != 0 {
		t.Error("Warn should not write to stdout")
	}
}

func TestModelStages(t *testing.T) {
	var m tea.Model = NewModel()

	if !strings.Contains(m.View(), "Reading poem") {
		t.Errorf("initial view = %q", m.View())
	}

	m, _ = m.Update(StageMsg(StageAnnotate))
	m, _ = m.Update(OperationMsg("prosodic"))
	if !strings.Contains(m.View(), "(prosodic)") {
		t.Errorf("annotate view = %q", m.View())
	}

	m, _ = m.Update(StageMsg(StageRunRules))
	m, _ = m.Update(RuleCountMsg(2))
	m, _ = m.Update(RuleStartMsg("Running fixed-form..."))
	if !strings.Contains(m.View(), "Running fixed-form...") {
		t.Errorf("rules view = %q", m.View())
	}
	m, _ = m.Update(RuleDoneMsg{})
	if got := m.(Model).rulesDone; got != 1 {
		t.Errorf("rulesDone = %d", got)
	}

	m, cmd := m.Update(DoneMsg{Err: errors.New("x")})
	if cmd == nil {
		t.Error("DoneMsg should quit")
	}
	if m.View() != "" {
		t.Errorf("view after done = %q", m.View())
	}
}

func TestStageString(t *testing.T) {
	if StageClassify.String() != "classify" || Stage(99).String() != "unknown" {
		t.Error("unexpected Stage strings")
	}
}
