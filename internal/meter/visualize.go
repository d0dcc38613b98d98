package meter

import (
	"strings"
	"unicode/utf8"

	"github.com/pthm/prosody/internal/poem"
)

// Markers are the glyphs wrapped around each syllable in a visualization
type Markers struct {
	Stressed   string
	Unstressed string
}

// DefaultMarkers wraps stressed syllables in slashes and unstressed ones in breves
var DefaultMarkers = Markers{Stressed: "/", Unstressed: "˘"}

type visualizer func(l *poem.Line, m Markers) (string, bool)

// visualizers are tried in order; the first that produces output wins
var visualizers = []visualizer{
	alignedStress,
	renderedParse,
}

// Visualize renders the line's stress. It never fails: when no strategy
// applies it returns NoVisualization.
func Visualize(l *poem.Line, m Markers) string {
	for _, v := range visualizers {
		if out, ok := v(l, m); ok {
			return out
		}
	}
	return NoVisualization
}

// alignedStress pairs each syllable with its stress symbol. It only applies
// when the syllable count equals the stress pattern length.
func alignedStress(l *poem.Line, m Markers) (string, bool) {
	if l.Stress == "" {
		return "", false
	}
	sylls := poem.SyllablesOf(l)
	if len(sylls) == 0 || len(sylls) != utf8.RuneCountInString(l.Stress) {
		return "", false
	}

	markers := make([]string, 0, len(sylls))
	i := 0
	for _, stress := range l.Stress {
		marker := m.Unstressed
		if stress == poem.Stressed {
			marker = m.Stressed
		}
		markers = append(markers, marker+sylls[i]+marker)
		i++
	}
	return strings.Join(markers, " "), true
}

func renderedParse(l *poem.Line, _ Markers) (string, bool) {
	return l.Rendered, l.Rendered != ""
}
