// Package meter turns a line's foot type and foot count into a named meter
// ("iambic pentameter") and renders a stress visualization of the line.
package meter

import (
	"fmt"

	"github.com/pthm/prosody/internal/poem"
)

const (
	// UnparseableMessage is reported for lines the phonetic parser could not parse
	UnparseableMessage = "Line could not be parsed"

	// Undetermined is the full meter of a line whose foot type is unknown
	Undetermined = "undetermined"

	// NoVisualization is shown when neither stress alignment nor a rendered
	// parse is available
	NoVisualization = "(Visualization not available)"
)

var meterNames = map[int]string{
	1: "monometer",
	2: "dimeter",
	3: "trimeter",
	4: "tetrameter",
	5: "pentameter",
	6: "hexameter",
	7: "heptameter",
	8: "octameter",
}

// Name converts a number of feet to a meter name. Counts outside the
// canonical table yield "<n>-foot".
func Name(feet int) string {
	if name, ok := meterNames[feet]; ok {
		return name
	}
	return fmt.Sprintf("%d-foot", feet)
}

// FullMeter combines foot type and meter name, e.g. "iambic pentameter".
// An empty or unknown foot type gives Undetermined.
func FullMeter(footType, meterName string) string {
	if footType == "" || footType == poem.UnknownFoot || meterName == "" {
		return Undetermined
	}
	return footType + " " + meterName
}

// Result is the meter analysis of a single line
type Result struct {
	LineNum       int    `json:"line_num"`
	Text          string `json:"text"`
	Parseable     bool   `json:"parseable"`
	Message       string `json:"message,omitempty"`
	FootType      string `json:"foot_type,omitempty"`
	MeterName     string `json:"meter_name,omitempty"`
	FullMeter     string `json:"full_meter,omitempty"`
	Syllables     int    `json:"num_syllables,omitempty"`
	StressPattern string `json:"stress_pattern,omitempty"`
	Visualization string `json:"visualization,omitempty"`
}

// Describer computes meter results using a set of stress markers
type Describer struct {
	Markers Markers
}

// NewDescriber creates a Describer. Zero-valued markers fall back to
// DefaultMarkers.
func NewDescriber(m Markers) *Describer {
	if m.Stressed == "" {
		m.Stressed = DefaultMarkers.Stressed
	}
	if m.Unstressed == "" {
		m.Unstressed = DefaultMarkers.Unstressed
	}
	return &Describer{Markers: m}
}

// Describe computes the meter result for one line
func (d *Describer) Describe(l *poem.Line) Result {
	if !l.Parseable {
		return Result{
			LineNum:   l.Num,
			Text:      l.Text,
			Parseable: false,
			Message:   UnparseableMessage,
		}
	}

	footType := poem.FootTypeOf(l)
	meterName := Name(poem.FeetOf(l))

	return Result{
		LineNum:       l.Num,
		Text:          l.Text,
		Parseable:     true,
		FootType:      footType,
		MeterName:     meterName,
		FullMeter:     FullMeter(footType, meterName),
		Syllables:     poem.SyllableCountOf(l),
		StressPattern: l.Stress,
		Visualization: Visualize(l, d.Markers),
	}
}

// DescribeAll computes meter results for lines in the order given
func (d *Describer) DescribeAll(lines []*poem.Line) []Result {
	results := make([]Result, 0, len(lines))
	for _, l := range lines {
		results = append(results, d.Describe(l))
	}
	return results
}

// Describe computes the meter result for one line with the default markers
func Describe(l *poem.Line) Result {
	return NewDescriber(DefaultMarkers).Describe(l)
}

// Dominant returns the most frequent full meter among parseable lines and
// the number of lines carrying it. Ties go to the meter seen first.
// Undetermined lines are not counted.
func Dominant(results []Result) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, r := range results {
		if !r.Parseable || r.FullMeter == Undetermined {
			continue
		}
		if counts[r.FullMeter] == 0 {
			order = append(order, r.FullMeter)
		}
		counts[r.FullMeter]++
	}

	best, bestCount := "", 0
	for _, m := range order {
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
		}
	}
	return best, bestCount
}
