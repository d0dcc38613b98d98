package poem

import (
	"reflect"
	"testing"
)

func twoStanzas() *Poem {
	p := &Poem{
		Stanzas: []Stanza{
			{Lines: []*Line{{Text: "one"}, {Text: "two"}}},
			{Lines: []*Line{{Text: "three"}}},
		},
	}
	p.Renumber()
	return p
}

func TestPoemOrder(t *testing.T) {
	p := twoStanzas()

	if got := p.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}

	var texts []string
	for _, l := range p.Lines() {
		texts = append(texts, l.Text)
	}
	if want := []string{"one", "two", "three"}; !reflect.DeepEqual(texts, want) {
		t.Errorf("Lines() = %v, want %v", texts, want)
	}

	for i, l := range p.Lines() {
		if l.Num != i+1 {
			t.Errorf("line %q has Num %d, want %d", l.Text, l.Num, i+1)
		}
	}

	if got := p.Line(3); got == nil || got.Text != "three" {
		t.Errorf("Line(3) = %v, want three", got)
	}
	if got := p.Line(0); got != nil {
		t.Errorf("Line(0) = %v, want nil", got)
	}
	if got := p.Line(4); got != nil {
		t.Errorf("Line(4) = %v, want nil", got)
	}
}

func TestPoemText(t *testing.T) {
	p := twoStanzas()
	want := "one\ntwo\n\nthree\n"
	if got := p.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestNilPoem(t *testing.T) {
	var p *Poem
	if p.Lines() != nil {
		t.Error("Lines() on nil poem should be nil")
	}
	if p.LineCount() != 0 {
		t.Error("LineCount() on nil poem should be 0")
	}
}

func TestSyllablesOf(t *testing.T) {
	tests := []struct {
		name string
		line *Line
		want []string
	}{
		{
			name: "explicit syllables win",
			line: &Line{
				Syllables: []string{"a", "b"},
				Words:     []Word{{Syllables: []Syllable{{Text: "x"}}}},
			},
			want: []string{"a", "b"},
		},
		{
			name: "flattened from words",
			line: &Line{
				Words: []Word{
					{Text: "fairest", Syllables: []Syllable{{Text: "fair"}, {Text: "est"}}},
					{Text: "rose", Syllables: []Syllable{{Text: "rose"}}},
				},
			},
			want: []string{"fair", "est", "rose"},
		},
		{
			name: "nothing available",
			line: &Line{},
			want: nil,
		},
		{
			name: "nil line",
			line: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SyllablesOf(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SyllablesOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRimeOf(t *testing.T) {
	tests := []struct {
		name string
		line *Line
		want RimeKey
	}{
		{"explicit key", &Line{RimeKey: "ays"}, "ays"},
		{
			"last syllable of last word",
			&Line{Words: []Word{
				{Syllables: []Syllable{{Text: "in", Rime: "in"}}},
				{Syllables: []Syllable{{Text: "crea", Rime: "ea"}, {Text: "ses", Rime: "es"}}},
			}},
			"es",
		},
		{
			"skips trailing words without syllables",
			&Line{Words: []Word{
				{Syllables: []Syllable{{Text: "die", Rime: "ai"}}},
				{Text: "—"},
			}},
			"ai",
		},
		{"unknown", &Line{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RimeOf(tt.line); got != tt.want {
				t.Errorf("RimeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeetOf(t *testing.T) {
	if got := FeetOf(&Line{FootCount: IntPtr(5), Slots: 4}); got != 5 {
		t.Errorf("FeetOf(reported 5) = %d, want 5", got)
	}
	if got := FeetOf(&Line{FootCount: IntPtr(0), Slots: 10}); got != 0 {
		t.Errorf("FeetOf(reported 0) = %d, want 0", got)
	}
	if got := FeetOf(&Line{Slots: 10}); got != 5 {
		t.Errorf("FeetOf(10 slots) = %d, want 5", got)
	}
	if got := FeetOf(&Line{Slots: 7}); got != 3 {
		t.Errorf("FeetOf(7 slots) = %d, want 3", got)
	}
}

func TestSyllableCountOf(t *testing.T) {
	tests := []struct {
		name string
		line *Line
		want int
	}{
		{"reported", &Line{NumSyllables: 10, Syllables: []string{"a"}}, 10},
		{"from syllables", &Line{Syllables: []string{"a", "b", "c"}}, 3},
		{"from stress", &Line{Stress: "wswsw"}, 5},
		{"none", &Line{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SyllableCountOf(tt.line); got != tt.want {
				t.Errorf("SyllableCountOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFootTypeOf(t *testing.T) {
	if got := FootTypeOf(&Line{FootType: "iambic"}); got != "iambic" {
		t.Errorf("FootTypeOf() = %q, want iambic", got)
	}
	if got := FootTypeOf(&Line{}); got != UnknownFoot {
		t.Errorf("FootTypeOf(empty) = %q, want %q", got, UnknownFoot)
	}
}
