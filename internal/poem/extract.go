package poem

import "unicode/utf8"

// Optional annotation fields are resolved through ordered strategy lists.
// Each strategy is total and reports whether it produced a value; the first
// one that does wins.

type syllablesStrategy func(l *Line) ([]string, bool)

var syllableStrategies = []syllablesStrategy{
	func(l *Line) ([]string, bool) {
		return l.Syllables, len(l.Syllables) > 0
	},
	func(l *Line) ([]string, bool) {
		var out []string
		for _, w := range l.Words {
			for _, s := range w.Syllables {
				out = append(out, s.Text)
			}
		}
		return out, len(out) > 0
	},
}

// SyllablesOf returns the syllable texts of a line, or nil when the
// parser supplied no breakdown at all
func SyllablesOf(l *Line) []string {
	if l == nil {
		return nil
	}
	for _, strategy := range syllableStrategies {
		if sylls, ok := strategy(l); ok {
			return sylls
		}
	}
	return nil
}

type rimeStrategy func(l *Line) (RimeKey, bool)

var rimeStrategies = []rimeStrategy{
	func(l *Line) (RimeKey, bool) {
		return l.RimeKey, l.RimeKey != ""
	},
	func(l *Line) (RimeKey, bool) {
		for i := len(l.Words) - 1; i >= 0; i-- {
			sylls := l.Words[i].Syllables
			if len(sylls) == 0 {
				continue
			}
			rime := sylls[len(sylls)-1].Rime
			return rime, rime != ""
		}
		return "", false
	},
}

// RimeOf returns the rime key of the line's final syllable. The empty
// key is returned when nothing is known; it still buckets consistently.
func RimeOf(l *Line) RimeKey {
	if l == nil {
		return ""
	}
	for _, strategy := range rimeStrategies {
		if key, ok := strategy(l); ok {
			return key
		}
	}
	return ""
}

// FeetOf returns the number of feet: the reported count, otherwise half
// the number of metrical slots.
func FeetOf(l *Line) int {
	if l == nil {
		return 0
	}
	if l.FootCount != nil {
		return *l.FootCount
	}
	return l.Slots / 2
}

// SyllableCountOf returns the parser's syllable count, falling back to the
// length of the syllable breakdown and then of the stress pattern.
func SyllableCountOf(l *Line) int {
	if l == nil {
		return 0
	}
	if l.NumSyllables > 0 {
		return l.NumSyllables
	}
	if sylls := SyllablesOf(l); len(sylls) > 0 {
		return len(sylls)
	}
	return utf8.RuneCountInString(l.Stress)
}

// FootTypeOf returns the foot type, or UnknownFoot when absent
func FootTypeOf(l *Line) string {
	if l == nil || l.FootType == "" {
		return UnknownFoot
	}
	return l.FootType
}

// IntPtr returns a pointer to n, for building lines with a foot count
func IntPtr(n int) *int {
	return &n
}
