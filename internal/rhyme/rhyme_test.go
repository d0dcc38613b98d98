package rhyme

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/prosody/internal/poem"
)

// buildPoem creates a single-stanza poem whose lines carry the given rime keys
func buildPoem(keys ...poem.RimeKey) *poem.Poem {
	p := &poem.Poem{Stanzas: []poem.Stanza{{}}}
	for i, key := range keys {
		p.Stanzas[0].Lines = append(p.Stanzas[0].Lines, &poem.Line{
			Text:      fmt.Sprintf("L%d", i+1),
			Parseable: true,
			RimeKey:   key,
		})
	}
	p.Renumber()
	return p
}

// pair links 1-based line numbers a and b
func pair(p *poem.Poem, a, b int) poem.RhymePair {
	return poem.RhymePair{A: p.Line(a), B: p.Line(b)}
}

var groupings = []Grouping{GroupUnion, GroupKeyed}

func TestAlternatingQuatrain(t *testing.T) {
	for _, g := range groupings {
		t.Run(g.String(), func(t *testing.T) {
			p := buildPoem("K1", "K2", "K1", "K2")
			p.Pairs = []poem.RhymePair{pair(p, 1, 3), pair(p, 2, 4)}

			a := Resolver{Grouping: g}.Classify(p)

			assert.Equal(t, StatusDetected, a.Status)
			assert.Equal(t, "ABAB", a.Scheme)
			assert.Equal(t, "ABAB", a.Notation())
			require.Len(t, a.Groups, 2)
			assert.Equal(t, LetterGroup{Letter: "A", Key: "K1", Members: []string{"L1", "L3"}}, a.Groups[0])
			assert.Equal(t, LetterGroup{Letter: "B", Key: "K2", Members: []string{"L2", "L4"}}, a.Groups[1])
		})
	}
}

func TestSingleLineWithoutRhymes(t *testing.T) {
	p := buildPoem("K1")

	a := Resolver{}.Classify(p)

	assert.Equal(t, StatusNoRhymes, a.Status)
	assert.Equal(t, "X", a.Scheme)
	assert.Equal(t, NoneNotation, a.Notation())
	assert.Equal(t, NoRhymesMessage, a.Message)
	assert.Empty(t, a.Groups)
}

func TestNoRhymesNotationIsDistinct(t *testing.T) {
	p := buildPoem("K1", "K2", "K3")

	a := Resolver{}.Classify(p)

	assert.Equal(t, StatusNoRhymes, a.Status)
	assert.Len(t, a.Scheme, 3)
	assert.NotEqual(t, strings.Repeat(Unrhymed, 3), a.Notation())
}

func TestEmptyPoem(t *testing.T) {
	a := Resolver{}.Classify(&poem.Poem{})
	assert.Equal(t, "", a.Scheme)
	assert.Equal(t, StatusNoRhymes, a.Status)

	a = Resolver{}.Classify(nil)
	assert.Equal(t, "", a.Scheme)
}

func TestSchemeLengthMatchesLineCount(t *testing.T) {
	for n := 0; n <= 12; n++ {
		keys := make([]poem.RimeKey, n)
		for i := range keys {
			keys[i] = poem.RimeKey(fmt.Sprintf("K%d", i%3))
		}
		p := buildPoem(keys...)
		for i := 1; i+3 <= n; i++ {
			p.Pairs = append(p.Pairs, pair(p, i, i+3))
		}
		for _, g := range groupings {
			a := Resolver{Grouping: g}.Classify(p)
			assert.Len(t, a.Scheme, n, "grouping=%s lines=%d", g, n)
			assert.Len(t, a.Letters, n, "grouping=%s lines=%d", g, n)
		}
	}
}

func TestLettersFollowDiscoveryOrder(t *testing.T) {
	for _, g := range groupings {
		t.Run(g.String(), func(t *testing.T) {
			p := buildPoem("key1", "key2", "key3", "key1", "key2", "key3")
			// key3 is discovered first, then key1, then key2
			p.Pairs = []poem.RhymePair{pair(p, 3, 6), pair(p, 1, 4), pair(p, 2, 5)}

			a := Resolver{Grouping: g}.Classify(p)

			assert.Equal(t, "BCABCA", a.Scheme)
			require.Len(t, a.Groups, 3)
			assert.Equal(t, poem.RimeKey("key3"), a.Groups[0].Key)
			assert.Equal(t, "A", a.Groups[0].Letter)
			assert.Equal(t, []string{"L3", "L6"}, a.Groups[0].Members)
		})
	}
}

func TestOverflowPastTwentySix(t *testing.T) {
	const groupCount = 28
	keys := make([]poem.RimeKey, 0, groupCount*2)
	for i := 0; i < groupCount; i++ {
		key := poem.RimeKey(fmt.Sprintf("k%02d", i))
		keys = append(keys, key, key)
	}
	p := buildPoem(keys...)
	for i := 0; i < groupCount; i++ {
		p.Pairs = append(p.Pairs, pair(p, 2*i+1, 2*i+2))
	}

	for _, g := range groupings {
		t.Run(g.String(), func(t *testing.T) {
			a := Resolver{Grouping: g}.Classify(p)

			var want strings.Builder
			for i := 0; i < 26; i++ {
				want.WriteString(strings.Repeat(alphabet[i:i+1], 2))
			}
			want.WriteString("????")
			assert.Equal(t, want.String(), a.Scheme)
			assert.True(t, a.HasOverflow())

			// groups sharing the overflow label are listed together
			require.Len(t, a.Groups, 27)
			last := a.Groups[26]
			assert.Equal(t, Overflow, last.Letter)
			assert.Equal(t, []string{"L53", "L54", "L55", "L56"}, last.Members)
		})
	}
}

func TestAllLinesShareOneKey(t *testing.T) {
	p := buildPoem("K", "K", "K", "K")
	p.Pairs = []poem.RhymePair{pair(p, 1, 2), pair(p, 1, 3), pair(p, 1, 4)}

	for _, g := range groupings {
		a := Resolver{Grouping: g}.Classify(p)
		assert.Equal(t, "AAAA", a.Scheme, g.String())
	}
}

func TestIdenticalWordingSharesMembership(t *testing.T) {
	p := buildPoem("K1", "K1", "K2")
	p.Line(1).Text = "the same line"
	p.Line(2).Text = "  the same line  "
	p.Line(3).Text = "another"
	p.Pairs = []poem.RhymePair{pair(p, 1, 3)}

	for _, g := range groupings {
		a := Resolver{Grouping: g}.Classify(p)
		assert.Equal(t, "AAA", a.Scheme, g.String())
		require.Len(t, a.Groups, 1)
		assert.Equal(t, []string{"the same line", "another"}, a.Groups[0].Members)
	}
}

func TestKeyedAndUnionDisagreeOnBridgingPair(t *testing.T) {
	p := buildPoem("K1", "K2", "K1", "K2")
	// the last pair bridges the K1 group and the K2 group
	p.Pairs = []poem.RhymePair{pair(p, 1, 3), pair(p, 2, 4), pair(p, 3, 2)}

	keyed := Resolver{Grouping: GroupKeyed}.Classify(p)
	assert.Equal(t, "ABAB", keyed.Scheme)
	require.Len(t, keyed.Groups, 2)
	// L2 sits in both keyed groups; the later group wins the lookup
	assert.Equal(t, []string{"L1", "L3", "L2"}, keyed.Groups[0].Members)
	assert.Equal(t, "B", keyed.LineToLetter["L2"])

	union := Resolver{Grouping: GroupUnion}.Classify(p)
	assert.Equal(t, "AAAA", union.Scheme)
	require.Len(t, union.Groups, 1)
	assert.Equal(t, poem.RimeKey("K1"), union.Groups[0].Key)
	assert.ElementsMatch(t, []string{"L1", "L2", "L3", "L4"}, union.Groups[0].Members)
}

func TestLettersFollowGroupsNotKeys(t *testing.T) {
	p := buildPoem("K1", "K2", "K1", "K2")
	p.Pairs = []poem.RhymePair{pair(p, 1, 2), pair(p, 3, 4)}

	// Two unconnected sets that happen to share a representative key keep
	// their own letters
	union := Resolver{Grouping: GroupUnion}.Classify(p)
	assert.Equal(t, "AABB", union.Scheme)
	require.Len(t, union.Groups, 2)
	assert.Equal(t, poem.RimeKey("K1"), union.Groups[0].Key)
	assert.Equal(t, poem.RimeKey("K1"), union.Groups[1].Key)

	keyed := Resolver{Grouping: GroupKeyed}.Classify(p)
	assert.Equal(t, "AAAA", keyed.Scheme)
}

func TestUnionTransitiveClosure(t *testing.T) {
	p := buildPoem("K1", "K2", "K3", "K4")
	p.Pairs = []poem.RhymePair{pair(p, 1, 2), pair(p, 3, 4), pair(p, 2, 3)}

	a := Resolver{Grouping: GroupUnion}.Classify(p)
	assert.Equal(t, "AAAA", a.Scheme)

	k := Resolver{Grouping: GroupKeyed}.Classify(p)
	assert.Equal(t, "ACCB", k.Scheme)
}

func TestMaxDistanceFilter(t *testing.T) {
	p := buildPoem("K1", "K2", "K1", "K2")
	p.Pairs = []poem.RhymePair{
		{A: p.Line(1), B: p.Line(3), Distance: 0.2},
		{A: p.Line(2), B: p.Line(4), Distance: 3.5},
	}

	a := Resolver{MaxDistance: 1}.Classify(p)
	assert.Equal(t, "AXAX", a.Scheme)

	a = Resolver{MaxDistance: 0.1}.Classify(p)
	assert.Equal(t, StatusNoRhymes, a.Status)
	assert.Equal(t, "XXXX", a.Scheme)

	a = Resolver{}.Classify(p)
	assert.Equal(t, "ABAB", a.Scheme)
}

func TestNilLinesInPairsAreIgnored(t *testing.T) {
	p := buildPoem("K1", "K1")
	p.Pairs = []poem.RhymePair{{A: p.Line(1), B: nil}, {A: nil, B: p.Line(2)}}

	a := Resolver{}.Classify(p)
	assert.Equal(t, StatusNoRhymes, a.Status)
}

func TestAssignIsIdempotent(t *testing.T) {
	p := buildPoem("K1", "K2", "K2", "K1", "K3")
	p.Pairs = []poem.RhymePair{pair(p, 1, 4), pair(p, 2, 3)}

	for _, g := range groupings {
		first := Resolver{Grouping: g}.Classify(p)
		second := Resolver{Grouping: g}.Classify(p)
		assert.Equal(t, first, second, g.String())
	}
}

func TestParseGrouping(t *testing.T) {
	tests := []struct {
		in      string
		want    Grouping
		wantErr bool
	}{
		{"", GroupUnion, false},
		{"union", GroupUnion, false},
		{" Keyed ", GroupKeyed, false},
		{"closure", GroupUnion, true},
	}
	for _, tt := range tests {
		got, err := ParseGrouping(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDisjointSet(t *testing.T) {
	s := newDisjointSet()
	s.union("a", "b")
	s.union("c", "d")
	assert.NotEqual(t, s.find("a"), s.find("c"))
	s.union("b", "d")
	assert.Equal(t, s.find("a"), s.find("c"))
	assert.Equal(t, "e", s.find("e"))
}
