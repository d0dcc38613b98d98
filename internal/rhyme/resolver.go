// Package rhyme groups rhyming lines and labels the groups with scheme
// letters in poem order ("ABAB").
package rhyme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pthm/prosody/internal/poem"
)

// Grouping selects how rhyme pairs are bucketed into groups
type Grouping int

const (
	// GroupUnion merges the two lines of every pair into one set,
	// regardless of their rime keys
	GroupUnion Grouping = iota
	// GroupKeyed buckets both lines of a pair under the rime key of the
	// pair's first line
	GroupKeyed
)

func (g Grouping) String() string {
	switch g {
	case GroupUnion:
		return "union"
	case GroupKeyed:
		return "keyed"
	default:
		return "unknown"
	}
}

// ParseGrouping converts a configuration string to a Grouping
func ParseGrouping(s string) (Grouping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "union":
		return GroupUnion, nil
	case "keyed":
		return GroupKeyed, nil
	default:
		return GroupUnion, fmt.Errorf("unknown rhyme grouping %q (want union or keyed)", s)
	}
}

// Group is a set of distinct line texts sharing a rhyme
type Group struct {
	// Key is the rime key the group was created under
	Key poem.RimeKey

	// Members are trimmed line texts in insertion order, without duplicates
	Members []string
}

func (g *Group) add(text string) {
	if !slices.Contains(g.Members, text) {
		g.Members = append(g.Members, text)
	}
}

// Resolution is the outcome of grouping a poem's rhyme pairs
type Resolution struct {
	// Detected is false when no rhyme evidence was usable
	Detected bool

	// Groups are ordered by creation
	Groups []Group
}

// Resolver buckets rhyme pairs into groups
type Resolver struct {
	Grouping Grouping

	// MaxDistance drops pairs whose distance exceeds it; 0 keeps all pairs
	MaxDistance float64
}

// Resolve groups the pairs. It never fails; no usable pairs yields a
// resolution with Detected=false.
func (r Resolver) Resolve(pairs []poem.RhymePair) Resolution {
	usable := r.filter(pairs)
	if len(usable) == 0 {
		return Resolution{}
	}

	var groups []Group
	switch r.Grouping {
	case GroupKeyed:
		groups = groupByKey(usable)
	default:
		groups = groupByUnion(usable)
	}
	return Resolution{Detected: true, Groups: groups}
}

func (r Resolver) filter(pairs []poem.RhymePair) []poem.RhymePair {
	var out []poem.RhymePair
	for _, p := range pairs {
		if p.A == nil || p.B == nil {
			continue
		}
		if r.MaxDistance > 0 && p.Distance > r.MaxDistance {
			continue
		}
		out = append(out, p)
	}
	return out
}

// groupByKey uses the first line's own rime key as the bucket for both
// lines of each pair. A text can end up in more than one group when the
// keys of a pair disagree.
func groupByKey(pairs []poem.RhymePair) []Group {
	var groups []Group
	index := make(map[poem.RimeKey]int)

	for _, p := range pairs {
		key := poem.RimeOf(p.A)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].add(strings.TrimSpace(p.A.Text))
		groups[i].add(strings.TrimSpace(p.B.Text))
	}
	return groups
}

// groupByUnion computes the connected components of the pair graph over
// trimmed line texts. Each component is one group keyed by the first
// line of the first pair that touched it.
func groupByUnion(pairs []poem.RhymePair) []Group {
	set := newDisjointSet()
	for _, p := range pairs {
		set.union(strings.TrimSpace(p.A.Text), strings.TrimSpace(p.B.Text))
	}

	var groups []Group
	index := make(map[string]int)
	for _, p := range pairs {
		a := strings.TrimSpace(p.A.Text)
		b := strings.TrimSpace(p.B.Text)
		root := set.find(a)
		i, ok := index[root]
		if !ok {
			i = len(groups)
			index[root] = i
			groups = append(groups, Group{Key: poem.RimeOf(p.A)})
		}
		groups[i].add(a)
		groups[i].add(b)
	}
	return groups
}
