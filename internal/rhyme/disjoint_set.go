package rhyme

// disjointSet is a union-find over line texts with path compression and
// union by size
type disjointSet struct {
	parent map[string]string
	size   map[string]int
}

func newDisjointSet() *disjointSet {
	return &disjointSet{
		parent: make(map[string]string),
		size:   make(map[string]int),
	}
}

func (s *disjointSet) find(x string) string {
	p, ok := s.parent[x]
	if !ok {
		s.parent[x] = x
		s.size[x] = 1
		return x
	}
	if p == x {
		return x
	}
	root := s.find(p)
	s.parent[x] = root
	return root
}

func (s *disjointSet) union(a, b string) {
	ra, rb := s.find(a), s.find(b)
	if ra == rb {
		return
	}
	if s.size[ra] < s.size[rb] {
		ra, rb = rb, ra
	}
	s.parent[rb] = ra
	s.size[ra] += s.size[rb]
}
