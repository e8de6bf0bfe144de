package match3

import "sort"

// MatchSet is the set of cells that belong to at least one run of three.
type MatchSet map[Position]struct{}

// Has reports whether p is part of a match.
func (m MatchSet) Has(p Position) bool {
	_, ok := m[p]
	return ok
}

func (m MatchSet) add(ps ...Position) {
	for _, p := range ps {
		m[p] = struct{}{}
	}
}

// Positions returns the matched cells in row-major order.
func (m MatchSet) Positions() []Position {
	out := make([]Position, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Detect scans every horizontal and vertical triple of cells and collects
// those holding the same non-empty value. Longer runs are covered by their
// overlapping triples. An empty set means the grid has no match.
func Detect(g *Grid) MatchSet {
	matches := make(MatchSet)
	n := g.Size()

	// Horizontal
	for r := range n {
		for c := 0; c < n-2; c++ {
			a, b, d := Position{r, c}, Position{r, c + 1}, Position{r, c + 2}
			if same(g, a, b, d) {
				matches.add(a, b, d)
			}
		}
	}

	// Vertical
	for c := range n {
		for r := 0; r < n-2; r++ {
			a, b, d := Position{r, c}, Position{r + 1, c}, Position{r + 2, c}
			if same(g, a, b, d) {
				matches.add(a, b, d)
			}
		}
	}

	return matches
}

func same(g *Grid, a, b, c Position) bool {
	v := g.At(a)
	return v != Empty && v == g.At(b) && v == g.At(c)
}

// runThrough reports whether p is part of a horizontal or vertical triple.
func runThrough(g *Grid, p Position) bool {
	v := g.At(p)
	if v == Empty {
		return false
	}

	count := func(dr, dc int) int {
		k := 0
		for q := (Position{p.Row + dr, p.Col + dc}); g.InBounds(q) && g.At(q) == v; q = (Position{q.Row + dr, q.Col + dc}) {
			k++
		}
		return k
	}

	return 1+count(0, -1)+count(0, 1) >= 3 || 1+count(-1, 0)+count(1, 0) >= 3
}

// HasValidSwap reports whether some adjacent swap would be accepted, i.e.
// leave at least one match on the board. A board that already holds a match
// accepts any swap.
func HasValidSwap(g *Grid) bool {
	if len(Detect(g)) > 0 {
		return true
	}

	n := g.Size()
	for r := range n {
		for c := range n {
			a := Position{r, c}
			for _, b := range []Position{{r, c + 1}, {r + 1, c}} {
				if !g.InBounds(b) || g.At(a) == g.At(b) {
					continue
				}
				g.Swap(a, b)
				ok := runThrough(g, a) || runThrough(g, b)
				g.Swap(a, b)
				if ok {
					return true
				}
			}
		}
	}
	return false
}
