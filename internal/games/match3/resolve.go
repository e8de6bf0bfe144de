package match3

import "time"

// Resolver removes matches, compacts columns and refills the grid.
type Resolver struct {
	Source  TileSource
	Palette int
	Layout  Layout
	Fall    time.Duration // Duration of every fall animation
}

// Resolve empties the matched cells, lets the survivors in each column drop
// into the gaps below them, and deals new tiles into the cells left empty at
// the top. It returns a fall animation for every tile that moved or appeared;
// the caller merges them into its live set.
func (r Resolver) Resolve(g *Grid, matches MatchSet, now time.Duration) map[Position]Animation {
	anims := make(map[Position]Animation)
	for p := range matches {
		g.Set(p, Empty)
	}

	n := g.Size()
	px := float64(r.Layout.TilePx)

	for c := range n {
		// Bottom-up: offset counts the gaps seen so far, so each survivor
		// drops by exactly that many rows and column order is preserved.
		offset := 0
		for row := n - 1; row >= 0; row-- {
			src := Position{Row: row, Col: c}
			v := g.At(src)
			if v == Empty {
				offset++
				continue
			}
			if offset == 0 {
				continue
			}

			dst := Position{Row: row + offset, Col: c}
			g.Set(dst, v)
			g.Set(src, Empty)

			rest := r.Layout.Rest(dst)
			anims[dst] = Animation{
				Kind:     AnimFall,
				Start:    now,
				Duration: r.Fall,
				From:     Point{X: rest.X, Y: rest.Y - float64(offset)*px},
				To:       rest,
			}
		}

		// The top offset cells are empty now; new tiles drop in from one
		// tile above the grid.
		for row := range offset {
			p := Position{Row: row, Col: c}
			g.Set(p, Spawn(r.Source, r.Palette))

			rest := r.Layout.Rest(p)
			anims[p] = Animation{
				Kind:     AnimFall,
				Start:    now,
				Duration: r.Fall,
				From:     Point{X: rest.X, Y: -px},
				To:       rest,
			}
		}
	}

	return anims
}
