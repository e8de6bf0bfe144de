package match3

import (
	"slices"
	"testing"
	"time"
)

func TestResolveCompactsColumnInOrder(t *testing.T) {
	// Column 0 top to bottom: 1 2 [3 3 3] 4; the run in the middle is removed.
	g := GridFromRows([][]TileValue{
		{1, 0, 1, 0, 1, 0},
		{2, 1, 0, 1, 0, 1},
		{3, 0, 1, 0, 1, 0},
		{3, 1, 0, 1, 0, 1},
		{3, 0, 1, 0, 1, 0},
		{4, 1, 0, 1, 0, 1},
	})
	matches := Detect(g)
	if len(matches) != 3 {
		t.Fatalf("setup: Detect found %v", matches.Positions())
	}

	r := Resolver{
		Source:  NewSequenceSource(5, 6, 7),
		Palette: 8,
		Layout:  Layout{TilePx: 80},
		Fall:    time.Second,
	}
	now := 2 * time.Second
	anims := r.Resolve(g, matches, now)

	want := []TileValue{5, 6, 7, 1, 2, 4}
	if got := g.Column(0); !slices.Equal(got, want) {
		t.Errorf("column 0 = %v, want %v", got, want)
	}
	if g.HasEmpty() {
		t.Errorf("grid has empty cells after resolve:\n%s", g)
	}

	// Survivors 1 and 2 each dropped three rows.
	for _, row := range []int{3, 4} {
		p := Position{row, 0}
		a, ok := anims[p]
		if !ok {
			t.Fatalf("no animation for survivor at %v", p)
		}
		rest := r.Layout.Rest(p)
		wantFrom := Point{X: rest.X, Y: rest.Y - 3*80}
		if a.Kind != AnimFall || a.From != wantFrom || a.To != rest || a.Start != now || a.Duration != time.Second {
			t.Errorf("survivor %v animation = %+v, want fall from %v", p, a, wantFrom)
		}
	}

	// New tiles enter from one tile above the grid.
	for row := range 3 {
		p := Position{row, 0}
		a, ok := anims[p]
		if !ok {
			t.Fatalf("no animation for new tile at %v", p)
		}
		if a.From != (Point{X: 0, Y: -80}) || a.To != r.Layout.Rest(p) {
			t.Errorf("new tile %v animation = %+v", p, a)
		}
	}

	// The bottom tile did not move, nor did any other column.
	if _, ok := anims[Position{5, 0}]; ok {
		t.Error("unmoved tile received an animation")
	}
	if len(anims) != 5 {
		t.Errorf("got %d animations, want 5", len(anims))
	}
}

func TestResolveSeparatedGaps(t *testing.T) {
	// Matches at rows 1 and 3 of column 0 (via horizontal runs); survivors
	// at rows 0 and 2 fall by different amounts.
	g := GridFromRows([][]TileValue{
		{7, 1, 0, 1},
		{2, 2, 2, 0},
		{6, 1, 0, 1},
		{3, 3, 3, 0},
	})
	r := Resolver{Source: NewSequenceSource(0), Palette: 8, Layout: Layout{TilePx: 10}, Fall: time.Second}
	anims := r.Resolve(g, Detect(g), 0)

	col := g.Column(0)
	if col[2] != 7 || col[3] != 6 {
		t.Errorf("column 0 = %v, want survivors 7 then 6 at the bottom", col)
	}
	if a := anims[Position{3, 0}]; a.From.Y != 30-10 {
		t.Errorf("tile from row 2 starts at y=%v, want 20", a.From.Y)
	}
	if a := anims[Position{2, 0}]; a.From.Y != 20-20 {
		t.Errorf("tile from row 0 starts at y=%v, want 0", a.From.Y)
	}
	if g.HasEmpty() {
		t.Error("grid has empty cells after resolve")
	}
}
