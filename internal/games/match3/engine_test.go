package match3

import (
	"errors"
	"testing"
	"time"
)

// scenarioValues returns a 9x9 deal followed by spawn values. The base
// pattern (r + 2c) mod 5 holds no run of three; (0,1) is changed so that
// row 0 starts 0 0 4 and the 0 at (1,2) can complete it.
func scenarioValues(spawns ...int) []int {
	values := make([]int, 0, 81+len(spawns))
	for r := range 9 {
		for c := range 9 {
			values = append(values, (r+2*c)%5)
		}
	}
	values[1] = 0
	return append(values, spawns...)
}

func newScenarioEngine(t *testing.T, spawns ...int) *Engine {
	t.Helper()
	s := DefaultSettings()
	e := NewEngine(s, NewSequenceSource(scenarioValues(spawns...)...))

	g := e.Grid()
	if g.At(Position{0, 0}) != 0 || g.At(Position{0, 1}) != 0 || g.At(Position{0, 2}) != 4 || g.At(Position{1, 2}) != 0 {
		t.Fatalf("unexpected scenario grid:\n%s", g)
	}
	if len(Detect(g)) != 0 {
		t.Fatalf("scenario grid already has matches:\n%s", g)
	}
	return e
}

func TestScenarioSwapCompletesRow(t *testing.T) {
	e := newScenarioEngine(t, 1, 2, 3)
	now := 5 * time.Second

	if res, err := e.HandleTap(Position{0, 2}, now); err != nil || res != TapSelected {
		t.Fatalf("first tap = %v, %v", res, err)
	}

	// Check the provisional swap alone before resolving through the engine.
	probe := e.Grid().Clone()
	probe.Swap(Position{0, 2}, Position{1, 2})
	got := Detect(probe).Positions()
	want := []Position{{0, 0}, {0, 1}, {0, 2}}
	if len(got) != len(want) {
		t.Fatalf("MatchSet = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MatchSet = %v, want %v", got, want)
		}
	}

	res, err := e.HandleTap(Position{1, 2}, now)
	if err != nil || res != TapMatched {
		t.Fatalf("second tap = %v, %v", res, err)
	}

	g := e.Grid()
	for c, v := range []TileValue{1, 2, 3} {
		p := Position{0, c}
		if g.At(p) != v {
			t.Errorf("%v = %d, want spawned %d", p, g.At(p), v)
		}
		a, ok := e.Animations().Get(p)
		if !ok || a.Kind != AnimFall {
			t.Fatalf("%v animation = %+v, %v; want fall", p, a, ok)
		}
		if a.From != (Point{X: float64(c * 80), Y: -80}) || a.To != e.Layout().Rest(p) {
			t.Errorf("%v falls %v -> %v", p, a.From, a.To)
		}
	}
	if g.At(Position{1, 2}) != 4 {
		t.Errorf("(1,2) = %d, want the swapped-down 4", g.At(Position{1, 2}))
	}
	if g.HasEmpty() {
		t.Error("grid has empty cells after resolve")
	}
	if _, ok := e.Selected(); ok {
		t.Error("selection not cleared after swap")
	}

	st := e.Stats()
	if st.Moves != 1 || st.Matched != 1 || st.Cleared != 3 || st.Reverted != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestTapSamePositionTwice(t *testing.T) {
	e := newScenarioEngine(t)
	before := e.Grid().Clone()
	p := Position{4, 4}

	if res, _ := e.HandleTap(p, 0); res != TapSelected {
		t.Fatalf("first tap = %v", res)
	}
	res, err := e.HandleTap(p, time.Second)
	if err != nil || res != TapReselected {
		t.Fatalf("second tap = %v, %v; want reselected", res, err)
	}

	if sel, ok := e.Selected(); !ok || sel != p {
		t.Errorf("selected = %v, %v; want %v", sel, ok, p)
	}
	if !e.Grid().Equal(before) {
		t.Error("grid changed")
	}
	if e.Animations().Len() != 0 {
		t.Errorf("%d animations after double tap", e.Animations().Len())
	}
	if e.Stats().Moves != 0 {
		t.Error("double tap counted as a move")
	}
}

func TestAdjacencyGate(t *testing.T) {
	tests := []struct {
		name   string
		second Position
	}{
		{"diagonal", Position{5, 5}},
		{"two columns away", Position{4, 6}},
		{"far corner", Position{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newScenarioEngine(t)
			before := e.Grid().Clone()

			e.HandleTap(Position{4, 4}, 0)
			res, err := e.HandleTap(tt.second, 0)
			if err != nil || res != TapReselected {
				t.Fatalf("tap = %v, %v; want reselected", res, err)
			}
			if sel, _ := e.Selected(); sel != tt.second {
				t.Errorf("selected = %v, want %v", sel, tt.second)
			}
			if !e.Grid().Equal(before) {
				t.Error("grid changed by non-adjacent tap")
			}
		})
	}
}

func TestRevertLeavesGridUnchanged(t *testing.T) {
	e := newScenarioEngine(t)
	before := e.Grid().Clone()
	a, b := Position{4, 4}, Position{4, 5}
	now := 7 * time.Second

	e.HandleTap(a, now)
	res, err := e.HandleTap(b, now)
	if err != nil || res != TapReverted {
		t.Fatalf("tap = %v, %v; want reverted", res, err)
	}

	if !e.Grid().Equal(before) {
		t.Errorf("grid after revert:\n%s\nwant:\n%s", e.Grid(), before)
	}

	// The swap animation still plays for both tiles.
	layout := e.Layout()
	sa, ok := e.Animations().Get(a)
	if !ok || sa.Kind != AnimSwap || sa.From != layout.Rest(a) || sa.To != layout.Rest(b) {
		t.Errorf("selected tile animation = %+v, %v", sa, ok)
	}
	sb, ok := e.Animations().Get(b)
	if !ok || sb.Kind != AnimSwap || sb.From != layout.Rest(b) || sb.To != layout.Rest(a) {
		t.Errorf("tapped tile animation = %+v, %v", sb, ok)
	}

	e.Advance(now + e.Settings().SwapDuration)
	if !e.Settled() {
		t.Errorf("%d animations left after swap duration", e.Animations().Len())
	}

	st := e.Stats()
	if st.Moves != 1 || st.Reverted != 1 || st.Matched != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestHandleTapOutOfBounds(t *testing.T) {
	e := newScenarioEngine(t)
	e.HandleTap(Position{0, 0}, 0)

	for _, p := range []Position{{-1, 0}, {0, 9}, {9, 9}} {
		_, err := e.HandleTap(p, time.Second)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("HandleTap(%v) error = %v, want ErrOutOfBounds", p, err)
		}
	}
	if sel, ok := e.Selected(); !ok || sel != (Position{0, 0}) {
		t.Errorf("selection changed to %v, %v", sel, ok)
	}
	if e.Now() != 0 {
		t.Errorf("clock moved to %v on rejected tap", e.Now())
	}
}

func TestHandleTapPixel(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		want    Position
		wantErr bool
	}{
		{"origin", 0, 0, Position{0, 0}, false},
		{"inside tile", 79, 79, Position{0, 0}, false},
		{"next tile", 80, 160, Position{2, 1}, false},
		{"last tile", 719, 719, Position{8, 8}, false},
		{"right of grid", 720, 0, Position{}, true},
		{"negative x", -1, 0, Position{}, true},
		{"negative y", 0, -79, Position{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newScenarioEngine(t)
			_, err := e.HandleTapPixel(tt.x, tt.y, 0)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfBounds) {
					t.Errorf("error = %v, want ErrOutOfBounds", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sel, _ := e.Selected(); sel != tt.want {
				t.Errorf("selected = %v, want %v", sel, tt.want)
			}
		})
	}
}

// findSwap returns an adjacent pair whose swap leaves a match on g.
func findSwap(t *testing.T, g *Grid) (Position, Position) {
	t.Helper()
	n := g.Size()
	for r := range n {
		for c := range n {
			a := Position{r, c}
			for _, b := range []Position{{r, c + 1}, {r + 1, c}} {
				if !g.InBounds(b) {
					continue
				}
				probe := g.Clone()
				probe.Swap(a, b)
				if len(Detect(probe)) > 0 {
					return a, b
				}
			}
		}
	}
	t.Fatal("no valid swap on board")
	return Position{}, Position{}
}

func TestCascadeSettlesToStableGrid(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		s := DefaultSettings()
		s.Cascade = true
		s.PaletteSize = 4 // few tile types make cascades likely
		e := NewEngine(s, NewRandSource(seed))

		if len(Detect(e.Grid())) != 0 {
			t.Fatalf("seed %d: cascade board dealt with matches:\n%s", seed, e.Grid())
		}
		if e.Stuck() {
			continue
		}

		a, b := findSwap(t, e.Grid())
		now := time.Second
		e.HandleTap(a, now)
		if res, _ := e.HandleTap(b, now); res != TapMatched {
			t.Fatalf("seed %d: swap %v-%v = %v", seed, a, b, res)
		}

		for i := 0; i < 1000 && !e.Settled(); i++ {
			now += s.FallDuration
			e.Advance(now)
		}

		if !e.Settled() {
			t.Fatalf("seed %d: engine did not settle", seed)
		}
		if e.Grid().HasEmpty() {
			t.Errorf("seed %d: empty cells after settle", seed)
		}
		if m := Detect(e.Grid()); len(m) != 0 {
			t.Errorf("seed %d: matches left after settle: %v\n%s", seed, m.Positions(), e.Grid())
		}
	}
}

func TestClassicLeavesFallMatches(t *testing.T) {
	// Row 0 is refilled with 3 3 3, which classic play leaves on the board.
	e := newScenarioEngine(t, 3, 3, 3)
	e.HandleTap(Position{0, 2}, 0)
	e.HandleTap(Position{1, 2}, 0)

	e.Advance(e.Settings().FallDuration)
	if !e.Settled() {
		t.Fatal("animations left after fall duration")
	}
	if len(Detect(e.Grid())) == 0 {
		t.Fatal("expected the spawned run to remain on the board")
	}
	if e.Stats().Matched != 1 {
		t.Errorf("Matched = %d, want 1", e.Stats().Matched)
	}
}

func TestDrawStateOrdersMovingLast(t *testing.T) {
	e := newScenarioEngine(t)
	e.HandleTap(Position{4, 4}, 0)
	e.HandleTap(Position{4, 5}, 0) // reverted, both tiles animate

	half := e.Settings().SwapDuration / 2
	draws := e.DrawState(half)
	if len(draws) != 81 {
		t.Fatalf("got %d draws, want 81", len(draws))
	}

	for i, d := range draws[:79] {
		if d.Animating {
			t.Fatalf("draw %d (%v) animating before resting tiles end", i, d.Pos)
		}
		if d.At != e.Layout().Rest(d.Pos) {
			t.Errorf("resting %v drawn at %v", d.Pos, d.At)
		}
	}
	for _, d := range draws[79:] {
		if !d.Animating {
			t.Errorf("%v should be animating", d.Pos)
		}
		// Both tiles meet halfway between columns 4 and 5.
		if d.At != (Point{X: 360, Y: 320}) {
			t.Errorf("%v drawn at %v, want midpoint", d.Pos, d.At)
		}
	}

	e.DrawState(e.Settings().SwapDuration)
	if e.Animations().Len() != 0 {
		t.Error("DrawState did not drop expired animations")
	}
}
