package match3

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// ErrOutOfBounds is returned (wrapped) when a tap lands outside the grid.
var ErrOutOfBounds = errors.New("match3: position out of bounds")

// maxStabilizeRounds bounds the re-deal loop used to clear a fresh board.
const maxStabilizeRounds = 1000

// Settings configures an Engine.
type Settings struct {
	GridSize     int           // Rows and columns
	TilePx       int           // Tile size in pixels
	SwapDuration time.Duration // Swap animation length
	FallDuration time.Duration // Fall animation length
	PaletteSize  int           // Number of tile types
	Cascade      bool          // Resolve matches left behind by falling tiles
}

// DefaultSettings mirrors the classic board: 9x9, 80px tiles, five tile
// types and one-second animations, without cascades.
func DefaultSettings() Settings {
	return Settings{
		GridSize:     9,
		TilePx:       80,
		SwapDuration: time.Second,
		FallDuration: time.Second,
		PaletteSize:  5,
	}
}

// TapResult describes what a tap did.
type TapResult int

const (
	TapSelected   TapResult = iota // Nothing was selected; the tile is now selected
	TapReselected                  // The tile was not adjacent; it replaced the selection
	TapMatched                     // The swap produced matches and was resolved
	TapReverted                    // The swap produced no match and was undone
)

func (r TapResult) String() string {
	switch r {
	case TapSelected:
		return "selected"
	case TapReselected:
		return "reselected"
	case TapMatched:
		return "matched"
	case TapReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// TileDraw is one tile of the render list.
type TileDraw struct {
	Pos       Position
	Value     TileValue
	At        Point // Pixel position relative to the grid origin
	Animating bool
}

// Engine owns the grid, the selection and the live animations.
// It is not safe for concurrent use; the host drives it from one goroutine.
type Engine struct {
	settings Settings
	src      TileSource
	grid     *Grid
	anims    *Scheduler
	selected *Position
	now      time.Duration
	stats    core.SessionStats
}

// NewEngine deals a fresh board. With Cascade enabled the board starts
// without any match.
func NewEngine(s Settings, src TileSource) *Engine {
	g := NewGrid(s.GridSize, src, s.PaletteSize)
	if s.Cascade {
		stabilize(g, src, s.PaletteSize)
	}
	return NewEngineWithGrid(s, src, g)
}

// NewEngineWithGrid wraps an existing grid. Settings.GridSize follows the grid.
func NewEngineWithGrid(s Settings, src TileSource, g *Grid) *Engine {
	s.GridSize = g.Size()
	return &Engine{
		settings: s,
		src:      src,
		grid:     g,
		anims:    NewScheduler(),
	}
}

// stabilize re-deals matched cells until the grid holds no match.
func stabilize(g *Grid, src TileSource, palette int) {
	for range maxStabilizeRounds {
		matches := Detect(g)
		if len(matches) == 0 {
			return
		}
		for _, p := range matches.Positions() {
			g.Set(p, Spawn(src, palette))
		}
	}
}

// Settings returns the engine configuration.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Grid returns the live grid. Callers must not modify it.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Animations returns the live animation set.
func (e *Engine) Animations() *Scheduler {
	return e.anims
}

// Layout returns the pixel layout of the grid.
func (e *Engine) Layout() Layout {
	return Layout{TilePx: e.settings.TilePx}
}

// Selected returns the tile awaiting a swap partner, if any.
func (e *Engine) Selected() (Position, bool) {
	if e.selected == nil {
		return Position{}, false
	}
	return *e.selected, true
}

// Now returns the clock reading of the last Advance or tap.
func (e *Engine) Now() time.Duration {
	return e.now
}

// Stats returns the counters accumulated since the engine was created.
func (e *Engine) Stats() core.SessionStats {
	return e.stats
}

func (e *Engine) resolver() Resolver {
	return Resolver{
		Source:  e.src,
		Palette: e.settings.PaletteSize,
		Layout:  e.Layout(),
		Fall:    e.settings.FallDuration,
	}
}

// HandleTap applies the selection and swap protocol to a tap on pos.
func (e *Engine) HandleTap(pos Position, now time.Duration) (TapResult, error) {
	if !e.grid.InBounds(pos) {
		return 0, fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, pos, e.grid.Size(), e.grid.Size())
	}
	e.now = now

	if e.selected == nil {
		e.selected = &pos
		return TapSelected, nil
	}

	sel := *e.selected
	if !sel.Adjacent(pos) {
		e.selected = &pos
		return TapReselected, nil
	}

	// Both tiles animate towards each other's slot, even when the swap is
	// undone below.
	layout := e.Layout()
	from, to := layout.Rest(sel), layout.Rest(pos)
	e.anims.Put(sel, Animation{Kind: AnimSwap, Start: now, Duration: e.settings.SwapDuration, From: from, To: to})
	e.anims.Put(pos, Animation{Kind: AnimSwap, Start: now, Duration: e.settings.SwapDuration, From: to, To: from})

	e.grid.Swap(sel, pos)
	e.selected = nil
	e.stats.Moves++

	matches := Detect(e.grid)
	if len(matches) == 0 {
		e.grid.Swap(sel, pos)
		e.stats.Reverted++
		return TapReverted, nil
	}

	e.stats.Matched++
	e.resolve(matches, now)
	return TapMatched, nil
}

// HandleTapPixel converts grid-relative pixel coordinates to a cell and taps it.
func (e *Engine) HandleTapPixel(x, y int, now time.Duration) (TapResult, error) {
	if x < 0 || y < 0 {
		return 0, fmt.Errorf("%w: pixel (%d,%d)", ErrOutOfBounds, x, y)
	}
	px := e.settings.TilePx
	return e.HandleTap(Position{Row: y / px, Col: x / px}, now)
}

func (e *Engine) resolve(matches MatchSet, now time.Duration) {
	e.stats.Cleared += len(matches)
	e.anims.Merge(e.resolver().Resolve(e.grid, matches, now))
}

// Advance moves the engine clock to now and drops expired animations.
// With Cascade enabled, once every fall has landed any match left on the
// board is resolved, which starts a new round of falls.
func (e *Engine) Advance(now time.Duration) {
	e.now = now
	e.anims.Sweep(now)

	if !e.settings.Cascade || e.anims.Count(AnimFall) > 0 {
		return
	}
	if matches := Detect(e.grid); len(matches) > 0 {
		e.resolve(matches, now)
	}
}

// DrawState returns every non-empty tile with its current pixel position.
// Resting tiles come first so that moving tiles draw on top of them.
// Animations that have finished by now are removed.
func (e *Engine) DrawState(now time.Duration) []TileDraw {
	n := e.grid.Size()
	layout := e.Layout()
	resting := make([]TileDraw, 0, n*n)
	var moving []TileDraw

	for r := range n {
		for c := range n {
			p := Position{Row: r, Col: c}
			v := e.grid.At(p)
			if v == Empty {
				continue
			}
			at, active := e.anims.At(p, layout.Rest(p), now)
			d := TileDraw{Pos: p, Value: v, At: at, Animating: active}
			if active {
				moving = append(moving, d)
			} else {
				resting = append(resting, d)
			}
		}
	}

	return append(resting, moving...)
}

// Settled reports whether no animation is running.
func (e *Engine) Settled() bool {
	return e.anims.Len() == 0
}

// Stuck reports whether the board is settled and no swap can be accepted.
func (e *Engine) Stuck() bool {
	return e.Settled() && !HasValidSwap(e.grid)
}
