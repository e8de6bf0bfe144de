package match3

import (
	"time"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Variant identifiers.
const (
	VariantClassic = "match3"
	VariantCascade = "match3_cascade"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

func init() {
	registry.Register(VariantClassic, func() registry.Game {
		return New()
	})
	registry.Register(VariantCascade, func() registry.Game {
		return NewCascade()
	})
}

// tileStyle is a resolved config.TileStyle.
type tileStyle struct {
	glyph rune
	color core.Color
}

// Game hosts an Engine inside the arcade platform: it maps platform input
// to taps, drives the engine clock from the tick counter and renders the
// board into a character screen.
type Game struct {
	variant string
	cascade bool

	cfg      config.Match3Config
	settings Settings
	styles   []tileStyle
	runtime  core.RuntimeConfig

	src    TileSource
	engine *Engine
	cursor Position
	tick   uint64
	boards int // Boards dealt since Reset

	carried  core.SessionStats // Stats of boards already replaced
	last     TapResult
	hasLast  bool
	paused   bool
	tooSmall bool
}

// New creates the classic variant: one resolution pass per swap.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewCascade creates the variant that keeps resolving until the board is stable.
func NewCascade() *Game {
	return &Game{variant: VariantCascade, cascade: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.cascade {
		return "Match-3 (Cascade)"
	}
	return "Match-3"
}

// Reset loads the configuration and deals a fresh board.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		cfg = config.DefaultMatch3Config()
	}
	if difficultyPreset != "" {
		config.ApplyMatch3Preset(&cfg, difficultyPreset)
	}
	if g.cascade {
		cfg.Rules.Cascade = true
	}
	g.configure(cfg)

	g.src = NewRandSource(runtime.Seed)
	g.tick = 0
	g.boards = 0
	g.carried = core.SessionStats{}
	g.engine = nil
	g.paused = false
	g.deal()
	g.checkScreenSize()
}

// configure derives engine settings and tile styles from cfg.
func (g *Game) configure(cfg config.Match3Config) {
	g.cfg = cfg
	g.settings = Settings{
		GridSize:     cfg.Board.GridSize,
		TilePx:       cfg.Board.TilePx,
		SwapDuration: cfg.SwapDuration(),
		FallDuration: cfg.FallDuration(),
		PaletteSize:  cfg.Board.PaletteSize,
		Cascade:      cfg.Rules.Cascade,
	}

	g.styles = make([]tileStyle, len(cfg.Render.Tiles))
	for i, t := range cfg.Render.Tiles {
		st := tileStyle{glyph: '?', color: core.ColorDefault}
		for _, r := range t.Glyph {
			st.glyph = r
			break
		}
		if c, ok := core.ParseColor(t.Color); ok {
			st.color = c
		}
		g.styles[i] = st
	}
}

// deal replaces the board, keeping the counters of the previous one.
func (g *Game) deal() {
	if g.engine != nil {
		g.carried = addStats(g.carried, g.engine.Stats())
	}
	g.engine = NewEngine(g.settings, g.src)
	g.cursor = Position{Row: g.settings.GridSize / 2, Col: g.settings.GridSize / 2}
	g.hasLast = false
	g.boards++
}

func addStats(a, b core.SessionStats) core.SessionStats {
	return core.SessionStats{
		Moves:    a.Moves + b.Moves,
		Matched:  a.Matched + b.Matched,
		Reverted: a.Reverted + b.Reverted,
		Cleared:  a.Cleared + b.Cleared,
	}
}

// Resize adapts the layout to a new screen size without dealing a new board.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	l := g.layout()
	g.tooSmall = g.runtime.ScreenW < l.minW || g.runtime.ScreenH < l.minH
}

// now converts the tick counter to engine time.
func (g *Game) now() time.Duration {
	return time.Duration(g.tick) * g.runtime.TickDuration()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Engine time only moves while the board is visible and unpaused.
	g.tick++
	now := g.now()

	if in.Has(core.ActionRestart) {
		g.deal()
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if in.Has(core.ActionConfirm) {
		g.tap(g.cursor, now)
	}
	for _, t := range in.Taps {
		g.tapScreen(t.X, t.Y, now)
	}

	g.engine.Advance(now)

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	last := g.settings.GridSize - 1
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, last)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, last)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, last)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, last)
	}
}

func (g *Game) tap(p Position, now time.Duration) {
	res, err := g.engine.HandleTap(p, now)
	if err != nil {
		return
	}
	g.last, g.hasLast = res, true
}

// tapScreen maps a screen cell to board pixels and taps it.
// Clicks outside the board are ignored.
func (g *Game) tapScreen(x, y int, now time.Duration) {
	l := g.layout()
	if !l.board.Contains(x, y) {
		return
	}
	px := (x - l.board.X) * g.settings.TilePx / l.cellW
	py := (y - l.board.Y) * g.settings.TilePx / l.cellH

	res, err := g.engine.HandleTapPixel(px, py, now)
	if err != nil {
		return
	}
	g.cursor = Position{Row: py / g.settings.TilePx, Col: px / g.settings.TilePx}
	g.last, g.hasLast = res, true
}

// Engine exposes the running engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Cursor returns the keyboard cursor position.
func (g *Game) Cursor() Position {
	return g.cursor
}

// Stats returns the counters for every board dealt since Reset.
func (g *Game) Stats() core.SessionStats {
	s := addStats(g.carried, g.engine.Stats())
	s.Played = g.now()
	return s
}

// State returns the current game state.
// The game is over when the board has settled and no swap can match.
func (g *Game) State() core.GameState {
	return core.GameState{
		GameOver: g.engine.Stuck(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | Space/Enter/Click: Select | P: Pause | R: New board | Q: Quit"
}
