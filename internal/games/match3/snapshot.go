package match3

import "github.com/vovakirdan/tui-match3/internal/core"

// StateType represents the current game state.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateSettling    StateType = "settling"
	StateNoMoves     StateType = "no_moves"
	StatePaused      StateType = "paused"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Variant    string
	Board      string // Grid.String() rendering
	Selected   Position
	HasSelect  bool
	Cursor     Position
	Animations int
	Stats      core.SessionStats
	State      StateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case !g.engine.Settled():
		state = StateSettling
	case g.engine.Stuck():
		state = StateNoMoves
	}

	sel, ok := g.engine.Selected()
	return Snapshot{
		Tick:       g.tick,
		Variant:    g.variant,
		Board:      g.engine.Grid().String(),
		Selected:   sel,
		HasSelect:  ok,
		Cursor:     g.cursor,
		Animations: g.engine.Animations().Len(),
		Stats:      g.Stats(),
		State:      state,
	}
}
