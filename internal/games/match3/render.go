package match3

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-match3/internal/core"
)

const hudHeight = 2

// boardLayout places the grid on the character screen.
type boardLayout struct {
	board core.Rect // Tile area, excluding the frame
	cellW int       // Screen columns per tile
	cellH int       // Screen rows per tile
	minW  int
	minH  int
}

func (g *Game) layout() boardLayout {
	n := g.settings.GridSize
	l := boardLayout{
		cellW: max(g.cfg.Render.CellWidth, 1),
		cellH: max(g.cfg.Render.CellHeight, 1),
	}
	w, h := n*l.cellW, n*l.cellH

	// Frame on each side and the HUD above.
	l.minW = w + 2
	l.minH = h + 2 + hudHeight
	l.board = core.Rect{
		X: (g.runtime.ScreenW - w) / 2,
		Y: hudHeight + 1,
		W: w,
		H: h,
	}
	return l
}

// toScreen converts a board pixel position to a screen cell.
func (l boardLayout) toScreen(at Point, tilePx int) (int, int) {
	x := l.board.X + int(math.Round(at.X*float64(l.cellW)/float64(tilePx)))
	y := l.board.Y + int(math.Round(at.Y*float64(l.cellH)/float64(tilePx)))
	return x, y
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	dst.DrawBox(core.Rect{X: l.board.X - 1, Y: l.board.Y - 1, W: l.board.W + 2, H: l.board.H + 2})
	g.renderTiles(dst, l)
	g.renderMarkers(dst, l)
	g.renderOverlays(dst, l)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	l := g.layout()
	y := g.runtime.ScreenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", l.minW, l.minH))
}

func (g *Game) renderHUD(dst *core.Screen, l boardLayout) {
	dst.DrawTextCentered(0, g.Title())

	s := g.Stats()
	left := fmt.Sprintf("Moves: %d  Cleared: %d", s.Moves, s.Cleared)
	dst.DrawText(l.board.X-1, 1, left)

	var right string
	switch {
	case !g.hasLast:
		right = fmt.Sprintf("Board #%d", g.boards)
	case g.last == TapReverted:
		right = "No match"
	case g.last == TapMatched:
		right = "Match!"
	default:
		if sel, ok := g.engine.Selected(); ok {
			right = "Selected " + sel.String()
		}
	}
	dst.DrawText(l.board.Right()+1-len([]rune(right)), 1, right)
}

// renderTiles draws resting tiles, then moving tiles over them.
// Rows above the board are clipped so new tiles slide in under the frame.
func (g *Game) renderTiles(dst *core.Screen, l boardLayout) {
	// Leave a blank column on each side of a tile when there is room.
	lo, hi := 0, l.cellW
	if l.cellW >= 3 {
		lo, hi = 1, l.cellW-1
	}

	for _, d := range g.engine.DrawState(g.now()) {
		st := g.style(d.Value)
		x, y := l.toScreen(d.At, g.settings.TilePx)
		for dy := range l.cellH {
			row := y + dy
			if row < l.board.Y || row >= l.board.Bottom() {
				continue
			}
			for dx := lo; dx < hi; dx++ {
				dst.SetColored(x+dx, row, st.glyph, st.color)
			}
		}
	}
}

func (g *Game) style(v TileValue) tileStyle {
	if int(v) >= 0 && int(v) < len(g.styles) {
		return g.styles[v]
	}
	return tileStyle{glyph: '?', color: core.ColorDefault}
}

// renderMarkers brackets the selected tile and the keyboard cursor.
func (g *Game) renderMarkers(dst *core.Screen, l boardLayout) {
	rest := g.engine.Layout()
	sel, hasSel := g.engine.Selected()

	if !hasSel || sel != g.cursor {
		x, y := l.toScreen(rest.Rest(g.cursor), g.settings.TilePx)
		g.bracket(dst, l, x, y, '›', '‹', core.ColorGray)
	}
	if hasSel {
		x, y := l.toScreen(rest.Rest(sel), g.settings.TilePx)
		g.bracket(dst, l, x, y, '[', ']', core.ColorBrightWhite)
	}
}

func (g *Game) bracket(dst *core.Screen, l boardLayout, x, y int, left, right rune, c core.Color) {
	y += (l.cellH - 1) / 2
	dst.SetColored(x, y, left, c)
	dst.SetColored(x+l.cellW-1, y, right, c)
}

func (g *Game) renderOverlays(dst *core.Screen, l boardLayout) {
	cx, cy := l.board.Center()

	if g.paused {
		drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
		return
	}
	if g.engine.Stuck() {
		drawOverlay(dst, cx, cy, "NO MOVES LEFT", "Press R for a new board")
	}
}

// drawOverlay draws a boxed block of centered lines.
func drawOverlay(dst *core.Screen, cx, cy int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := core.Rect{W: maxLen + 4, H: len(lines) + 2}
	box.X = cx - box.W/2
	box.Y = cy - box.H/2

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(cx-len([]rune(line))/2, box.Y+1+i, line)
	}
}
