package match3

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// TileValue identifies a tile type. Valid tiles are 0..palette-1.
type TileValue int8

// Empty marks a cell whose tile was removed and not yet refilled.
const Empty TileValue = -1

// Position addresses a grid cell.
type Position struct {
	Row, Col int
}

// Distance returns the Manhattan distance between two positions.
func (p Position) Distance(q Position) int {
	return core.Abs(p.Row-q.Row) + core.Abs(p.Col-q.Col)
}

// Adjacent reports whether q is one of p's four neighbours.
func (p Position) Adjacent(q Position) bool {
	return p.Distance(q) == 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is a square board of tile values stored row-major.
type Grid struct {
	size  int
	cells []TileValue
}

// NewGrid deals a size x size grid of uniformly random tiles.
func NewGrid(size int, src TileSource, palette int) *Grid {
	g := &Grid{
		size:  size,
		cells: make([]TileValue, size*size),
	}
	for i := range g.cells {
		g.cells[i] = Spawn(src, palette)
	}
	return g
}

// GridFromRows builds a grid from explicit rows. It panics unless rows form a square.
func GridFromRows(rows [][]TileValue) *Grid {
	size := len(rows)
	g := &Grid{
		size:  size,
		cells: make([]TileValue, 0, size*size),
	}
	for r, row := range rows {
		if len(row) != size {
			panic(fmt.Sprintf("match3: row %d has %d cells, want %d", r, len(row), size))
		}
		g.cells = append(g.cells, row...)
	}
	return g
}

// Size returns the number of rows (and columns).
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether p addresses a cell of this grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

func (g *Grid) index(p Position) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("match3: position %v outside %dx%d grid", p, g.size, g.size))
	}
	return p.Row*g.size + p.Col
}

// At returns the tile at p. It panics if p is out of bounds.
func (g *Grid) At(p Position) TileValue {
	return g.cells[g.index(p)]
}

// Set stores v at p. It panics if p is out of bounds.
func (g *Grid) Set(p Position, v TileValue) {
	g.cells[g.index(p)] = v
}

// Swap exchanges two cells unconditionally. Adjacency is the caller's concern.
func (g *Grid) Swap(a, b Position) {
	ia, ib := g.index(a), g.index(b)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		size:  g.size,
		cells: append([]TileValue(nil), g.cells...),
	}
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]TileValue {
	rows := make([][]TileValue, g.size)
	for r := range rows {
		rows[r] = append([]TileValue(nil), g.cells[r*g.size:(r+1)*g.size]...)
	}
	return rows
}

// Column returns a copy of column c from top to bottom.
func (g *Grid) Column(c int) []TileValue {
	col := make([]TileValue, g.size)
	for r := range col {
		col[r] = g.At(Position{Row: r, Col: c})
	}
	return col
}

// Equal reports whether two grids hold the same tiles.
func (g *Grid) Equal(other *Grid) bool {
	if g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// HasEmpty reports whether any cell is Empty.
func (g *Grid) HasEmpty() bool {
	for _, v := range g.cells {
		if v == Empty {
			return true
		}
	}
	return false
}

// String renders the grid one row per line, '.' for empty cells.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := range g.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.size {
			v := g.cells[r*g.size+c]
			if v == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + v))
			}
		}
	}
	return sb.String()
}
