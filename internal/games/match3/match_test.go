package match3

import (
	"slices"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		rows [][]TileValue
		want []Position
	}{
		{
			name: "no match",
			rows: [][]TileValue{
				{0, 1, 0, 1},
				{1, 0, 1, 0},
				{0, 1, 0, 1},
				{1, 0, 1, 0},
			},
			want: nil,
		},
		{
			name: "horizontal triple",
			rows: [][]TileValue{
				{2, 2, 2, 1},
				{1, 0, 1, 0},
				{0, 1, 0, 1},
				{1, 0, 1, 0},
			},
			want: []Position{{0, 0}, {0, 1}, {0, 2}},
		},
		{
			name: "vertical triple",
			rows: [][]TileValue{
				{0, 1, 0, 3},
				{1, 0, 1, 3},
				{0, 1, 0, 3},
				{1, 0, 1, 0},
			},
			want: []Position{{0, 3}, {1, 3}, {2, 3}},
		},
		{
			name: "run of four covered by overlapping triples",
			rows: [][]TileValue{
				{0, 1, 0, 1},
				{4, 4, 4, 4},
				{0, 1, 0, 1},
				{1, 0, 1, 0},
			},
			want: []Position{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		},
		{
			name: "crossing runs",
			rows: [][]TileValue{
				{0, 3, 0, 1},
				{3, 3, 3, 0},
				{0, 3, 0, 1},
				{1, 0, 1, 0},
			},
			want: []Position{{0, 1}, {1, 0}, {1, 1}, {1, 2}, {2, 1}},
		},
		{
			name: "empty cells never match",
			rows: [][]TileValue{
				{Empty, Empty, Empty, 1},
				{1, 0, 1, 0},
				{0, 1, 0, 1},
				{1, 0, 1, 0},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(GridFromRows(tt.rows)).Positions()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasValidSwap(t *testing.T) {
	tests := []struct {
		name string
		rows [][]TileValue
		want bool
	}{
		{
			name: "swap completes a row",
			rows: [][]TileValue{
				{0, 1, 0},
				{2, 0, 3},
				{4, 2, 1},
			},
			want: true,
		},
		{
			name: "swap completes a column",
			rows: [][]TileValue{
				{1, 0, 2},
				{0, 3, 4},
				{0, 2, 1},
			},
			want: true,
		},
		{
			name: "no value occurs three times",
			rows: [][]TileValue{
				{0, 1, 2},
				{3, 4, 0},
				{1, 2, 3},
			},
			want: false,
		},
		{
			name: "existing match accepts any swap",
			rows: [][]TileValue{
				{0, 0, 0},
				{1, 2, 3},
				{4, 1, 2},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GridFromRows(tt.rows)
			before := g.Clone()
			if got := HasValidSwap(g); got != tt.want {
				t.Errorf("HasValidSwap = %v, want %v", got, tt.want)
			}
			if !g.Equal(before) {
				t.Error("HasValidSwap modified the grid")
			}
		})
	}
}
