package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in match-3 configuration:
// a 9x9 grid of 80px tiles, five tile types and one-second animations.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: Match3Board{
			GridSize:    9,
			TilePx:      80,
			PaletteSize: 5,
		},
		Timing: Match3Timing{
			SwapDurationS: 1.0,
			FallDurationS: 1.0,
		},
		Rules: Match3Rules{
			Cascade: false,
		},
		Render: Match3Render{
			CellWidth:  4,
			CellHeight: 2,
			Tiles: []TileStyle{
				{Glyph: "●", Color: "red"},
				{Glyph: "◆", Color: "yellow"},
				{Glyph: "▲", Color: "green"},
				{Glyph: "■", Color: "blue"},
				{Glyph: "★", Color: "magenta"},
				{Glyph: "♥", Color: "cyan"},
				{Glyph: "✚", Color: "orange"},
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_cascade":
		return defaultMatch3YAML
	default:
		return nil
	}
}
