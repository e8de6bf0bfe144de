// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned (wrapped) when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Limits accepted by Validate.
const (
	MinGridSize    = 3
	MaxGridSize    = 16
	MinPaletteSize = 3
)

// Match3Config contains all configuration for the match-3 puzzle.
type Match3Config struct {
	Board  Match3Board  `yaml:"board"`
	Timing Match3Timing `yaml:"timing"`
	Rules  Match3Rules  `yaml:"rules"`
	Render Match3Render `yaml:"render"`
}

// Match3Board defines the grid geometry and tile-type cardinality.
type Match3Board struct {
	GridSize    int `yaml:"grid_size"`    // Rows and columns of the square grid
	TilePx      int `yaml:"tile_px"`      // Logical tile size in pixels
	PaletteSize int `yaml:"palette_size"` // Number of distinct tile types
}

// Match3Timing defines animation durations in seconds.
type Match3Timing struct {
	SwapDurationS float64 `yaml:"swap_duration_s"`
	FallDurationS float64 `yaml:"fall_duration_s"`
}

// Match3Rules toggles optional rules.
type Match3Rules struct {
	// Cascade re-checks the grid for matches once falling tiles land.
	Cascade bool `yaml:"cascade"`
}

// Match3Render defines how tiles map onto terminal cells.
type Match3Render struct {
	CellWidth  int         `yaml:"cell_width"`  // Terminal columns per tile
	CellHeight int         `yaml:"cell_height"` // Terminal rows per tile
	Tiles      []TileStyle `yaml:"tiles"`       // One entry per tile type, indexed by value
}

// TileStyle is the glyph and color used to draw one tile type.
type TileStyle struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// SwapDuration returns the swap animation length.
func (c Match3Config) SwapDuration() time.Duration {
	return seconds(c.Timing.SwapDurationS)
}

// FallDuration returns the fall animation length.
func (c Match3Config) FallDuration() time.Duration {
	return seconds(c.Timing.FallDurationS)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Validate reports every problem found in the configuration.
// The returned error wraps ErrInvalid.
func (c Match3Config) Validate() error {
	var problems []error

	if c.Board.GridSize < MinGridSize || c.Board.GridSize > MaxGridSize {
		problems = append(problems, fmt.Errorf("board.grid_size %d not in [%d, %d]", c.Board.GridSize, MinGridSize, MaxGridSize))
	}
	if c.Board.TilePx <= 0 {
		problems = append(problems, fmt.Errorf("board.tile_px must be positive, got %d", c.Board.TilePx))
	}
	if c.Board.PaletteSize < MinPaletteSize {
		problems = append(problems, fmt.Errorf("board.palette_size must be at least %d, got %d", MinPaletteSize, c.Board.PaletteSize))
	}
	if c.Board.PaletteSize > len(c.Render.Tiles) {
		problems = append(problems, fmt.Errorf("board.palette_size %d exceeds the %d render.tiles styles", c.Board.PaletteSize, len(c.Render.Tiles)))
	}
	if c.Timing.SwapDurationS < 0 {
		problems = append(problems, fmt.Errorf("timing.swap_duration_s must not be negative"))
	}
	if c.Timing.FallDurationS < 0 {
		problems = append(problems, fmt.Errorf("timing.fall_duration_s must not be negative"))
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		problems = append(problems, fmt.Errorf("render cell size must be positive, got %dx%d", c.Render.CellWidth, c.Render.CellHeight))
	}
	for i, t := range c.Render.Tiles {
		if t.Glyph == "" {
			problems = append(problems, fmt.Errorf("render.tiles[%d] has no glyph", i))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset converts a CLI value to a preset.
// Unknown values map to the empty preset, which leaves configs untouched.
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
