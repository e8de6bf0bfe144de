package match3

import "time"

// AnimKind tells the renderer which axes of an animation move.
type AnimKind int

const (
	AnimSwap AnimKind = iota // Both x and y interpolate
	AnimFall                 // Only y interpolates; x stays on the resting column
)

func (k AnimKind) String() string {
	switch k {
	case AnimSwap:
		return "swap"
	case AnimFall:
		return "fall"
	default:
		return "unknown"
	}
}

// Point is a pixel position relative to the top-left corner of the grid.
type Point struct {
	X, Y float64
}

// Layout converts grid positions to pixel positions.
type Layout struct {
	TilePx int
}

// Rest returns the resting pixel position of the tile at p.
func (l Layout) Rest(p Position) Point {
	return Point{X: float64(p.Col * l.TilePx), Y: float64(p.Row * l.TilePx)}
}

// Animation is a time-bounded movement of the tile stored at its key position.
type Animation struct {
	Kind     AnimKind
	Start    time.Duration // Clock reading when the animation began
	Duration time.Duration
	From     Point
	To       Point
}

// Expired reports whether the animation has run its full duration at now.
func (a Animation) Expired(now time.Duration) bool {
	return now-a.Start >= a.Duration
}

// Progress returns the completed fraction in [0, 1].
func (a Animation) Progress(now time.Duration) float64 {
	if a.Expired(now) {
		return 1
	}
	elapsed := now - a.Start
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(a.Duration)
}

// PositionAt interpolates linearly between From and To.
// Fall animations keep the resting x coordinate.
func (a Animation) PositionAt(now time.Duration, rest Point) Point {
	t := a.Progress(now)
	p := Point{
		X: a.From.X + (a.To.X-a.From.X)*t,
		Y: a.From.Y + (a.To.Y-a.From.Y)*t,
	}
	if a.Kind == AnimFall {
		p.X = rest.X
	}
	return p
}

// Scheduler holds at most one live animation per grid position.
type Scheduler struct {
	records map[Position]Animation
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{records: make(map[Position]Animation)}
}

// Put starts an animation for p, replacing any record already there.
func (s *Scheduler) Put(p Position, a Animation) {
	s.records[p] = a
}

// Merge adds every record of batch, overwriting records with the same key.
func (s *Scheduler) Merge(batch map[Position]Animation) {
	for p, a := range batch {
		s.records[p] = a
	}
}

// Get returns the record stored for p.
func (s *Scheduler) Get(p Position) (Animation, bool) {
	a, ok := s.records[p]
	return a, ok
}

// Len returns the number of stored records, expired or not.
func (s *Scheduler) Len() int {
	return len(s.records)
}

// Count returns the number of stored records of the given kind.
func (s *Scheduler) Count(kind AnimKind) int {
	n := 0
	for _, a := range s.records {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// At returns where the tile at p should be drawn at now, and whether it is
// still moving. An expired record is removed and the resting position returned.
func (s *Scheduler) At(p Position, rest Point, now time.Duration) (Point, bool) {
	a, ok := s.records[p]
	if !ok {
		return rest, false
	}
	if a.Expired(now) {
		delete(s.records, p)
		return rest, false
	}
	return a.PositionAt(now, rest), true
}

// Sweep removes every record that has expired at now and returns how many
// were removed. Keys are collected before deletion.
func (s *Scheduler) Sweep(now time.Duration) int {
	var expired []Position
	for p, a := range s.records {
		if a.Expired(now) {
			expired = append(expired, p)
		}
	}
	for _, p := range expired {
		delete(s.records, p)
	}
	return len(expired)
}

// Clear drops every record.
func (s *Scheduler) Clear() {
	clear(s.records)
}
