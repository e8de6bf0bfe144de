package match3

import "math/rand"

// TileSource is the random capability the engine deals tiles from.
// *rand.Rand satisfies it.
type TileSource interface {
	Intn(n int) int
}

// NewRandSource returns a seeded pseudo-random TileSource.
func NewRandSource(seed int64) TileSource {
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays Values in order, wrapping around at the end.
// Each value is reduced modulo n, so it works for any palette size.
type SequenceSource struct {
	Values []int
	next   int
}

// NewSequenceSource returns a source that yields values in order.
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{Values: values}
}

// Intn returns the next value of the sequence modulo n.
func (s *SequenceSource) Intn(n int) int {
	if len(s.Values) == 0 || n <= 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return ((v % n) + n) % n
}

// Spawn deals a uniformly random tile value in [0, palette).
func Spawn(src TileSource, palette int) TileValue {
	return TileValue(src.Intn(palette))
}
