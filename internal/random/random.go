// Package random provides the deterministic random stream used for puzzle
// generation, and the process entropy used to mint fresh seeds.
//
// The stream is built on SHA-1 so that a given seed string produces the same
// puzzle on every platform and every Go release. math/rand makes no such
// promise across versions, so it cannot be used here.
package random

import (
	"crypto/sha1"
)

// State is a seeded random stream. It is not safe for concurrent use.
type State struct {
	seed [40]byte
	data [sha1.Size]byte
	pos  int
}

// New seeds a stream from arbitrary bytes.
func New(seed []byte) *State {
	s := &State{}
	h := sha1.Sum(seed)
	copy(s.seed[:20], h[:])
	h = sha1.Sum(s.seed[:20])
	copy(s.seed[20:], h[:])
	s.data = sha1.Sum(s.seed[:])
	return s
}

// NewFromString seeds a stream from a seed string.
func NewFromString(seed string) *State {
	return New([]byte(seed))
}

func (s *State) nextByte() byte {
	if s.pos >= len(s.data) {
		// Treat the first half of the seed buffer as a counter.
		for i := 0; i < 20; i++ {
			if s.seed[i] != 0xFF {
				s.seed[i]++
				break
			}
			s.seed[i] = 0
		}
		s.data = sha1.Sum(s.seed[:])
		s.pos = 0
	}
	b := s.data[s.pos]
	s.pos++
	return b
}

// Bits returns a uniformly distributed value of the given width (at most 32).
func (s *State) Bits(bits int) uint32 {
	var ret uint64
	for n := 0; n < bits; n += 8 {
		ret = ret<<8 | uint64(s.nextByte())
	}
	return uint32(ret & (1<<uint(bits) - 1))
}

// Upto returns a uniformly distributed value in [0, limit).
func (s *State) Upto(limit uint32) uint32 {
	if limit == 0 {
		panic("random: Upto called with zero limit")
	}
	bits := 0
	for limit>>uint(bits) != 0 {
		bits++
	}
	bits += 3
	if bits >= 32 {
		panic("random: Upto limit too large")
	}
	max := uint32(1) << uint(bits)
	divisor := max / limit
	max = limit * divisor

	for {
		data := s.Bits(bits)
		if data < max {
			return data / divisor
		}
	}
}

// Intn is Upto for int-typed callers.
func (s *State) Intn(n int) int {
	return int(s.Upto(uint32(n)))
}

// Shuffle permutes n elements with a Fisher-Yates walk driven by the stream.
func (s *State) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		if j != i {
			swap(i, j)
		}
	}
}
