package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBits_KnownStream(t *testing.T) {
	rs := NewFromString("1234567890123")

	var got []uint32
	for i := 0; i < 5; i++ {
		got = append(got, rs.Bits(8))
	}
	assert.Equal(t, []uint32{78, 214, 125, 233, 145}, got)
}

func TestBits_ThirtyTwo(t *testing.T) {
	rs := NewFromString("seed")

	assert.Equal(t, uint32(3298395024), rs.Bits(32))
	assert.Equal(t, uint32(3787278786), rs.Bits(32))
	assert.Equal(t, uint32(3928254341), rs.Bits(32))
}

func TestUpto_CrossesDigestBoundary(t *testing.T) {
	// Thirty draws of 7 bits each consume more than one 20-byte digest.
	rs := NewFromString("1234567890123")

	want := []uint32{6, 7, 8, 1, 1, 5, 1, 8, 9, 9, 2, 2, 7, 7, 4, 5, 2, 8, 2, 7, 2, 7, 4, 3, 7, 3, 3, 1, 9, 3}
	for i, w := range want {
		assert.Equal(t, w, rs.Upto(10), "draw %d", i)
	}
}

func TestUpto_InRange(t *testing.T) {
	rs := NewFromString("range")
	for _, limit := range []uint32{1, 2, 3, 7, 100, 1000} {
		for i := 0; i < 200; i++ {
			v := rs.Upto(limit)
			require.Less(t, v, limit)
		}
	}
}

func TestUpto_ZeroPanics(t *testing.T) {
	rs := NewFromString("x")
	assert.Panics(t, func() { rs.Upto(0) })
}

func TestSameSeedSameStream(t *testing.T) {
	a := NewFromString("determinism")
	b := NewFromString("determinism")
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Bits(16), b.Bits(16))
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	rs := NewFromString("shuffle")
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	rs.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })

	seen := make(map[int]bool)
	for _, x := range xs {
		seen[x] = true
	}
	assert.Len(t, seen, 10)
}

func TestNewSeedString(t *testing.T) {
	assert.Equal(t, "678115189922774", NewSeedString(NewFromString("1234567890123")))

	seed := NewSeedString(New(Entropy()))
	require.Len(t, seed, 15)
	assert.NotEqual(t, byte('0'), seed[0])
	for _, c := range seed {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestEntropy_NotEmpty(t *testing.T) {
	assert.NotEmpty(t, Entropy())
}
