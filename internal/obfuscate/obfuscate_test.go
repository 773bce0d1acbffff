package obfuscate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitmap_KnownVector(t *testing.T) {
	assert.Equal(t, "8e13c8a41184d058b7109d3e", Hide(Bitmap, "hello, world"))
	assert.Equal(t, "d7", Hide(Bitmap, "a"))
	assert.Equal(t, "", Hide(Bitmap, ""))
}

func TestBitmap_RoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "abc", "a much longer solver hint spanning several digests 0123456789"} {
		enc := Bitmap([]byte(s), false)
		assert.Equal(t, s, string(Bitmap(enc, true)), "input %q", s)
	}
}

func TestBitmap_DoesNotModifyInput(t *testing.T) {
	in := []byte("unchanged")
	_ = Bitmap(in, false)
	assert.Equal(t, "unchanged", string(in))
}

func TestHideReveal(t *testing.T) {
	hidden := Hide(Bitmap, "S")
	assert.NotContains(t, hidden, "S")

	got, err := Reveal(Bitmap, hidden)
	require.NoError(t, err)
	assert.Equal(t, "S", got)
}

func TestReveal_BadHex(t *testing.T) {
	_, err := Reveal(Bitmap, "zz")
	assert.Error(t, err)
}

func TestNone(t *testing.T) {
	assert.Equal(t, "6869", Hide(None, "hi"))
}
