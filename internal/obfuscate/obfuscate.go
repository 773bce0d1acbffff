// Package obfuscate hides solver hints at rest so that reading a save file
// does not spoil the puzzle. None of this is encryption.
package obfuscate

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Transform is a reversible byte transform. Implementations must not modify
// b; Transform(Transform(b, false), true) must equal b.
type Transform func(b []byte, decode bool) []byte

// None leaves data untouched.
func None(b []byte, decode bool) []byte {
	return append([]byte(nil), b...)
}

// Bitmap masks each half of b with a SHA-1 stream keyed on the other half.
// Encoding masks the first half then the second; decoding runs the two steps
// in reverse order.
func Bitmap(b []byte, decode bool) []byte {
	out := append([]byte(nil), b...)
	first := len(out) / 2

	type step struct {
		seed, target []byte
	}
	steps := [2]step{
		{seed: out[first:], target: out[:first]},
		{seed: out[:first], target: out[first:]},
	}
	if decode {
		steps[0], steps[1] = steps[1], steps[0]
	}

	for _, st := range steps {
		mask(st.seed, st.target)
	}
	return out
}

// mask XORs target with SHA1(seed || "0"), SHA1(seed || "1"), ...
// seed and target must not overlap.
func mask(seed, target []byte) {
	var digest [sha1.Size]byte
	pos := len(digest)
	counter := 0
	buf := make([]byte, 0, len(seed)+20)

	for i := range target {
		if pos >= len(digest) {
			buf = append(buf[:0], seed...)
			buf = strconv.AppendInt(buf, int64(counter), 10)
			counter++
			digest = sha1.Sum(buf)
			pos = 0
		}
		target[i] ^= digest[pos]
		pos++
	}
}

// Hex encodes data as lowercase hex.
func Hex(b []byte) string {
	return hex.EncodeToString(b)
}

// Unhex reverses Hex.
func Unhex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding hex: %w", err)
	}
	return b, nil
}

// Hide applies t and hex-encodes the result.
func Hide(t Transform, s string) string {
	return Hex(t([]byte(s), false))
}

// Reveal reverses Hide.
func Reveal(t Transform, s string) (string, error) {
	b, err := Unhex(s)
	if err != nil {
		return "", err
	}
	return string(t(b, true)), nil
}
