package random

import (
	"crypto/rand"
	"encoding/binary"
	"os"
	"time"
)

// Entropy returns process-wide random bytes for seeding the stream that
// mints new seed strings. It never fails: if the system source is
// unavailable the wall clock and pid are used instead.
func Entropy() []byte {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf[:16]); err != nil {
		buf = buf[:16]
	}
	binary.LittleEndian.PutUint64(buf[len(buf)-16:], uint64(time.Now().UnixNano()))
	binary.LittleEndian.PutUint64(buf[len(buf)-8:], uint64(os.Getpid()))
	return buf
}

// NewSeedString draws a fresh 15-digit decimal seed from rs. The first digit
// is never zero so the seed cannot be mistaken for a padded number.
func NewSeedString(rs *State) string {
	seed := make([]byte, 15)
	seed[0] = '1' + byte(rs.Upto(9))
	for i := 1; i < len(seed); i++ {
		seed[i] = '0' + byte(rs.Upto(10))
	}
	return string(seed)
}
