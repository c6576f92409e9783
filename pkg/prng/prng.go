// Package prng provides a deterministic byte source for anything downstream
// that wants reproducible randomness keyed off a workload seed, rather than
// its own math/rand.Rand.
package prng

import (
	"encoding/binary"
	"io"
	"math/rand"

	"github.com/google/uuid"
)

// Reader is a deterministic io.Reader backed by a math/rand RNG.
type Reader struct {
	r *rand.Rand
}

// New returns a new deterministic PRNG reader seeded by an integer.
func New(seed int64) io.Reader {
	return &Reader{r: rand.New(rand.NewSource(seed))}
}

// Read fills p with pseudorandom bytes.
func (r *Reader) Read(p []byte) (int, error) {
	n := len(p)
	for i := 0; i < n; i += 8 {
		v := r.r.Int63() // 63-bit random value
		if n-i >= 8 {
			binary.LittleEndian.PutUint64(p[i:], uint64(v))
			continue
		}
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], uint64(v))
		copy(p[i:], tail[:])
	}
	return n, nil
}

// RunID derives a deterministic UUID from seed, used to correlate log lines
// and statistics from two runs launched with the same seed.
func RunID(seed int64) uuid.UUID {
	id, err := uuid.NewRandomFromReader(New(seed))
	if err != nil {
		// New's Reader never returns an error from Read, so this path is
		// unreachable; NewRandomFromReader only checks bytes read.
		return uuid.UUID{}
	}
	return id
}
