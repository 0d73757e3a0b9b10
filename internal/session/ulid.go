package session

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	idMu     sync.Mutex
	lastMS   uint64
	lastRand [10]byte
)

// NewID returns a monotonic ULID: 26 Crockford Base32 characters, a 48-bit
// millisecond timestamp followed by an 80-bit random field. The first ID in
// a millisecond draws all 80 bits fresh; later IDs in the same millisecond
// increment the previous value by one, so they sort after it.
func NewID() string {
	idMu.Lock()
	ms := uint64(time.Now().UnixMilli())
	if ms == lastMS {
		increment(&lastRand)
	} else {
		lastMS = ms
		rand.Read(lastRand[:])
	}
	var b [16]byte
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], ms)
	copy(b[:6], ts[2:])
	copy(b[6:], lastRand[:])
	idMu.Unlock()

	return encodeBase32(b)
}

// increment adds one to r as a big-endian integer, wrapping at 2^80.
func increment(r *[10]byte) {
	for i := len(r) - 1; i >= 0; i-- {
		r[i]++
		if r[i] != 0 {
			return
		}
	}
}

// encodeBase32 writes 128 bits as 26 five-bit symbols, most significant
// first. The leading symbol holds only the top three bits.
func encodeBase32(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])

	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
