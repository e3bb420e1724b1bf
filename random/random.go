// Package random generates short alphanumeric identifiers.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"sync"
	"time"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var (
	mu  sync.Mutex
	rnd = mrand.New(mrand.NewSource(seed()))
)

func seed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// String returns a mixed-case alphanumeric string of the given
// length. Not suitable for secrets.
func String(length int) string {
	b := make([]byte, length)

	mu.Lock()
	for i := range b {
		b[i] = alphabet[rnd.Intn(len(alphabet))]
	}
	mu.Unlock()

	return string(b)
}
