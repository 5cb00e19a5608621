package pasta

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// RNG is a deterministic byte stream derived from a seed and a label. Two RNGs
// with the same seed and label produce the same bytes.
type RNG struct {
	xof blake2b.XOF
}

// NewRNG returns the stream for the given seed and label.
func NewRNG(seed []byte, label string) *RNG {
	key := blake2b.Sum256(seed)
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key[:])
	if err != nil {
		// only fails for keys longer than 64 bytes
		panic(err)
	}
	_, _ = xof.Write([]byte(label))
	return &RNG{xof: xof}
}

// Read fills p from the stream. It never fails.
func (r *RNG) Read(p []byte) (int, error) {
	return r.xof.Read(p)
}

// Bytes returns the next n bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	_, _ = r.Read(b)
	return b
}

// Uint64 returns the next 8 bytes as an integer.
func (r *RNG) Uint64() uint64 {
	return binary.LittleEndian.Uint64(r.Bytes(8))
}
