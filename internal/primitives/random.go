package primitives

import (
	"errors"
	"fmt"
	"io"
)

// wideSize is the number of random bytes drawn per sample; reducing 512 bits
// modulo a 253-bit order leaves a negligible bias.
const wideSize = 64

// maxSampleAttempts caps rejection sampling against a broken source that
// keeps returning zeros.
const maxSampleAttempts = 8

// ErrDegenerateRandomness is returned when rng keeps producing values that
// must be rejected.
var ErrDegenerateRandomness = errors.New("random source produced only degenerate samples")

// RandomField draws a uniform field element from rng.
func RandomField(rng io.Reader) (Field, error) {
	var buf [wideSize]byte
	defer zero(buf[:])
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return Field{}, fmt.Errorf("failed to read randomness: %w", err)
	}
	return FieldFromBytesLEModOrder(buf[:]), nil
}

// RandomScalar draws a uniform non-zero scalar from rng.
func RandomScalar(rng io.Reader) (Scalar, error) {
	var buf [wideSize]byte
	defer zero(buf[:])
	for i := 0; i < maxSampleAttempts; i++ {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return Scalar{}, fmt.Errorf("failed to read randomness: %w", err)
		}
		s := ScalarFromBytesLEModOrder(buf[:])
		if !s.IsZero() {
			return s, nil
		}
	}
	return Scalar{}, ErrDegenerateRandomness
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
