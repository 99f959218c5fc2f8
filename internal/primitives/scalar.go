package primitives

import "math/big"

// Scalar is an integer modulo r, the order of the prime subgroup.
//
// The zero value is the scalar 0. Scalars are immutable: every operation
// allocates its result.
type Scalar struct {
	v *big.Int
}

// ScalarFromBigInt reduces v modulo r.
func ScalarFromBigInt(v *big.Int) Scalar {
	return Scalar{v: new(big.Int).Mod(v, scalarModulus)}
}

// ScalarFromUint64 returns v as a scalar.
func ScalarFromUint64(v uint64) Scalar {
	return ScalarFromBigInt(new(big.Int).SetUint64(v))
}

// ScalarFromBytesLE decodes a canonical 32-byte little-endian scalar.
func ScalarFromBytesLE(b []byte) (Scalar, error) {
	if len(b) != EncodedSize {
		return Scalar{}, ErrInvalidLength
	}
	v := new(big.Int).SetBytes(reverse(b))
	if v.Cmp(scalarModulus) >= 0 {
		return Scalar{}, ErrNonCanonical
	}
	return Scalar{v: v}, nil
}

// ScalarFromBytesLEModOrder interprets b as a little-endian integer of any
// length and reduces it modulo r.
func ScalarFromBytesLEModOrder(b []byte) Scalar {
	return ScalarFromBigInt(new(big.Int).SetBytes(reverse(b)))
}

// ParseScalar parses a decimal integer in [0, r).
func ParseScalar(s string) (Scalar, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return Scalar{}, err
	}
	if v.Cmp(scalarModulus) >= 0 {
		return Scalar{}, ErrNonCanonical
	}
	return Scalar{v: v}, nil
}

func (s Scalar) int() *big.Int {
	if s.v == nil {
		return new(big.Int)
	}
	return s.v
}

// BigInt returns a copy of the scalar value.
func (s Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.int())
}

// BytesLE returns the canonical little-endian encoding.
func (s Scalar) BytesLE() [EncodedSize]byte {
	var be [EncodedSize]byte
	s.int().FillBytes(be[:])

	var out [EncodedSize]byte
	copy(out[:], reverse(be[:]))
	return out
}

// String returns the decimal value.
func (s Scalar) String() string {
	return s.int().String()
}

func (s Scalar) Add(o Scalar) Scalar {
	return ScalarFromBigInt(new(big.Int).Add(s.int(), o.int()))
}

func (s Scalar) Sub(o Scalar) Scalar {
	return ScalarFromBigInt(new(big.Int).Sub(s.int(), o.int()))
}

func (s Scalar) Mul(o Scalar) Scalar {
	return ScalarFromBigInt(new(big.Int).Mul(s.int(), o.int()))
}

func (s Scalar) Neg() Scalar {
	return ScalarFromBigInt(new(big.Int).Neg(s.int()))
}

func (s Scalar) IsZero() bool {
	return s.int().Sign() == 0
}

func (s Scalar) Equal(o Scalar) bool {
	return s.int().Cmp(o.int()) == 0
}

// Field embeds s into the base field; r < q so this is injective.
func (s Scalar) Field() Field {
	return FieldFromBigInt(s.int())
}
