package primitives

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Field is an element of the base field of the Edwards curve.
type Field struct {
	e fr.Element
}

// FieldFromUint64 returns v as a field element.
func FieldFromUint64(v uint64) Field {
	var f Field
	f.e.SetUint64(v)
	return f
}

// FieldFromBytesLE decodes a canonical 32-byte little-endian field element.
func FieldFromBytesLE(b []byte) (Field, error) {
	if len(b) != EncodedSize {
		return Field{}, ErrInvalidLength
	}
	var buf [EncodedSize]byte
	copy(buf[:], b)

	e, err := fr.LittleEndian.Element(&buf)
	if err != nil {
		return Field{}, ErrNonCanonical
	}
	return Field{e: e}, nil
}

// FieldFromBytesLEModOrder interprets b as a little-endian integer of any
// length and reduces it modulo q.
func FieldFromBytesLEModOrder(b []byte) Field {
	v := new(big.Int).SetBytes(reverse(b))
	return FieldFromBigInt(v)
}

// FieldFromBigInt reduces v modulo q.
func FieldFromBigInt(v *big.Int) Field {
	var f Field
	f.e.SetBigInt(v)
	return f
}

// ParseField parses a decimal integer in [0, q).
func ParseField(s string) (Field, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return Field{}, err
	}
	if v.Cmp(fieldModulus) >= 0 {
		return Field{}, ErrNonCanonical
	}
	return FieldFromBigInt(v), nil
}

// BytesLE returns the canonical little-endian encoding.
func (f Field) BytesLE() [EncodedSize]byte {
	var out [EncodedSize]byte
	fr.LittleEndian.PutElement(&out, f.e)
	return out
}

// BigInt returns the canonical integer value of f.
func (f Field) BigInt() *big.Int {
	return f.e.BigInt(new(big.Int))
}

// String returns the decimal value. fr.Element.Text prints values close to q
// as negatives, so go through big.Int.
func (f Field) String() string {
	return f.BigInt().String()
}

func (f Field) Add(o Field) Field {
	var r Field
	r.e.Add(&f.e, &o.e)
	return r
}

func (f Field) Mul(o Field) Field {
	var r Field
	r.e.Mul(&f.e, &o.e)
	return r
}

func (f Field) Equal(o Field) bool {
	return f.e.Equal(&o.e)
}

func (f Field) IsZero() bool {
	return f.e.IsZero()
}

// Scalar reduces f modulo r.
func (f Field) Scalar() Scalar {
	return ScalarFromBigInt(f.BigInt())
}
