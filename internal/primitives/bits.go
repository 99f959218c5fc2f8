package primitives

import "math/big"

const (
	// FieldBits is the bit length of q.
	FieldBits = 253

	// FieldDataBits is the number of bits any integer below q can carry.
	FieldDataBits = FieldBits - 1

	// ScalarBits is the bit length of r.
	ScalarBits = 251

	// ScalarDataBits is the number of bits any integer below r can carry.
	ScalarDataBits = ScalarBits - 1
)

// BitsLE returns the FieldBits-bit little-endian encoding of f.
func (f Field) BitsLE() []bool {
	return AppendBigBits(make([]bool, 0, FieldBits), f.BigInt(), FieldBits)
}

// BitsLE returns the ScalarBits-bit little-endian encoding of s.
func (s Scalar) BitsLE() []bool {
	return AppendBigBits(make([]bool, 0, ScalarBits), s.int(), ScalarBits)
}

// AppendBigBits appends the n low bits of v, least significant first.
func AppendBigBits(dst []bool, v *big.Int, n int) []bool {
	for i := 0; i < n; i++ {
		dst = append(dst, v.Bit(i) == 1)
	}
	return dst
}

// AppendUintBits appends the n low bits of v, least significant first.
func AppendUintBits(dst []bool, v uint64, n int) []bool {
	for i := 0; i < n; i++ {
		dst = append(dst, (v>>uint(i))&1 == 1)
	}
	return dst
}

// AppendBytesBits appends every byte of b, least significant bit first.
func AppendBytesBits(dst []bool, b []byte) []bool {
	for _, c := range b {
		dst = AppendUintBits(dst, uint64(c), 8)
	}
	return dst
}
