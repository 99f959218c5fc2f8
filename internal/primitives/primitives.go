// Package primitives is the arithmetic and hashing layer the account and
// record packages are composed from.
//
// Everything lives on the Edwards BLS12 curve:
//
//	-x^2 + y^2 = 1 + 3021*x^2*y^2   over Fq, q = BLS12-377 scalar field
//
// Field is an element of Fq (the "field" literal type of records), Scalar is
// an element of the prime subgroup order r (the "scalar" literal type) and
// Group is a point of the prime-order subgroup, identified by its affine
// x-coordinate (the "group" literal type).
//
// The field and curve arithmetic is provided by gnark-crypto
// (ecc/bls12-377/fr and ecc/bls12-377/twistededwards). On top of it this
// package builds the hashes the account and record layers are defined with:
//   - HashToCurve: BLAKE2Xs expansion to a compressed point, used for every
//     fixed generator
//   - Poseidon2/4/8: algebraic sponges for key derivation and PRFs
//   - Elligator 2: the field-to-group map behind Poseidon.HashToGroup
//   - BHP512/BHP1024: bit-oriented Pedersen hashes and commitments
//   - HashToField: personalized BLAKE2b-512 for arbitrary byte strings
//
// Byte encodings used by this package are little-endian, 32 bytes.
package primitives

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
)

// EncodedSize is the byte length of every encoded Field, Scalar and Group.
const EncodedSize = fr.Bytes

var (
	ErrInvalidLength   = errors.New("invalid encoding length")
	ErrNonCanonical    = errors.New("value is not reduced modulo the order")
	ErrInvalidDecimal  = errors.New("invalid decimal literal")
	ErrNotOnCurve      = errors.New("point is not on the curve")
	ErrNotInSubgroup   = errors.New("point is not in the prime-order subgroup")
	ErrHashToGroupFail = errors.New("hash to curve did not find a point")
)

var (
	curve = twistededwards.GetEdwardsCurve()

	// fieldModulus is q, the modulus of Field.
	fieldModulus = fr.Modulus()

	// scalarModulus is r, the order of the prime subgroup.
	scalarModulus = new(big.Int).Set(&curve.Order)

	cofactor = big.NewInt(4)
)

// FieldModulus returns a copy of q.
func FieldModulus() *big.Int {
	return new(big.Int).Set(fieldModulus)
}

// ScalarModulus returns a copy of r.
func ScalarModulus() *big.Int {
	return new(big.Int).Set(scalarModulus)
}

// reverse returns a reversed copy of b.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

// parseDecimal accepts only ASCII digits; big.Int.SetString would also take
// signs, underscores and base prefixes.
func parseDecimal(s string) (*big.Int, error) {
	if s == "" || len(s) > 80 {
		return nil, ErrInvalidDecimal
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, ErrInvalidDecimal
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrInvalidDecimal
	}
	return v, nil
}
