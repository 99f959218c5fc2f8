package primitives

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
)

// Group is a point of the prime-order subgroup.
//
// A point is stored in affine coordinates and encoded by its x-coordinate
// only; the y-coordinate is recovered on decode as the unique root that puts
// the point in the subgroup.
type Group struct {
	p twistededwards.PointAffine
}

// generatorDomain is hashed to the account generator.
const generatorDomain = "AleoAccountEncryptionAndSignatureScheme0"

var generator = sync.OnceValue(func() Group {
	g, err := HashToCurve(generatorDomain)
	if err != nil {
		panic(err)
	}
	return g
})

// Generator returns the account generator G, HashToCurve of a fixed domain.
func Generator() Group {
	return generator()
}

// Identity returns the neutral element (0, 1).
func Identity() Group {
	var g Group
	g.p.X.SetZero()
	g.p.Y.SetOne()
	return g
}

// GroupFromX recovers the subgroup point with the given x-coordinate.
func GroupFromX(x Field) (Group, error) {
	candidates, err := pointsWithX(x.e)
	if err != nil {
		return Group{}, err
	}
	for i := range candidates {
		g := Group{p: candidates[i]}
		if g.inSubgroup() {
			return g, nil
		}
	}
	return Group{}, ErrNotInSubgroup
}

// GroupFromBytesLE decodes a canonical little-endian x-coordinate.
func GroupFromBytesLE(b []byte) (Group, error) {
	x, err := FieldFromBytesLE(b)
	if err != nil {
		return Group{}, err
	}
	return GroupFromX(x)
}

// ParseGroup parses the decimal x-coordinate of a subgroup point.
func ParseGroup(s string) (Group, error) {
	x, err := ParseField(s)
	if err != nil {
		return Group{}, err
	}
	return GroupFromX(x)
}

// pointsWithX returns the two curve points (x, y) and (x, -y), solving
// y^2 = (1 - a*x^2) / (1 - d*x^2).
func pointsWithX(x fr.Element) ([2]twistededwards.PointAffine, error) {
	var out [2]twistededwards.PointAffine

	var xx, num, den, one fr.Element
	one.SetOne()
	xx.Square(&x)

	num.Mul(&curve.A, &xx)
	num.Sub(&one, &num)

	den.Mul(&curve.D, &xx)
	den.Sub(&one, &den)
	if den.IsZero() {
		return out, ErrNotOnCurve
	}

	var yy, y fr.Element
	yy.Div(&num, &den)
	if y.Sqrt(&yy) == nil {
		return out, ErrNotOnCurve
	}

	out[0] = twistededwards.NewPointAffine(x, y)
	y.Neg(&y)
	out[1] = twistededwards.NewPointAffine(x, y)
	return out, nil
}

func (g Group) inSubgroup() bool {
	if !g.p.IsOnCurve() {
		return false
	}
	var r twistededwards.PointAffine
	r.ScalarMultiplication(&g.p, scalarModulus)
	return r.IsZero()
}

func (g Group) Add(o Group) Group {
	var r Group
	r.p.Add(&g.p, &o.p)
	return r
}

func (g Group) Neg() Group {
	var r Group
	r.p.Neg(&g.p)
	return r
}

// Mul returns s*g.
func (g Group) Mul(s Scalar) Group {
	var r Group
	r.p.ScalarMultiplication(&g.p, s.int())
	return r
}

// ClearCofactor multiplies by the curve cofactor, mapping any curve point
// into the prime-order subgroup.
func (g Group) ClearCofactor() Group {
	var r Group
	r.p.ScalarMultiplication(&g.p, cofactor)
	return r
}

// X returns the affine x-coordinate.
func (g Group) X() Field {
	return Field{e: g.p.X}
}

func (g Group) Equal(o Group) bool {
	return g.p.Equal(&o.p)
}

func (g Group) IsIdentity() bool {
	return g.p.IsZero()
}

// BytesLE returns the little-endian x-coordinate.
func (g Group) BytesLE() [EncodedSize]byte {
	return g.X().BytesLE()
}

// String returns the decimal x-coordinate.
func (g Group) String() string {
	return g.X().String()
}

// mulBig is used for the subgroup order checks in tests.
func (g Group) mulBig(k *big.Int) Group {
	var r Group
	r.p.ScalarMultiplication(&g.p, k)
	return r
}
