package primitives

import (
	"errors"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
)

var errElligator2 = errors.New("elligator2: input has no encoding")

// montgomery holds the coefficients of the curve in Montgomery form
// B*v^2 = u^3 + A*u^2 + u and of its Weierstrass form
// y^2 = x^3 + a*x^2 + b*x with a = A/B and b = 1/B^2.
type montgomery struct {
	A, B fr.Element
	a, b fr.Element
}

var montgomeryCoefficients = sync.OnceValue(func() montgomery {
	var m montgomery
	var aMinusD, t fr.Element
	aMinusD.Sub(&curve.A, &curve.D)

	// A = 2(a+d)/(a-d), B = 4/(a-d)
	t.Add(&curve.A, &curve.D)
	t.Double(&t)
	m.A.Div(&t, &aMinusD)
	t.SetUint64(4)
	m.B.Div(&t, &aMinusD)

	m.a.Div(&m.A, &m.B)
	m.b.Square(&m.B)
	m.b.Inverse(&m.b)
	return m
})

// encodeElligator2 maps a non-zero field element to the prime-order subgroup.
// The non-square used by the map is the Edwards coefficient d. The output is
// cofactor-cleared and normalized to the lexicographically larger x, so the
// square root chosen along the way does not affect it.
func encodeElligator2(in Field) (Group, error) {
	if in.IsZero() {
		return Group{}, errElligator2
	}
	m := montgomeryCoefficients()

	var one fr.Element
	one.SetOne()

	// ur2 = d*in^2
	var ur2, onePlusUr2 fr.Element
	ur2.Square(&in.e)
	ur2.Mul(&ur2, &curve.D)
	onePlusUr2.Add(&one, &ur2)

	// a^2*ur2 != b*(1+ur2)^2
	var lhs, rhs fr.Element
	lhs.Square(&m.a)
	lhs.Mul(&lhs, &ur2)
	rhs.Square(&onePlusUr2)
	rhs.Mul(&rhs, &m.b)
	if lhs.Equal(&rhs) || onePlusUr2.IsZero() {
		return Group{}, errElligator2
	}

	// v = -a/(1+ur2)
	var v fr.Element
	v.Div(&m.a, &onePlusUr2)
	v.Neg(&v)
	if v.IsZero() {
		return Group{}, errElligator2
	}

	var x fr.Element
	vRHS := weierstrassRHS(&v, &m)
	switch vRHS.Legendre() {
	case 1:
		x.Set(&v)
	case -1:
		x.Add(&v, &m.a)
		x.Neg(&x)
	default:
		return Group{}, errElligator2
	}

	var y fr.Element
	w := weierstrassRHS(&x, &m)
	if y.Sqrt(&w) == nil || y.IsZero() {
		return Group{}, errElligator2
	}

	// (x, y) -> Montgomery (u, v) = (x*B, y*B) -> Edwards (u/v, (u-1)/(u+1))
	var u, mv, ex, ey, num, den fr.Element
	u.Mul(&x, &m.B)
	mv.Mul(&y, &m.B)
	den.Add(&u, &one)
	if mv.IsZero() || den.IsZero() {
		return Group{}, errElligator2
	}
	ex.Div(&u, &mv)
	num.Sub(&u, &one)
	ey.Div(&num, &den)

	p := Group{p: twistededwards.NewPointAffine(ex, ey)}
	if !p.p.IsOnCurve() {
		return Group{}, errElligator2
	}

	g := p.ClearCofactor()
	if !g.p.X.LexicographicallyLargest() {
		g = g.Neg()
	}
	return g, nil
}

// weierstrassRHS returns x^3 + a*x^2 + b*x.
func weierstrassRHS(x *fr.Element, m *montgomery) fr.Element {
	var x2, out, t fr.Element
	x2.Square(x)
	out.Mul(&x2, x)
	t.Mul(&m.a, &x2)
	out.Add(&out, &t)
	t.Mul(&m.b, x)
	out.Add(&out, &t)
	return out
}
