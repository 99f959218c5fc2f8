package primitives

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Poseidon parameters over Fq: x^17 S-box, 8 full and 31 partial rounds,
// capacity 1. Round constants and the MDS matrix are drawn from the Grain
// LFSR of the Poseidon paper, the same stream for every implementation that
// follows it.
const (
	poseidonFullRounds    = 8
	poseidonPartialRounds = 31
	poseidonCapacity      = 1
)

// Poseidon is a sponge hash of fixed rate. Inputs are absorbed behind a
// rate-sized header [domain, len(input), 0, ...].
type Poseidon struct {
	rate   int
	domain fr.Element
	ark    [][]fr.Element
	mds    [][]fr.Element
}

var (
	poseidon2 = sync.OnceValue(func() *Poseidon { return newPoseidon(2) })
	poseidon4 = sync.OnceValue(func() *Poseidon { return newPoseidon(4) })
	poseidon8 = sync.OnceValue(func() *Poseidon { return newPoseidon(8) })
)

// Poseidon2 returns the rate-2 instance.
func Poseidon2() *Poseidon { return poseidon2() }

// Poseidon4 returns the rate-4 instance.
func Poseidon4() *Poseidon { return poseidon4() }

// Poseidon8 returns the rate-8 instance.
func Poseidon8() *Poseidon { return poseidon8() }

func newPoseidon(rate int) *Poseidon {
	width := rate + poseidonCapacity
	lfsr := newGrainLFSR(FieldBits, width, poseidonFullRounds, poseidonPartialRounds)

	p := &Poseidon{
		rate:   rate,
		domain: DomainField(fmt.Sprintf("AleoPoseidon%d", rate)).e,
		ark:    make([][]fr.Element, poseidonFullRounds+poseidonPartialRounds),
	}
	for i := range p.ark {
		p.ark[i] = lfsr.rejectionSample(width)
	}

	xs := lfsr.sampleModQ(width)
	ys := lfsr.sampleModQ(width)
	p.mds = make([][]fr.Element, width)
	for i := range p.mds {
		p.mds[i] = make([]fr.Element, width)
		for j := range p.mds[i] {
			p.mds[i][j].Add(&xs[i], &ys[j])
			p.mds[i][j].Inverse(&p.mds[i][j])
		}
	}
	return p
}

// Rate returns the number of elements absorbed per permutation.
func (p *Poseidon) Rate() int {
	return p.rate
}

// Hash returns the first squeezed element.
func (p *Poseidon) Hash(input ...Field) Field {
	return p.HashMany(1, input...)[0]
}

// HashMany absorbs input once and squeezes n elements.
func (p *Poseidon) HashMany(n int, input ...Field) []Field {
	preimage := make([]fr.Element, p.rate, p.rate+len(input))
	preimage[0] = p.domain
	preimage[1].SetUint64(uint64(len(input)))
	for _, in := range input {
		preimage = append(preimage, in.e)
	}

	state := make([]fr.Element, p.rate+poseidonCapacity)
	next := 0
	for i := range preimage {
		if next == p.rate {
			p.permute(state)
			next = 0
		}
		state[poseidonCapacity+next].Add(&state[poseidonCapacity+next], &preimage[i])
		next++
	}

	out := make([]Field, n)
	p.permute(state)
	next = 0
	for i := range out {
		if next == p.rate {
			p.permute(state)
			next = 0
		}
		out[i] = Field{e: state[poseidonCapacity+next]}
		next++
	}
	return out
}

// HashToScalar truncates Hash to ScalarDataBits bits.
func (p *Poseidon) HashToScalar(input ...Field) Scalar {
	v := p.Hash(input...).BigInt()
	return Scalar{v: v.And(v, scalarDataMask)}
}

// HashToGroup squeezes two elements, maps each to the subgroup with
// Elligator 2 and returns their sum.
func (p *Poseidon) HashToGroup(input ...Field) (Group, error) {
	h := p.HashMany(2, input...)

	g0, err := encodeElligator2(h[0])
	if err != nil {
		return Group{}, err
	}
	g1, err := encodeElligator2(h[1])
	if err != nil {
		return Group{}, err
	}
	return g0.Add(g1), nil
}

var scalarDataMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), ScalarDataBits), big.NewInt(1))

func (p *Poseidon) permute(state []fr.Element) {
	half := poseidonFullRounds / 2
	next := make([]fr.Element, len(state))

	for round := range p.ark {
		for i := range state {
			state[i].Add(&state[i], &p.ark[round][i])
		}

		if round < half || round >= half+poseidonPartialRounds {
			for i := range state {
				sbox(&state[i])
			}
		} else {
			sbox(&state[0])
		}

		for i, row := range p.mds {
			next[i].SetZero()
			for j := range state {
				var t fr.Element
				t.Mul(&row[j], &state[j])
				next[i].Add(&next[i], &t)
			}
		}
		copy(state, next)
	}
}

// sbox raises x to the 17th power.
func sbox(x *fr.Element) {
	var t fr.Element
	t.Square(x)
	t.Square(&t)
	t.Square(&t)
	t.Square(&t)
	x.Mul(x, &t)
}

// grainLFSR is the 80-bit self-shrinking generator that seeds Poseidon
// parameters.
type grainLFSR struct {
	state [80]uint8
	head  int
	bits  int
}

func newGrainLFSR(fieldBits, width, fullRounds, partialRounds int) *grainLFSR {
	g := &grainLFSR{bits: fieldBits}

	// b0..b1 = 01 for a prime field, b2..b5 = 0000 for x^alpha.
	g.state[1] = 1
	put := func(v, lo, hi int) {
		for i := hi; i >= lo; i-- {
			g.state[i] = uint8(v & 1)
			v >>= 1
		}
	}
	put(fieldBits, 6, 17)
	put(width, 18, 29)
	put(fullRounds, 30, 39)
	put(partialRounds, 40, 49)
	for i := 50; i < 80; i++ {
		g.state[i] = 1
	}

	for i := 0; i < 160; i++ {
		g.update()
	}
	return g
}

func (g *grainLFSR) update() uint8 {
	s := &g.state
	h := g.head
	b := s[(h+62)%80] ^ s[(h+51)%80] ^ s[(h+38)%80] ^ s[(h+23)%80] ^ s[(h+13)%80] ^ s[h]
	s[h] = b
	g.head = (h + 1) % 80
	return b
}

// next returns g.bits filtered output bits as a big-endian integer.
func (g *grainLFSR) next() *big.Int {
	v := new(big.Int)
	for i := 0; i < g.bits; i++ {
		for g.update() == 0 {
			g.update()
		}
		v.Lsh(v, 1)
		if g.update() == 1 {
			v.SetBit(v, 0, 1)
		}
	}
	return v
}

func (g *grainLFSR) rejectionSample(n int) []fr.Element {
	out := make([]fr.Element, n)
	for i := range out {
		v := g.next()
		for v.Cmp(fieldModulus) >= 0 {
			v = g.next()
		}
		out[i].SetBigInt(v)
	}
	return out
}

func (g *grainLFSR) sampleModQ(n int) []fr.Element {
	out := make([]fr.Element, n)
	for i := range out {
		out[i].SetBigInt(g.next())
	}
	return out
}
