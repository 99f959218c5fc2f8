package primitives

import (
	"errors"
	"fmt"
	"sync"
)

const (
	bhpChunkSize  = 3
	bhpLookupSize = 4

	// bhpDomainBits is the width of the domain prefix of the first block.
	bhpDomainBits = FieldDataBits - 64
)

var ErrBHPInputTooLong = errors.New("bhp: input exceeds the hasher width")

// BHP is a Bowe-Hopwood-Pedersen hash over the curve. Input bits are read
// three at a time; each chunk selects one of {1,2,3,4} times a window base,
// negated by the third bit. Longer inputs are processed in blocks chained
// through the previous digest's x-coordinate.
type BHP struct {
	numWindows int
	windowSize int

	// lookup[i][j][k] = (k+1) * 16^j * base_i
	lookup     [][][bhpLookupSize]Group
	randomBase []Group
	domain     []bool
}

var (
	bhp512  = sync.OnceValue(func() *BHP { return mustBHP(6, 43, "AleoBHP512") })
	bhp1024 = sync.OnceValue(func() *BHP { return mustBHP(8, 54, "AleoBHP1024") })
)

// BHP512 returns the instance used for serial number commitments.
func BHP512() *BHP { return bhp512() }

// BHP1024 returns the instance used for record commitments.
func BHP1024() *BHP { return bhp1024() }

func mustBHP(numWindows, windowSize int, domain string) *BHP {
	h, err := NewBHP(numWindows, windowSize, domain)
	if err != nil {
		panic(err)
	}
	return h
}

// NewBHP derives the window bases for domain. Every base is HashToCurve of
// "Aleo.BHP.<windows>.<size>.<domain>.<index>".
func NewBHP(numWindows, windowSize int, domain string) (*BHP, error) {
	if len(domain)*8 > bhpDomainBits {
		return nil, fmt.Errorf("bhp: domain %q longer than %d bits", domain, bhpDomainBits)
	}
	if numWindows*windowSize*bhpChunkSize <= FieldDataBits {
		return nil, fmt.Errorf("bhp: %d windows of %d chunks cannot chain digests", numWindows, windowSize)
	}

	h := &BHP{
		numWindows: numWindows,
		windowSize: windowSize,
		lookup:     make([][][bhpLookupSize]Group, numWindows),
	}

	for i := range h.lookup {
		base, err := HashToCurve(fmt.Sprintf("Aleo.BHP.%d.%d.%s.%d", numWindows, windowSize, domain, i))
		if err != nil {
			return nil, err
		}
		h.lookup[i] = make([][bhpLookupSize]Group, windowSize)
		for j := range h.lookup[i] {
			acc := base
			for k := 0; k < bhpLookupSize; k++ {
				h.lookup[i][j][k] = acc
				acc = acc.Add(base)
			}
			for k := 0; k < bhpLookupSize; k++ {
				base = base.Add(base)
			}
		}
	}

	r, err := HashToCurve(fmt.Sprintf("Aleo.BHP.%d.%d.%s.Randomizer", numWindows, windowSize, domain))
	if err != nil {
		return nil, err
	}
	h.randomBase = make([]Group, ScalarBits)
	for i := range h.randomBase {
		h.randomBase[i] = r
		r = r.Add(r)
	}

	// [0...0 || reversed domain bits]
	bits := AppendBytesBits(make([]bool, 0, bhpDomainBits), []byte(domain))
	bits = append(bits, make([]bool, bhpDomainBits-len(bits))...)
	for i, j := 0, len(bits)-1; i < j; i, j = i+1, j-1 {
		bits[i], bits[j] = bits[j], bits[i]
	}
	h.domain = bits
	return h, nil
}

// Hash returns the x-coordinate of HashUncompressed.
func (h *BHP) Hash(input []bool) (Field, error) {
	g, err := h.HashUncompressed(input)
	if err != nil {
		return Field{}, err
	}
	return g.X(), nil
}

// HashUncompressed hashes input. The first block is
// [domain || len(input) as u64 || input...]; each further block is
// [previous digest x, FieldDataBits bits || input...].
func (h *BHP) HashUncompressed(input []bool) (Group, error) {
	width := h.numWindows * h.windowSize * bhpChunkSize
	perBlock := width - FieldDataBits

	digest := Identity()
	preimage := make([]bool, 0, width)
	for start := 0; start < len(input); start += perBlock {
		end := start + perBlock
		if end > len(input) {
			end = len(input)
		}

		preimage = preimage[:0]
		if start == 0 {
			preimage = append(preimage, h.domain...)
			preimage = AppendUintBits(preimage, uint64(len(input)), 64)
		} else {
			preimage = append(preimage, digest.X().BitsLE()[:FieldDataBits]...)
		}
		preimage = append(preimage, input[start:end]...)

		var err error
		if digest, err = h.hashBlock(preimage); err != nil {
			return Group{}, err
		}
	}
	return digest, nil
}

// Commit returns the x-coordinate of HashUncompressed(input) + randomizer*R,
// with R the domain's randomizer base.
func (h *BHP) Commit(input []bool, randomizer Scalar) (Field, error) {
	g, err := h.HashUncompressed(input)
	if err != nil {
		return Field{}, err
	}
	for i, bit := range randomizer.BitsLE() {
		if bit {
			g = g.Add(h.randomBase[i])
		}
	}
	return g.X(), nil
}

func (h *BHP) hashBlock(bits []bool) (Group, error) {
	if len(bits) > h.numWindows*h.windowSize*bhpChunkSize {
		return Group{}, ErrBHPInputTooLong
	}
	if r := len(bits) % bhpChunkSize; r != 0 {
		bits = append(bits, make([]bool, bhpChunkSize-r)...)
	}

	sum := Identity()
	for c := 0; c*bhpChunkSize < len(bits); c++ {
		chunk := bits[c*bhpChunkSize : (c+1)*bhpChunkSize]

		idx := 0
		if chunk[0] {
			idx |= 1
		}
		if chunk[1] {
			idx |= 2
		}
		p := h.lookup[c/h.windowSize][c%h.windowSize][idx]
		if chunk[2] {
			p = p.Neg()
		}
		sum = sum.Add(p)
	}
	return sum, nil
}
