package primitives

import (
	"encoding/binary"
	"math/bits"
)

// BLAKE2s with an explicit parameter block. BLAKE2Xs needs the fanout, depth,
// leaf length, node offset, inner length and personalization fields, none of
// which golang.org/x/crypto/blake2s lets a caller set.

const blake2sBlockSize = 64

var blake2sIV = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var blake2sSigma = [10][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// blake2sParams is the 32-byte BLAKE2s parameter block without salt.
type blake2sParams struct {
	digestSize  uint8
	fanout      uint8
	depth       uint8
	leafLength  uint32
	nodeOffset  uint64 // 48 bits
	nodeDepth   uint8
	innerLength uint8
	person      [8]byte
}

func (p *blake2sParams) block() [32]byte {
	var b [32]byte
	b[0] = p.digestSize
	b[2] = p.fanout
	b[3] = p.depth
	binary.LittleEndian.PutUint32(b[4:8], p.leafLength)
	var off [8]byte
	binary.LittleEndian.PutUint64(off[:], p.nodeOffset)
	copy(b[8:14], off[:6])
	b[14] = p.nodeDepth
	b[15] = p.innerLength
	copy(b[24:32], p.person[:])
	return b
}

func blake2sSum(p *blake2sParams, data []byte) []byte {
	pb := p.block()
	var h [8]uint32
	for i := range h {
		h[i] = blake2sIV[i] ^ binary.LittleEndian.Uint32(pb[4*i:])
	}

	var t uint64
	for len(data) > blake2sBlockSize {
		t += blake2sBlockSize
		blake2sCompress(&h, data[:blake2sBlockSize], t, false)
		data = data[blake2sBlockSize:]
	}
	var last [blake2sBlockSize]byte
	copy(last[:], data)
	t += uint64(len(data))
	blake2sCompress(&h, last[:], t, true)

	var out [32]byte
	for i := range h {
		binary.LittleEndian.PutUint32(out[4*i:], h[i])
	}
	return out[:p.digestSize]
}

func blake2sCompress(h *[8]uint32, block []byte, t uint64, final bool) {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(block[4*i:])
	}

	var v [16]uint32
	copy(v[:8], h[:])
	copy(v[8:], blake2sIV[:])
	v[12] ^= uint32(t)
	v[13] ^= uint32(t >> 32)
	if final {
		v[14] = ^v[14]
	}

	g := func(a, b, c, d int, x, y uint32) {
		v[a] += v[b] + x
		v[d] = bits.RotateLeft32(v[d]^v[a], -16)
		v[c] += v[d]
		v[b] = bits.RotateLeft32(v[b]^v[c], -12)
		v[a] += v[b] + y
		v[d] = bits.RotateLeft32(v[d]^v[a], -8)
		v[c] += v[d]
		v[b] = bits.RotateLeft32(v[b]^v[c], -7)
	}

	for _, s := range blake2sSigma {
		g(0, 4, 8, 12, m[s[0]], m[s[1]])
		g(1, 5, 9, 13, m[s[2]], m[s[3]])
		g(2, 6, 10, 14, m[s[4]], m[s[5]])
		g(3, 7, 11, 15, m[s[6]], m[s[7]])
		g(0, 5, 10, 15, m[s[8]], m[s[9]])
		g(1, 6, 11, 12, m[s[10]], m[s[11]])
		g(2, 7, 8, 13, m[s[12]], m[s[13]])
		g(3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := range h {
		h[i] ^= v[i] ^ v[i+8]
	}
}

// blake2xs is the BLAKE2Xs extendable-output function: a root BLAKE2s digest
// tagged with the output length, expanded by one leaf hash per 32 bytes.
func blake2xs(input []byte, outLen int, persona string) []byte {
	var person [8]byte
	copy(person[:], persona)

	xofLen := uint64(outLen) << 32
	root := blake2sSum(&blake2sParams{
		digestSize: 32,
		fanout:     1,
		depth:      1,
		nodeOffset: xofLen,
		person:     person,
	}, input)

	out := make([]byte, 0, outLen)
	for i := 0; len(out) < outLen; i++ {
		size := outLen - len(out)
		if size > 32 {
			size = 32
		}
		out = append(out, blake2sSum(&blake2sParams{
			digestSize:  uint8(size),
			leafLength:  32,
			nodeOffset:  xofLen | uint64(i),
			innerLength: 32,
			person:      person,
		}, root)...)
	}
	return out
}
