package primitives

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
	blake2b "github.com/minio/blake2b-simd"
)

// PersonMessage is the BLAKE2b personalization for signed messages. It is
// exactly 16 bytes.
const PersonMessage = "AleoSignMessage0"

// hashToCurvePersona is the BLAKE2Xs personalization of HashToCurve.
const hashToCurvePersona = "AleoHtC0"

// maxHashToCurveAttempts bounds the counter of HashToCurve. Roughly half of
// all candidates decode to a point.
const maxHashToCurveAttempts = 256

// blake2bNew512 creates a BLAKE2b-512 hash with the given personalization.
// The personalization is a distinct parameter, not a key.
func blake2bNew512(personalization string) hash.Hash {
	h, err := blake2b.New(&blake2b.Config{
		Size:   64,
		Person: []byte(personalization),
	})
	if err != nil {
		// Only reachable with a personalization longer than 16 bytes.
		panic(err)
	}
	return h
}

// HashToField hashes arbitrary byte strings to a field element with a
// 512-bit digest reduced modulo q. Each input is length-prefixed.
func HashToField(personalization string, data ...[]byte) Field {
	h := blake2bNew512(personalization)
	var lenBuf [8]byte
	for _, d := range data {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(d)))
		h.Write(lenBuf[:])
		h.Write(d)
	}
	return FieldFromBytesLEModOrder(h.Sum(nil))
}

// DomainField encodes an ASCII domain separator as the little-endian integer
// of its bytes reduced modulo q.
func DomainField(domain string) Field {
	return FieldFromBytesLEModOrder([]byte(domain))
}

// HashToCurve deterministically derives a subgroup generator from msg. For
// k = 0, 1, ... the string "<msg> in <k>" is expanded with BLAKE2Xs into a
// compressed point candidate; the first candidate on the curve whose
// cofactor multiple is not the identity is returned.
func HashToCurve(msg string) (Group, error) {
	for k := 0; k < maxHashToCurveAttempts; k++ {
		digest := blake2xs([]byte(fmt.Sprintf("%s in %d", msg, k)), EncodedSize, hashToCurvePersona)

		p, ok := pointFromRandomBytes(digest)
		if !ok {
			continue
		}
		g := p.ClearCofactor()
		if !g.IsIdentity() {
			return g, nil
		}
	}
	return Group{}, ErrHashToGroupFail
}

// pointFromRandomBytes reads 32 bytes as a compressed point: the low 253 bits
// are the x-coordinate and the top bit selects the larger y.
func pointFromRandomBytes(b []byte) (Group, bool) {
	var buf [EncodedSize]byte
	copy(buf[:], b)
	greatest := buf[EncodedSize-1]&0x80 != 0
	buf[EncodedSize-1] &= 0x1f

	x, err := fr.LittleEndian.Element(&buf)
	if err != nil {
		return Group{}, false
	}
	if x.IsZero() {
		return Identity(), true
	}

	points, err := pointsWithX(x)
	if err != nil {
		return Group{}, false
	}
	y := points[0].Y
	if y.LexicographicallyLargest() != greatest {
		y.Neg(&y)
	}
	return Group{p: twistededwards.NewPointAffine(x, y)}, true
}
