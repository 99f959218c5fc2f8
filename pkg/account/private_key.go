// Package account implements the Aleo account key hierarchy.
//
// A PrivateKey is a 32-byte field seed from which two signature scalars are
// derived with the rate-2 Poseidon sponge:
//
//	sk_sig = H2(sk_domain, seed)    r_sig = H2(r_domain, seed)
//
// The compute key is (pk_sig, pr_sig, sk_prf) with pk_sig = sk_sig*G,
// pr_sig = r_sig*G and sk_prf = H4(pk_sig.x, pr_sig.x). The view key is
// sk_sig + r_sig + sk_prf and the address is view_key*G, which is also
// pk_sig + pr_sig + sk_prf*G.
//
// String formats:
//   - Private key: base58, "APrivateKey1" + 32-byte seed
//   - View key: base58, "AViewKey1" + 32-byte scalar
//   - Address: bech32m, hrp "aleo", 32-byte x-coordinate
//   - Signature: bech32m, hrp "sign"
//   - Private key ciphertext: bech32m, hrp "ciphertext"
package account

import (
	"fmt"
	"io"

	"github.com/suffix-labs/aleo-account/internal/primitives"
)

const privateKeyKind = "private key"

// SeedSize is the length of a private key seed.
const SeedSize = 32

// privateKeyPrefix makes the base58 form start with "APrivateKey1".
var privateKeyPrefix = []byte{127, 134, 189, 116, 210, 221, 210, 137, 145, 18, 253}

const (
	signatureKeyDomain        = "AleoAccountSignatureSecretKey0"
	signatureRandomizerDomain = "AleoAccountSignatureRandomizer0.0"
)

// PrivateKey is the root account secret.
type PrivateKey struct {
	seed  primitives.Field
	skSig primitives.Scalar
	rSig  primitives.Scalar
}

// NewPrivateKey samples a private key from rng.
func NewPrivateKey(rng io.Reader) (PrivateKey, error) {
	for {
		seed, err := primitives.RandomField(rng)
		if err != nil {
			return PrivateKey{}, fmt.Errorf("failed to sample seed: %w", err)
		}

		pk, err := privateKeyFromField(seed)
		if err == nil {
			return pk, nil
		}
		log.Debugf("Rejected degenerate private key sample, resampling")
	}
}

// PrivateKeyFromSeed derives a private key from a 32-byte seed. The seed is
// read as a little-endian integer and reduced modulo the field order, so
// every 32-byte input yields a key and the same seed always yields the same
// key.
func PrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != SeedSize {
		return PrivateKey{}, keyErr(privateKeyKind, CodeInvalidSeed,
			fmt.Sprintf("seed must be %d bytes, got %d", SeedSize, len(seed)), nil)
	}
	return privateKeyFromField(primitives.FieldFromBytesLEModOrder(seed))
}

// ParsePrivateKey decodes an "APrivateKey1..." string.
func ParsePrivateKey(s string) (PrivateKey, error) {
	payload, err := decodeBase58(privateKeyKind, s, privateKeyPrefix, primitives.EncodedSize)
	if err != nil {
		return PrivateKey{}, err
	}

	seed, err := primitives.FieldFromBytesLE(payload)
	if err != nil {
		return PrivateKey{}, keyErr(privateKeyKind, CodeNonCanonical, "seed is not a field element", err)
	}
	return privateKeyFromField(seed)
}

func privateKeyFromField(seed primitives.Field) (PrivateKey, error) {
	psd := primitives.Poseidon2()

	pk := PrivateKey{
		seed:  seed,
		skSig: psd.HashToScalar(primitives.DomainField(signatureKeyDomain), seed),
		rSig:  psd.HashToScalar(primitives.DomainField(signatureRandomizerDomain), seed),
	}
	if pk.skSig.IsZero() || pk.rSig.IsZero() {
		return PrivateKey{}, keyErr(privateKeyKind, CodeNonCanonical, "seed derives a zero scalar", nil)
	}
	return pk, nil
}

// String returns the base58 "APrivateKey1..." form.
func (pk PrivateKey) String() string {
	seed := pk.seed.BytesLE()
	return encodeBase58(privateKeyPrefix, seed[:])
}

// Seed returns the canonical 32-byte little-endian seed.
func (pk PrivateKey) Seed() [SeedSize]byte {
	return pk.seed.BytesLE()
}

// ComputeKey derives the compute key.
func (pk PrivateKey) ComputeKey() ComputeKey {
	g := primitives.Generator()
	return newComputeKey(g.Mul(pk.skSig), g.Mul(pk.rSig))
}

// ViewKey derives the view key sk_sig + r_sig + sk_prf.
func (pk PrivateKey) ViewKey() ViewKey {
	ck := pk.ComputeKey()
	return ViewKey{s: pk.skSig.Add(pk.rSig).Add(ck.skPrf)}
}

// Address derives the address through the compute key.
func (pk PrivateKey) Address() Address {
	return pk.ComputeKey().Address()
}

// SignatureSecret returns sk_sig. It is the secret the serial number PRF is
// keyed with and must not leave the process.
func (pk PrivateKey) SignatureSecret() primitives.Scalar {
	return pk.skSig
}

// Equal reports whether both keys have the same seed.
func (pk PrivateKey) Equal(o PrivateKey) bool {
	return pk.seed.Equal(o.seed)
}
