package account

import (
	"fmt"
	"io"

	"github.com/suffix-labs/aleo-account/internal/primitives"
)

const signatureKind = "signature"

// SignatureHRP is the bech32m human-readable part of signatures.
const SignatureHRP = "sign"

// SignatureSize is the length of an encoded signature:
// challenge || response || pk_sig.x || pr_sig.x.
const SignatureSize = 4 * primitives.EncodedSize

// Signature is a Schnorr signature together with the signer's compute key.
type Signature struct {
	challenge primitives.Scalar
	response  primitives.Scalar
	ck        ComputeKey
}

// Sign signs message with a fresh nonce drawn from rng.
//
//	k       <- rng
//	g_r     = k*G
//	c       = H8(g_r.x, pk_sig.x, pr_sig.x, address.x, H_msg(message))
//	s       = k - c*sk_sig
func (pk PrivateKey) Sign(message []byte, rng io.Reader) (Signature, error) {
	nonce, err := primitives.RandomScalar(rng)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to sample signature nonce: %w", err)
	}

	ck := pk.ComputeKey()
	gR := primitives.Generator().Mul(nonce)
	challenge := signatureChallenge(gR, ck, ck.Address(), message)

	return Signature{
		challenge: challenge,
		response:  nonce.Sub(challenge.Mul(pk.skSig)),
		ck:        ck,
	}, nil
}

// Verify reports whether sig was produced by the key behind address over
// exactly message. It never fails; any mismatch is false.
func (sig Signature) Verify(address Address, message []byte) bool {
	if !sig.ck.Address().Equal(address) {
		return false
	}

	// g_r = s*G + c*pk_sig
	gR := primitives.Generator().Mul(sig.response).Add(sig.ck.pkSig.Mul(sig.challenge))

	return signatureChallenge(gR, sig.ck, address, message).Equal(sig.challenge)
}

func signatureChallenge(gR primitives.Group, ck ComputeKey, address Address, message []byte) primitives.Scalar {
	return primitives.Poseidon8().HashToScalar(
		gR.X(),
		ck.pkSig.X(),
		ck.prSig.X(),
		address.X(),
		primitives.HashToField(primitives.PersonMessage, message),
	)
}

// ComputeKey returns the signer's compute key.
func (sig Signature) ComputeKey() ComputeKey {
	return sig.ck
}

// Bytes returns challenge || response || pk_sig.x || pr_sig.x.
func (sig Signature) Bytes() []byte {
	out := make([]byte, 0, SignatureSize)
	for _, b := range [][primitives.EncodedSize]byte{
		sig.challenge.BytesLE(),
		sig.response.BytesLE(),
		sig.ck.pkSig.BytesLE(),
		sig.ck.prSig.BytesLE(),
	} {
		out = append(out, b[:]...)
	}
	return out
}

// SignatureFromBytes decodes the output of Bytes.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		return Signature{}, keyErr(signatureKind, CodeInvalidLength, "unexpected payload length", nil)
	}
	const n = primitives.EncodedSize

	challenge, err := primitives.ScalarFromBytesLE(b[0:n])
	if err != nil {
		return Signature{}, keyErr(signatureKind, CodeNonCanonical, "challenge is not a scalar", err)
	}
	response, err := primitives.ScalarFromBytesLE(b[n : 2*n])
	if err != nil {
		return Signature{}, keyErr(signatureKind, CodeNonCanonical, "response is not a scalar", err)
	}
	pkSig, err := primitives.GroupFromBytesLE(b[2*n : 3*n])
	if err != nil {
		return Signature{}, keyErr(signatureKind, CodeNotOnCurve, "pk_sig is not a subgroup point", err)
	}
	prSig, err := primitives.GroupFromBytesLE(b[3*n : 4*n])
	if err != nil {
		return Signature{}, keyErr(signatureKind, CodeNotOnCurve, "pr_sig is not a subgroup point", err)
	}

	return Signature{
		challenge: challenge,
		response:  response,
		ck:        newComputeKey(pkSig, prSig),
	}, nil
}

// ParseSignature decodes a "sign1..." string.
func ParseSignature(s string) (Signature, error) {
	payload, err := decodeBech32m(signatureKind, SignatureHRP, s)
	if err != nil {
		return Signature{}, err
	}
	return SignatureFromBytes(payload)
}

// String returns the bech32m "sign1..." form.
func (sig Signature) String() string {
	s, err := encodeBech32m(SignatureHRP, sig.Bytes())
	if err != nil {
		panic(err)
	}
	return s
}

func (sig Signature) Equal(o Signature) bool {
	return sig.challenge.Equal(o.challenge) && sig.response.Equal(o.response) && sig.ck.Equal(o.ck)
}
