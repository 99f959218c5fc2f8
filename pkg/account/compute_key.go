package account

import "github.com/suffix-labs/aleo-account/internal/primitives"

// ComputeKey is the public half of the signature key pair together with the
// PRF secret derived from it. Signatures carry it so that a verifier can
// rebuild the signer's address.
type ComputeKey struct {
	pkSig primitives.Group
	prSig primitives.Group
	skPrf primitives.Scalar
}

func newComputeKey(pkSig, prSig primitives.Group) ComputeKey {
	return ComputeKey{
		pkSig: pkSig,
		prSig: prSig,
		skPrf: primitives.Poseidon4().HashToScalar(pkSig.X(), prSig.X()),
	}
}

// Address returns pk_sig + pr_sig + sk_prf*G.
func (ck ComputeKey) Address() Address {
	g := primitives.Generator()
	return Address{g: ck.pkSig.Add(ck.prSig).Add(g.Mul(ck.skPrf))}
}

func (ck ComputeKey) Equal(o ComputeKey) bool {
	return ck.pkSig.Equal(o.pkSig) && ck.prSig.Equal(o.prSig)
}
