package account

import "github.com/suffix-labs/aleo-account/internal/primitives"

const viewKeyKind = "view key"

// viewKeyPrefix makes the base58 form start with "AViewKey1".
var viewKeyPrefix = []byte{14, 138, 223, 204, 247, 224, 122}

// ViewKey grants visibility into an account's records without spending
// authority.
type ViewKey struct {
	s primitives.Scalar
}

// ParseViewKey decodes an "AViewKey1..." string.
func ParseViewKey(s string) (ViewKey, error) {
	payload, err := decodeBase58(viewKeyKind, s, viewKeyPrefix, primitives.EncodedSize)
	if err != nil {
		return ViewKey{}, err
	}

	scalar, err := primitives.ScalarFromBytesLE(payload)
	if err != nil {
		return ViewKey{}, keyErr(viewKeyKind, CodeNonCanonical, "payload is not a scalar", err)
	}
	return ViewKey{s: scalar}, nil
}

// String returns the base58 "AViewKey1..." form.
func (vk ViewKey) String() string {
	b := vk.s.BytesLE()
	return encodeBase58(viewKeyPrefix, b[:])
}

// Address returns view_key*G.
func (vk ViewKey) Address() Address {
	return Address{g: primitives.Generator().Mul(vk.s)}
}

func (vk ViewKey) Equal(o ViewKey) bool {
	return vk.s.Equal(o.s)
}
