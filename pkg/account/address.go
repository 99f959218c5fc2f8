package account

import "github.com/suffix-labs/aleo-account/internal/primitives"

const addressKind = "address"

// AddressHRP is the bech32m human-readable part of addresses.
const AddressHRP = "aleo"

// Address is the public identifier of an account.
type Address struct {
	g primitives.Group
}

// ParseAddress decodes an "aleo1..." string. The decoded x-coordinate must
// belong to a point of the prime-order subgroup.
func ParseAddress(s string) (Address, error) {
	payload, err := decodeBech32m(addressKind, AddressHRP, s)
	if err != nil {
		return Address{}, err
	}
	return addressFromBytes(payload)
}

// AddressFromBytes decodes a 32-byte little-endian x-coordinate.
func AddressFromBytes(b []byte) (Address, error) {
	return addressFromBytes(b)
}

func addressFromBytes(b []byte) (Address, error) {
	if len(b) != primitives.EncodedSize {
		return Address{}, keyErr(addressKind, CodeInvalidLength, "unexpected payload length", nil)
	}
	g, err := primitives.GroupFromBytesLE(b)
	if err != nil {
		return Address{}, keyErr(addressKind, CodeNotOnCurve, "payload is not a subgroup point", err)
	}
	return Address{g: g}, nil
}

// String returns the bech32m "aleo1..." form.
func (a Address) String() string {
	b := a.g.BytesLE()
	s, err := encodeBech32m(AddressHRP, b[:])
	if err != nil {
		// 32 bytes always convert to valid 5-bit groups.
		panic(err)
	}
	return s
}

// Bytes returns the 32-byte little-endian x-coordinate.
func (a Address) Bytes() [primitives.EncodedSize]byte {
	return a.g.BytesLE()
}

// X returns the x-coordinate as a field element.
func (a Address) X() primitives.Field {
	return a.g.X()
}

// Group returns the address point.
func (a Address) Group() primitives.Group {
	return a.g
}

func (a Address) Equal(o Address) bool {
	return a.g.Equal(o.g)
}

// Verify reports whether sig is a signature by this address over message.
func (a Address) Verify(message []byte, sig Signature) bool {
	return sig.Verify(a, message)
}
