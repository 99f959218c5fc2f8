package account

import (
	"bytes"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcutil/base58"
)

// encodeBase58 encodes prefix || payload.
func encodeBase58(prefix, payload []byte) string {
	buf := make([]byte, 0, len(prefix)+len(payload))
	buf = append(buf, prefix...)
	buf = append(buf, payload...)
	return base58.Encode(buf)
}

// decodeBase58 decodes s and strips the expected binary prefix.
//
// The binary prefix is chosen so that the base58 text of every payload
// starts with a fixed human-readable string (e.g. "APrivateKey1").
func decodeBase58(kind, s string, prefix []byte, payloadLen int) ([]byte, error) {
	if s == "" {
		return nil, keyErr(kind, CodeInvalidEncoding, "empty string", nil)
	}

	// base58.Decode returns an empty slice on any invalid character.
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return nil, keyErr(kind, CodeInvalidEncoding, "not a base58 string", nil)
	}
	if len(decoded) != len(prefix)+payloadLen {
		return nil, keyErr(kind, CodeInvalidLength, "unexpected payload length", nil)
	}
	if !bytes.Equal(decoded[:len(prefix)], prefix) {
		return nil, keyErr(kind, CodeInvalidPrefix, "unexpected prefix", nil)
	}
	return decoded[len(prefix):], nil
}

// encodeBech32m encodes payload as a bech32m string. There is no length
// limit; signatures and ciphertexts exceed the 90 characters of BIP-173.
func encodeBech32m(hrp string, payload []byte) (string, error) {
	conv, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(hrp, conv)
}

// decodeBech32m decodes s, checks the hrp and requires the bech32m checksum
// constant.
func decodeBech32m(kind, hrp, s string) ([]byte, error) {
	gotHRP, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		var checksumErr bech32.ErrInvalidChecksum
		if errors.As(err, &checksumErr) {
			return nil, keyErr(kind, CodeInvalidChecksum, "checksum mismatch", err)
		}
		return nil, keyErr(kind, CodeInvalidEncoding, "not a bech32m string", err)
	}
	if gotHRP != hrp {
		return nil, keyErr(kind, CodeInvalidPrefix, "expected prefix "+hrp+"1", nil)
	}

	// DecodeNoLimit accepts either checksum constant. Re-encoding with the
	// bech32m constant must reproduce the input.
	reencoded, err := bech32.EncodeM(gotHRP, data)
	if err != nil || reencoded != strings.ToLower(s) {
		return nil, keyErr(kind, CodeInvalidChecksum, "not a bech32m checksum", err)
	}

	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, keyErr(kind, CodeInvalidEncoding, "invalid padding", err)
	}
	return payload, nil
}
