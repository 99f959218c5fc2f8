package account

import (
	"errors"
	"fmt"
)

// Error codes carried by KeyError.
const (
	CodeInvalidPrefix   = "INVALID_PREFIX"      // Human-readable prefix or hrp does not match the key kind
	CodeInvalidLength   = "INVALID_LENGTH"      // Decoded payload has the wrong size
	CodeInvalidChecksum = "INVALID_CHECKSUM"    // bech32m checksum mismatch
	CodeInvalidEncoding = "INVALID_ENCODING"    // Not base58 / bech32m at all
	CodeNonCanonical    = "NON_CANONICAL"       // Payload integer is not reduced
	CodeNotOnCurve      = "NOT_ON_CURVE"        // Address or public component is not a subgroup point
	CodeInvalidSeed     = "INVALID_SEED_LENGTH" // Seed is not exactly 32 bytes
	CodeInvalidMnemonic = "INVALID_MNEMONIC"    // Mnemonic words or checksum are invalid
)

// KeyError is returned when a key, address or signature string or byte
// encoding cannot be decoded.
type KeyError struct {
	Kind    string // "private key", "view key", "address", ...
	Code    string // One of the Code* constants
	Message string // Human-readable error message
	Cause   error  // Underlying error (if any)
}

func (e *KeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s [%s]: %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid %s [%s]: %s", e.Kind, e.Code, e.Message)
}

func (e *KeyError) Unwrap() error {
	return e.Cause
}

// CiphertextError is returned when a PrivateKeyCiphertext cannot be parsed.
type CiphertextError struct {
	Message string // Human-readable error message
	Cause   error  // Underlying error (if any)
}

func (e *CiphertextError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ciphertext error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ciphertext error: %s", e.Message)
}

func (e *CiphertextError) Unwrap() error {
	return e.Cause
}

var (
	// ErrDecryptionFailed is returned when a ciphertext does not
	// authenticate under the given secret. A wrong secret and a tampered
	// blob are indistinguishable.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKDFParams is returned when KDF parameters are outside the
	// accepted bounds.
	ErrInvalidKDFParams = errors.New("invalid key derivation parameters")
)

func keyErr(kind, code, msg string, cause error) error {
	return &KeyError{Kind: kind, Code: code, Message: msg, Cause: cause}
}
