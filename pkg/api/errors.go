package api

import "fmt"

// Error codes carried by Error.
const (
	CodeInvalidInput     = "INVALID_INPUT"      // A key, address, signature or name did not parse
	CodeInvalidRecord    = "INVALID_RECORD"     // Record text did not parse or lacks a balance
	CodeNotOwnedRecord   = "NOT_OWNED_RECORD"   // Record has no commitment under the given program
	CodeEncryptionFailed = "ENCRYPTION_FAILED"  // Private key could not be encrypted
	CodeDecryptionFailed = "DECRYPTION_FAILED"  // Ciphertext is malformed, tampered or the secret is wrong
	CodeDerivationFailed = "DERIVATION_FAILED"  // Serial number derivation failed
	CodeRandomness       = "RANDOMNESS_FAILURE" // The random source failed
)

// Messages for key protection failures.
const (
	MsgEncryptionFailed = "Encryption failed"
	MsgDecryptionFailed = "Decryption failed"
)

// Error is returned by every function in this package.
type Error struct {
	Code    string // One of the Code* constants
	Message string // Human-readable error message
	Cause   error  // Underlying error (if any)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Message, e.Code, e.Cause)
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code, msg string, cause error) error {
	log.Debugf("API error [%s]: %s", code, msg)
	return &Error{Code: code, Message: msg, Cause: cause}
}
