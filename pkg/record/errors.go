package record

import (
	"errors"
	"fmt"
)

// Error codes carried by RecordError.
const (
	CodeInvalidProgramID  = "INVALID_PROGRAM_ID" // Program ID is not "<name>.aleo"
	CodeInvalidIdentifier = "INVALID_IDENTIFIER" // Record name or entry name is not an identifier
	CodeInvalidEntry      = "INVALID_ENTRY"      // Entry set violates record structure rules
	CodeNotOwnedRecord    = "NOT_OWNED_RECORD"   // Record cannot be committed to (no nonce)
)

var (
	// ErrNotOwnedRecord is returned when a record lacks the structure of a
	// spendable record, e.g. it was built without a nonce.
	ErrNotOwnedRecord = errors.New("record is not an owned record")

	// ErrMissingBalance is returned when gates does not directly follow
	// owner. Parse wraps it in a ParseError.
	ErrMissingBalance = errors.New("record has no gates entry")

	// ErrBalanceNotNumeric is wrapped in a ParseError when gates is not a
	// u64 literal.
	ErrBalanceNotNumeric = errors.New("gates entry is not a u64 literal")

	ErrInvalidProgramID  = errors.New("invalid program id")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// ParseError is returned when record text does not match the grammar.
type ParseError struct {
	Offset  int    // Byte offset into the input
	Message string // Human-readable error message
	Cause   error  // Underlying error (if any)
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("record parse error at offset %d: %s: %v", e.Offset, e.Message, e.Cause)
	}
	return fmt.Sprintf("record parse error at offset %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// RecordError is returned when a well-formed record cannot be used for the
// requested operation.
type RecordError struct {
	Code    string // One of the Code* constants
	Message string // Human-readable error message
	Cause   error  // Sentinel or underlying error
}

func (e *RecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("record error [%s]: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("record error [%s]: %s", e.Code, e.Message)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}
