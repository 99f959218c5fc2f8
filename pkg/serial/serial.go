// Package serial derives record serial numbers. A serial number is a
// deterministic function of the owner's private key and the record
// commitment; publishing it marks the record spent without revealing which
// commitment it belongs to.
package serial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/suffix-labs/aleo-account/internal/primitives"
	"github.com/suffix-labs/aleo-account/pkg/account"
	"github.com/suffix-labs/aleo-account/pkg/record"
)

const serialNumberDomain = "AleoSerialNumber0"

// Derivation stages reported by DerivationError.
const (
	StageCommitment = "commitment"
	StageSerial     = "serial number"
)

// DerivationError is returned by Of when either stage fails.
type DerivationError struct {
	Stage string // StageCommitment or StageSerial
	Cause error  // Underlying error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("serial number derivation failed at %s stage: %v", e.Stage, e.Cause)
}

func (e *DerivationError) Unwrap() error {
	return e.Cause
}

// SerialNumber is the spend tag of a record.
type SerialNumber struct {
	f primitives.Field
}

// ParseSerialNumber parses "<decimal>field".
func ParseSerialNumber(s string) (SerialNumber, error) {
	digits, ok := strings.CutSuffix(s, "field")
	if !ok {
		return SerialNumber{}, fmt.Errorf("serial number %q lacks field suffix", s)
	}
	f, err := primitives.ParseField(digits)
	if err != nil {
		return SerialNumber{}, fmt.Errorf("invalid serial number: %w", err)
	}
	return SerialNumber{f: f}, nil
}

func (sn SerialNumber) String() string {
	return sn.f.String() + "field"
}

func (sn SerialNumber) Equal(o SerialNumber) bool {
	return sn.f.Equal(o.f)
}

// Derive computes the serial number of commitment c for key:
//
//	h        = H2.HashToGroup(domain, c)
//	gamma    = sk_sig * h
//	sn_nonce = H2.HashToScalar(domain, (4 * gamma).x)
//	sn       = BHP512.Commit(domain || c, sn_nonce)
func Derive(key account.PrivateKey, c record.Commitment) (SerialNumber, error) {
	domain := primitives.DomainField(serialNumberDomain)
	psd := primitives.Poseidon2()

	h, err := psd.HashToGroup(domain, c.Field())
	if err != nil {
		return SerialNumber{}, fmt.Errorf("hash commitment to group: %w", err)
	}
	gamma := h.Mul(key.SignatureSecret())
	if gamma.IsIdentity() {
		return SerialNumber{}, errors.New("degenerate serial number generator")
	}

	snNonce := psd.HashToScalar(domain, gamma.ClearCofactor().X())
	sn, err := primitives.BHP512().Commit(append(domain.BitsLE(), c.Field().BitsLE()...), snNonce)
	if err != nil {
		return SerialNumber{}, fmt.Errorf("commit serial number: %w", err)
	}

	return SerialNumber{f: sn}, nil
}

// Of computes the commitment of rec under (programID, recordName) and then
// its serial number for key.
func Of(key account.PrivateKey, rec *record.RecordPlaintext, programID, recordName string) (SerialNumber, error) {
	c, err := rec.Commitment(programID, recordName)
	if err != nil {
		return SerialNumber{}, &DerivationError{Stage: StageCommitment, Cause: err}
	}

	sn, err := Derive(key, c)
	if err != nil {
		return SerialNumber{}, &DerivationError{Stage: StageSerial, Cause: err}
	}

	log.Debugf("Derived serial number for %s/%s record", programID, recordName)
	return sn, nil
}
