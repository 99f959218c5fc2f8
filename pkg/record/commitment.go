package record

import (
	"fmt"
	"math"
	"strings"

	"github.com/suffix-labs/aleo-account/internal/primitives"
)

// Commitment binds a record to a program and record name.
type Commitment struct {
	f primitives.Field
}

// ParseCommitment parses "<decimal>field".
func ParseCommitment(s string) (Commitment, error) {
	digits, ok := strings.CutSuffix(s, "field")
	if !ok {
		return Commitment{}, fmt.Errorf("commitment %q lacks field suffix", s)
	}
	f, err := primitives.ParseField(digits)
	if err != nil {
		return Commitment{}, fmt.Errorf("invalid commitment: %w", err)
	}
	return Commitment{f: f}, nil
}

// Field returns the commitment as a field element.
func (c Commitment) Field() primitives.Field {
	return c.f
}

func (c Commitment) String() string {
	return c.f.String() + "field"
}

func (c Commitment) Equal(o Commitment) bool {
	return c.f.Equal(o.f)
}

// Commitment computes the record commitment under programID and recordName:
// the BHP1024 hash of [program id || record name || record], where the
// record bits are
//
//	owner visibility || owner x || gates visibility || gates as u64 ||
//	data bit length as u32 || data || nonce x
//
// Each visibility is one bit, set when private. It fails with
// ErrNotOwnedRecord when the record has no nonce, and with
// ErrInvalidProgramID or ErrInvalidIdentifier when the names do not parse.
func (r *RecordPlaintext) Commitment(programID, recordName string) (Commitment, error) {
	pid, err := ParseProgramID(programID)
	if err != nil {
		return Commitment{}, err
	}
	name, err := ParseIdentifier(recordName)
	if err != nil {
		return Commitment{}, err
	}

	if r.nonce == nil {
		return Commitment{}, &RecordError{
			Code:    CodeNotOwnedRecord,
			Message: "record has no nonce",
			Cause:   ErrNotOwnedRecord,
		}
	}
	gates := r.Gates()

	var data []bool
	for _, e := range r.entries {
		data = appendEntry(data, e)
	}
	if uint64(len(data)) > math.MaxUint32 {
		return Commitment{}, &RecordError{Code: CodeInvalidEntry, Message: "record data too large"}
	}

	bits := append(pid.bitsLE(), name.bitsLE()...)
	bits = append(bits, r.owner.Visibility == Private)
	bits = append(bits, r.owner.Address.X().BitsLE()...)
	bits = append(bits, gates.Visibility == Private)
	bits = primitives.AppendUintBits(bits, gates.Amount, 64)
	bits = primitives.AppendUintBits(bits, uint64(len(data)), 32)
	bits = append(bits, data...)
	bits = append(bits, r.nonce.X().BitsLE()...)

	f, err := primitives.BHP1024().Hash(bits)
	if err != nil {
		return Commitment{}, err
	}
	log.Tracef("Computed commitment for %s/%s", pid, name)
	return Commitment{f: f}, nil
}

// appendEntry encodes e as [name length as u8 || name || value]. A literal
// value is [false || visibility || literal], with constant 00, public 01 and
// private 10. A struct is [true || member count as u8 || members].
func appendEntry(dst []bool, e Entry) []bool {
	dst = primitives.AppendUintBits(dst, uint64(len(e.Name)), 8)
	dst = append(dst, Identifier{name: e.Name}.bitsLE()...)

	switch v := e.Value.(type) {
	case LiteralValue:
		dst = append(dst, false, v.Visibility == Private, v.Visibility == Public)
		dst = append(dst, v.Literal.bitsLE()...)
	case StructValue:
		dst = append(dst, true)
		dst = primitives.AppendUintBits(dst, uint64(len(v.Members)), 8)
		for _, m := range v.Members {
			dst = appendEntry(dst, m)
		}
	}
	return dst
}
