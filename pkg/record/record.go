// Package record implements the plaintext record model: its text grammar,
// canonical formatting, balance extraction and commitment.
//
// Text form:
//
//	{
//	  owner: aleo1....private,
//	  gates: 99u64.public,
//	  memo: {
//	    tag: 7u8.private
//	  },
//	  _nonce: 0group.public
//	}
//
// Parse accepts any whitespace between tokens, so the single-line form and
// the pretty form above are equivalent. String always emits the pretty form
// with a two-space indent per level.
package record

import (
	"fmt"
	"strings"

	"github.com/suffix-labs/aleo-account/internal/primitives"
	"github.com/suffix-labs/aleo-account/pkg/account"
)

const (
	// OwnerName and NonceName are reserved entry names.
	OwnerName = "owner"
	NonceName = "_nonce"

	// BalanceName is the reserved entry holding the record's balance. It
	// always follows owner.
	BalanceName = "gates"

	// MaxEntries bounds the entries of one struct level.
	MaxEntries = 32

	// MaxDepth bounds struct nesting.
	MaxDepth = 32
)

// Owner is the record owner and the visibility of the owner field.
type Owner struct {
	Address    account.Address
	Visibility Visibility
}

// Gates is the record balance and the visibility of the gates field.
type Gates struct {
	Amount     uint64
	Visibility Visibility
}

// Value is a LiteralValue or a StructValue.
type Value interface {
	isValue()
}

// LiteralValue is a leaf: a literal with its visibility.
type LiteralValue struct {
	Literal    Literal
	Visibility Visibility
}

// StructValue is a nested set of named entries.
type StructValue struct {
	Members []Entry
}

func (LiteralValue) isValue() {}
func (StructValue) isValue()  {}

// Entry is a named record field.
type Entry struct {
	Name  string
	Value Value
}

// RecordPlaintext is a decrypted record.
type RecordPlaintext struct {
	owner   Owner
	gates   *Gates
	entries []Entry
	nonce   *primitives.Group
}

// New builds a record without a nonce. Entry names must be identifiers,
// unique per level and not reserved.
func New(owner Owner, gates Gates, entries ...Entry) (*RecordPlaintext, error) {
	if owner.Visibility == Constant {
		return nil, &RecordError{Code: CodeInvalidEntry, Message: "owner cannot be constant"}
	}
	if gates.Visibility == Constant {
		return nil, &RecordError{Code: CodeInvalidEntry, Message: "gates cannot be constant"}
	}
	if err := validateEntries(entries, 1); err != nil {
		return nil, err
	}
	return &RecordPlaintext{
		owner:   owner,
		gates:   &gates,
		entries: append([]Entry(nil), entries...),
	}, nil
}

// WithNonce returns a copy of r bound to the nonce group element, given as
// the decimal x-coordinate (the text of a group literal without suffix).
func (r *RecordPlaintext) WithNonce(nonce string) (*RecordPlaintext, error) {
	g, err := primitives.ParseGroup(nonce)
	if err != nil {
		return nil, &RecordError{Code: CodeInvalidEntry, Message: "invalid nonce", Cause: err}
	}
	out := *r
	out.nonce = &g
	return &out, nil
}

func validateEntries(entries []Entry, depth int) error {
	if depth > MaxDepth {
		return &RecordError{Code: CodeInvalidEntry, Message: "struct nesting too deep"}
	}
	if len(entries) > MaxEntries {
		return &RecordError{Code: CodeInvalidEntry, Message: fmt.Sprintf("more than %d entries", MaxEntries)}
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, err := ParseIdentifier(e.Name); err != nil {
			return err
		}
		if depth == 1 && (e.Name == OwnerName || e.Name == BalanceName) {
			return &RecordError{Code: CodeInvalidEntry, Message: "entry name " + e.Name + " is reserved"}
		}
		if _, dup := seen[e.Name]; dup {
			return &RecordError{Code: CodeInvalidEntry, Message: "duplicate entry " + e.Name}
		}
		seen[e.Name] = struct{}{}

		switch v := e.Value.(type) {
		case LiteralValue:
		case StructValue:
			if len(v.Members) == 0 {
				return &RecordError{Code: CodeInvalidEntry, Message: "empty struct " + e.Name}
			}
			if err := validateEntries(v.Members, depth+1); err != nil {
				return err
			}
		default:
			return &RecordError{Code: CodeInvalidEntry, Message: "entry " + e.Name + " has no value"}
		}
	}
	return nil
}

// Owner returns the record owner.
func (r *RecordPlaintext) Owner() Owner {
	return r.owner
}

// Gates returns the balance field. It is the zero value for a record that
// was not built by Parse or New.
func (r *RecordPlaintext) Gates() Gates {
	if r.gates == nil {
		return Gates{}
	}
	return *r.gates
}

// Entries returns the data entries in order, excluding owner, gates and
// nonce.
func (r *RecordPlaintext) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Entry returns the top-level entry with the given name.
func (r *RecordPlaintext) Entry(name string) (Value, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// HasNonce reports whether the record is bound to a nonce.
func (r *RecordPlaintext) HasNonce() bool {
	return r.nonce != nil
}

// Balance returns the u64 value of the gates field.
func (r *RecordPlaintext) Balance() (uint64, error) {
	if r.gates == nil {
		return 0, ErrMissingBalance
	}
	return r.gates.Amount, nil
}

// String returns the canonical pretty form.
func (r *RecordPlaintext) String() string {
	var b strings.Builder
	b.WriteString("{\n")

	fmt.Fprintf(&b, "  %s: %s.%s", OwnerName, r.owner.Address, r.owner.Visibility)
	if r.gates != nil {
		fmt.Fprintf(&b, ",\n  %s: %du64.%s", BalanceName, r.gates.Amount, r.gates.Visibility)
	}
	for _, e := range r.entries {
		b.WriteString(",\n")
		writeEntry(&b, e, 1)
	}
	if r.nonce != nil {
		fmt.Fprintf(&b, ",\n  %s: %sgroup.%s", NonceName, r.nonce, Public)
	}

	b.WriteString("\n}")
	return b.String()
}

func writeEntry(b *strings.Builder, e Entry, depth int) {
	indent := strings.Repeat("  ", depth)

	switch v := e.Value.(type) {
	case LiteralValue:
		fmt.Fprintf(b, "%s%s: %s.%s", indent, e.Name, v.Literal, v.Visibility)
	case StructValue:
		fmt.Fprintf(b, "%s%s: {\n", indent, e.Name)
		for i, m := range v.Members {
			if i > 0 {
				b.WriteString(",\n")
			}
			writeEntry(b, m, depth+1)
		}
		fmt.Fprintf(b, "\n%s}", indent)
	}
}

// Equal compares canonical forms.
func (r *RecordPlaintext) Equal(o *RecordPlaintext) bool {
	return r.String() == o.String()
}
