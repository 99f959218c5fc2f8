package record

import (
	"fmt"
	"strings"

	"github.com/suffix-labs/aleo-account/internal/primitives"
)

// MaxIdentifierSize is the longest identifier that still fits in one field
// element.
const MaxIdentifierSize = primitives.EncodedSize - 1

// Network is the only accepted program network suffix.
const Network = "aleo"

// Identifier is a program, record or entry name.
type Identifier struct {
	name string
}

// ParseIdentifier validates s: an ASCII letter followed by letters, digits or
// underscores, at most MaxIdentifierSize bytes.
func ParseIdentifier(s string) (Identifier, error) {
	if err := checkIdentifier(s); err != nil {
		return Identifier{}, &RecordError{
			Code:    CodeInvalidIdentifier,
			Message: fmt.Sprintf("%q: %v", s, err),
			Cause:   ErrInvalidIdentifier,
		}
	}
	return Identifier{name: s}, nil
}

func checkIdentifier(s string) error {
	if s == "" {
		return fmt.Errorf("empty")
	}
	if len(s) > MaxIdentifierSize {
		return fmt.Errorf("longer than %d bytes", MaxIdentifierSize)
	}
	if !isLetter(s[0]) {
		return fmt.Errorf("must start with a letter")
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return fmt.Errorf("invalid character %q", s[i])
		}
	}
	return nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func (id Identifier) String() string {
	return id.name
}

// bitsLE returns the identifier bytes, least significant bit first.
func (id Identifier) bitsLE() []bool {
	return primitives.AppendBytesBits(nil, []byte(id.name))
}

// ProgramID names a program: "<name>.aleo".
type ProgramID struct {
	name    Identifier
	network Identifier
}

// ParseProgramID parses "<name>.aleo".
func ParseProgramID(s string) (ProgramID, error) {
	invalid := func(msg string) error {
		return &RecordError{
			Code:    CodeInvalidProgramID,
			Message: fmt.Sprintf("%q: %s", s, msg),
			Cause:   ErrInvalidProgramID,
		}
	}

	name, network, ok := strings.Cut(s, ".")
	if !ok {
		return ProgramID{}, invalid("missing network suffix")
	}
	if network != Network {
		return ProgramID{}, invalid("network must be " + Network)
	}
	if err := checkIdentifier(name); err != nil {
		return ProgramID{}, invalid(err.Error())
	}
	if strings.Contains(name, Network) {
		return ProgramID{}, invalid("name must not contain " + Network)
	}

	return ProgramID{name: Identifier{name: name}, network: Identifier{name: network}}, nil
}

func (p ProgramID) bitsLE() []bool {
	return append(p.name.bitsLE(), p.network.bitsLE()...)
}

func (p ProgramID) Name() Identifier {
	return p.name
}

func (p ProgramID) String() string {
	return p.name.name + "." + p.network.name
}
