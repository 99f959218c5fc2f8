package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/suffix-labs/aleo-account/internal/primitives"
	"github.com/suffix-labs/aleo-account/pkg/account"
)

// LiteralType is the type suffix of a literal.
type LiteralType uint8

const (
	TypeAddress LiteralType = iota
	TypeBoolean
	TypeField
	TypeGroup
	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeI128
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeU128
	TypeScalar
	TypeString
)

var literalTypeNames = [...]string{
	TypeAddress: "address",
	TypeBoolean: "boolean",
	TypeField:   "field",
	TypeGroup:   "group",
	TypeI8:      "i8",
	TypeI16:     "i16",
	TypeI32:     "i32",
	TypeI64:     "i64",
	TypeI128:    "i128",
	TypeU8:      "u8",
	TypeU16:     "u16",
	TypeU32:     "u32",
	TypeU64:     "u64",
	TypeU128:    "u128",
	TypeScalar:  "scalar",
	TypeString:  "string",
}

// MaxStringSize bounds string literals.
const MaxStringSize = 255

func (t LiteralType) String() string {
	if int(t) < len(literalTypeNames) {
		return literalTypeNames[t]
	}
	return fmt.Sprintf("LiteralType(%d)", uint8(t))
}

// IsInteger reports whether t is one of i8..i128, u8..u128.
func (t LiteralType) IsInteger() bool {
	return t >= TypeI8 && t <= TypeU128
}

func (t LiteralType) isSigned() bool {
	return t >= TypeI8 && t <= TypeI128
}

// bits returns the width of an integer type.
func (t LiteralType) bits() uint {
	switch t {
	case TypeI8, TypeU8:
		return 8
	case TypeI16, TypeU16:
		return 16
	case TypeI32, TypeU32:
		return 32
	case TypeI64, TypeU64:
		return 64
	case TypeI128, TypeU128:
		return 128
	}
	return 0
}

// numericSuffixes lists the suffixes that follow a decimal number, longest
// first so that "u128" is not read as "u1" + "28".
var numericSuffixes = []LiteralType{
	TypeScalar, TypeField, TypeGroup,
	TypeI128, TypeU128, TypeI16, TypeU16, TypeI32, TypeU32, TypeI64, TypeU64, TypeI8, TypeU8,
}

// Literal is a typed constant.
type Literal struct {
	typ LiteralType

	address  account.Address
	boolean  bool
	field    primitives.Field
	group    primitives.Group
	scalar   primitives.Scalar
	integer  uint256.Int // magnitude
	negative bool
	str      string
}

// NewAddressLiteral wraps an address.
func NewAddressLiteral(a account.Address) Literal {
	return Literal{typ: TypeAddress, address: a}
}

// NewBooleanLiteral wraps a boolean.
func NewBooleanLiteral(b bool) Literal {
	return Literal{typ: TypeBoolean, boolean: b}
}

// NewU64Literal wraps a u64.
func NewU64Literal(v uint64) Literal {
	l := Literal{typ: TypeU64}
	l.integer.SetUint64(v)
	return l
}

// NewIntegerLiteral builds an integer literal of type t from v.
func NewIntegerLiteral(t LiteralType, v int64) (Literal, error) {
	if !t.IsInteger() {
		return Literal{}, fmt.Errorf("%s is not an integer type", t)
	}
	s := strconv.FormatInt(v, 10)
	return parseInteger(t, s)
}

// NewStringLiteral wraps s.
func NewStringLiteral(s string) (Literal, error) {
	if len(s) > MaxStringSize {
		return Literal{}, fmt.Errorf("string longer than %d bytes", MaxStringSize)
	}
	return Literal{typ: TypeString, str: s}, nil
}

// ParseLiteral parses the text form of a literal, e.g. "99u64", "-3i8",
// "0group", "true", "aleo1...", or a double-quoted string.
func ParseLiteral(s string) (Literal, error) {
	switch {
	case s == "true" || s == "false":
		return NewBooleanLiteral(s == "true"), nil

	case strings.HasPrefix(s, account.AddressHRP+"1"):
		a, err := account.ParseAddress(s)
		if err != nil {
			return Literal{}, err
		}
		return NewAddressLiteral(a), nil

	case strings.HasPrefix(s, `"`):
		str, n, err := unquote(s)
		if err != nil {
			return Literal{}, err
		}
		if n != len(s) {
			return Literal{}, fmt.Errorf("trailing characters after string literal")
		}
		return NewStringLiteral(str)
	}

	for _, t := range numericSuffixes {
		digits, ok := strings.CutSuffix(s, t.String())
		if !ok {
			continue
		}
		switch t {
		case TypeField:
			f, err := primitives.ParseField(digits)
			if err != nil {
				return Literal{}, fmt.Errorf("invalid field literal: %w", err)
			}
			return Literal{typ: TypeField, field: f}, nil

		case TypeScalar:
			sc, err := primitives.ParseScalar(digits)
			if err != nil {
				return Literal{}, fmt.Errorf("invalid scalar literal: %w", err)
			}
			return Literal{typ: TypeScalar, scalar: sc}, nil

		case TypeGroup:
			g, err := primitives.ParseGroup(digits)
			if err != nil {
				return Literal{}, fmt.Errorf("invalid group literal: %w", err)
			}
			return Literal{typ: TypeGroup, group: g}, nil

		default:
			return parseInteger(t, digits)
		}
	}
	return Literal{}, fmt.Errorf("unrecognized literal %q", s)
}

// parseInteger parses an optionally negative decimal and range-checks it
// against the width of t.
func parseInteger(t LiteralType, s string) (Literal, error) {
	negative := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	if digits == "" || len(digits) > 80 {
		return Literal{}, fmt.Errorf("invalid %s literal %q", t, s)
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return Literal{}, fmt.Errorf("invalid %s literal %q", t, s)
		}
	}
	if negative && !t.isSigned() {
		return Literal{}, fmt.Errorf("%s cannot be negative", t)
	}

	mag, err := uint256.FromDecimal(digits)
	if err != nil {
		return Literal{}, fmt.Errorf("invalid %s literal %q: %w", t, s, err)
	}

	bits := t.bits()
	if t.isSigned() {
		// [-2^(bits-1), 2^(bits-1) - 1]
		limit := new(uint256.Int).Lsh(uint256.NewInt(1), bits-1)
		if (negative && mag.Gt(limit)) || (!negative && !mag.Lt(limit)) {
			return Literal{}, fmt.Errorf("%s out of range for %s", s, t)
		}
	} else if uint(mag.BitLen()) > bits {
		return Literal{}, fmt.Errorf("%s out of range for %s", s, t)
	}

	l := Literal{typ: t, integer: *mag, negative: negative && !mag.IsZero()}
	return l, nil
}

// Type returns the literal type.
func (l Literal) Type() LiteralType {
	return l.typ
}

// Uint64 returns the value of a u64 literal.
func (l Literal) Uint64() (uint64, bool) {
	if l.typ != TypeU64 {
		return 0, false
	}
	return l.integer.Uint64(), true
}

// Address returns the value of an address literal.
func (l Literal) Address() (account.Address, bool) {
	return l.address, l.typ == TypeAddress
}

// String returns the canonical text form.
func (l Literal) String() string {
	switch l.typ {
	case TypeAddress:
		return l.address.String()
	case TypeBoolean:
		return strconv.FormatBool(l.boolean)
	case TypeField:
		return l.field.String() + "field"
	case TypeGroup:
		return l.group.String() + "group"
	case TypeScalar:
		return l.scalar.String() + "scalar"
	case TypeString:
		return quote(l.str)
	}

	sign := ""
	if l.negative {
		sign = "-"
	}
	return sign + l.integer.Dec() + l.typ.String()
}

// bitsLE returns the commitment encoding of the literal:
// [type as u8 || value bit length as u16 || value bits].
func (l Literal) bitsLE() []bool {
	var value []bool
	switch l.typ {
	case TypeAddress:
		value = l.address.X().BitsLE()
	case TypeBoolean:
		value = []bool{l.boolean}
	case TypeField:
		value = l.field.BitsLE()
	case TypeGroup:
		value = l.group.X().BitsLE()
	case TypeScalar:
		value = l.scalar.BitsLE()
	case TypeString:
		value = primitives.AppendBytesBits(nil, []byte(l.str))
	default:
		// Two's complement at the type width.
		v := l.integer
		if l.negative {
			v.Neg(&v)
		}
		value = primitives.AppendBigBits(nil, v.ToBig(), int(l.typ.bits()))
	}

	out := make([]bool, 0, 8+16+len(value))
	out = primitives.AppendUintBits(out, uint64(l.typ), 8)
	out = primitives.AppendUintBits(out, uint64(len(value)), 16)
	return append(out, value...)
}

// quote renders s with '"' and '\' escaped.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// unquote reads a quoted string at the start of s and returns its value and
// the number of bytes consumed.
func unquote(s string) (string, int, error) {
	if len(s) == 0 || s[0] != '"' {
		return "", 0, fmt.Errorf("expected '\"'")
	}

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			return b.String(), i + 1, nil
		case c == '\\':
			if i+1 >= len(s) || (s[i+1] != '"' && s[i+1] != '\\') {
				return "", 0, fmt.Errorf("invalid escape in string literal")
			}
			i++
			b.WriteByte(s[i])
		case c < 0x20 || c == 0x7f:
			return "", 0, fmt.Errorf("control character in string literal")
		default:
			b.WriteByte(c)
		}
		if b.Len() > MaxStringSize {
			return "", 0, fmt.Errorf("string longer than %d bytes", MaxStringSize)
		}
	}
	return "", 0, fmt.Errorf("unterminated string literal")
}
