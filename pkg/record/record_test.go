package record

import (
	"errors"
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/aleo-account/pkg/account"
)

const (
	ownerAddress = "aleo1d5hg2z3ma00382pngntdp68e74zv54jdxy249qhaujhks9c72yrs33ddah"

	compactRecord = "{ owner: " + ownerAddress + ".private, gates: 99u64.public, _nonce: 0group.public }"

	prettyRecord = "{\n  owner: " + ownerAddress + ".private,\n  gates: 99u64.public,\n  _nonce: 0group.public\n}"

	// head opens a record with the mandatory owner and gates fields.
	head = "{ owner: " + ownerAddress + ".private, gates: 99u64.public"
)

func mustParse(t *testing.T, text string) *RecordPlaintext {
	t.Helper()
	r, err := Parse(text)
	require.NoError(t, err)
	return r
}

func TestParseFormatsPretty(t *testing.T) {
	r := mustParse(t, compactRecord)
	assert.Equal(t, prettyRecord, r.String())

	again := mustParse(t, r.String())
	assert.True(t, r.Equal(again))
	assert.Equal(t, prettyRecord, again.String())
}

func TestParseAccessors(t *testing.T) {
	r := mustParse(t, compactRecord)

	assert.Equal(t, ownerAddress, r.Owner().Address.String())
	assert.Equal(t, Private, r.Owner().Visibility)
	assert.True(t, r.HasNonce())
	assert.Empty(t, r.Entries())
	assert.Equal(t, Gates{Amount: 99, Visibility: Public}, r.Gates())

	gates, err := r.Balance()
	require.NoError(t, err)
	assert.Equal(t, uint64(99), gates)
}

func TestFormatIsIdempotentWithNesting(t *testing.T) {
	text := `{owner:` + ownerAddress + `.public,gates:5u64.private,` +
		`memo:{ tag: 7u8.private, note: "hi, there. \"quoted\"".public, inner: { z: -3i128.constant } },` +
		`flag: true.constant, point: 0group.private, amount: 12field.public, k: 4scalar.private,` +
		`_nonce:0group.public}`

	r := mustParse(t, text)
	formatted := r.String()
	assert.Contains(t, formatted, "\n  memo: {\n    tag: 7u8.private,\n")
	assert.Contains(t, formatted, "\n    inner: {\n      z: -3i128.constant\n    }\n  },\n")

	again := mustParse(t, formatted)
	assert.Equal(t, formatted, again.String())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not a record", "string"},
		{"empty", ""},
		{"bad hrp separator", strings.Replace(compactRecord, "aleo1d5hg2", "aleo2d5hg2", 1)},
		{"bad checksum", strings.Replace(compactRecord, "33ddah", "33ddag", 1)},
		{"owner not first", "{ gates: 99u64.public, owner: " + ownerAddress + ".private }"},
		{"owner not address", "{ owner: 5u64.private, gates: 99u64.public }"},
		{"owner constant", "{ owner: " + ownerAddress + ".constant, gates: 99u64.public }"},
		{"nonce not last", head + ", _nonce: 0group.public, a: 1u8.public }"},
		{"nonce private", head + ", _nonce: 0group.private }"},
		{"nonce not group", head + ", _nonce: 0field.public }"},
		{"duplicate entry", head + ", a: 1u64.public, a: 2u64.public }"},
		{"duplicate gates", head + ", gates: 2u64.public }"},
		{"second owner", head + ", owner: " + ownerAddress + ".private }"},
		{"missing visibility", "{ owner: " + ownerAddress + ".private, gates: 99u64 }"},
		{"unknown visibility", "{ owner: " + ownerAddress + ".private, gates: 99u64.secret }"},
		{"out of range", head + ", b: 256u8.public }"},
		{"empty struct", head + ", s: { } }"},
		{"underscore name", head + ", _x: 1u8.public }"},
		{"trailing comma", head + ", }"},
		{"unterminated", head},
		{"trailing garbage", compactRecord + " x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)

			var perr *ParseError
			assert.True(t, errors.As(err, &perr), "expected ParseError, got %T", err)
		})
	}
}

func TestParseRejectsBadChecksumWithKeyError(t *testing.T) {
	_, err := Parse(strings.Replace(compactRecord, "33ddah", "33ddag", 1))
	require.Error(t, err)

	var kerr *account.KeyError
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, account.CodeInvalidChecksum, kerr.Code)
}

func TestParseNestingLimit(t *testing.T) {
	open := strings.Repeat("s: { ", MaxDepth-1)
	closing := strings.Repeat(" }", MaxDepth-1)

	ok := head + ", " + open + "v: 1u8.public" + closing + " }"
	mustParse(t, ok)

	deep := head + ", " + open + "s: { v: 1u8.public }" + closing + " }"
	_, err := Parse(deep)
	assert.Error(t, err)
}

func TestParseNeverPanics(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 500; i++ {
		var s string
		f.Fuzz(&s)
		assert.NotPanics(t, func() { _, _ = Parse(s) })
		assert.NotPanics(t, func() { _, _ = Parse(compactRecord[:i%len(compactRecord)] + s) })
	}
}

func TestParseRequiresGatesAfterOwner(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		target error
	}{
		{"missing", "{ owner: " + ownerAddress + ".private, _nonce: 0group.public }", ErrMissingBalance},
		{"owner only", "{ owner: " + ownerAddress + ".private }", ErrMissingBalance},
		{"after data", "{ owner: " + ownerAddress + ".private, a: 1u8.public, gates: 99u64.public }", ErrMissingBalance},
		{"u32", "{ owner: " + ownerAddress + ".private, gates: 99u32.public }", ErrBalanceNotNumeric},
		{"field", "{ owner: " + ownerAddress + ".private, gates: 99field.public }", ErrBalanceNotNumeric},
		{"struct", "{ owner: " + ownerAddress + ".private, gates: { v: 99u64.public } }", ErrBalanceNotNumeric},
		{"constant", "{ owner: " + ownerAddress + ".private, gates: 99u64.constant }", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.text)
			require.Error(t, err)
			assert.Nil(t, r)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected ParseError, got %T", err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}

	_, err := (&RecordPlaintext{}).Balance()
	assert.ErrorIs(t, err, ErrMissingBalance)
}

func TestNewMatchesParse(t *testing.T) {
	addr, err := account.ParseAddress(ownerAddress)
	require.NoError(t, err)

	r, err := New(Owner{Address: addr, Visibility: Private}, Gates{Amount: 99, Visibility: Public})
	require.NoError(t, err)
	assert.False(t, r.HasNonce())

	gates, err := r.Balance()
	require.NoError(t, err)
	assert.Equal(t, uint64(99), gates)

	r, err = r.WithNonce("0")
	require.NoError(t, err)
	assert.Equal(t, prettyRecord, r.String())
	assert.True(t, r.Equal(mustParse(t, compactRecord)))
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	addr, err := account.ParseAddress(ownerAddress)
	require.NoError(t, err)
	owner := Owner{Address: addr, Visibility: Public}
	gates := Gates{Amount: 1, Visibility: Private}
	lit := LiteralValue{Literal: NewBooleanLiteral(true), Visibility: Public}

	_, err = New(Owner{Address: addr, Visibility: Constant}, gates)
	assert.Error(t, err)

	_, err = New(owner, Gates{Amount: 1, Visibility: Constant})
	assert.Error(t, err)

	_, err = New(owner, gates, Entry{Name: "a", Value: lit}, Entry{Name: "a", Value: lit})
	assert.Error(t, err)

	_, err = New(owner, gates, Entry{Name: OwnerName, Value: lit})
	assert.Error(t, err)

	_, err = New(owner, gates, Entry{Name: BalanceName, Value: lit})
	assert.Error(t, err)

	_, err = New(owner, gates, Entry{Name: "9a", Value: lit})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = New(owner, gates, Entry{Name: "s", Value: StructValue{}})
	assert.Error(t, err)

	_, err = New(owner, gates, Entry{Name: "nil"})
	assert.Error(t, err)

	r, err := New(owner, gates)
	require.NoError(t, err)
	_, err = r.WithNonce("0x1")
	assert.Error(t, err)
}
