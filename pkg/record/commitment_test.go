package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitmentDeterministic(t *testing.T) {
	r := mustParse(t, compactRecord)

	c1, err := r.Commitment("token.aleo", "token")
	require.NoError(t, err)
	c2, err := mustParse(t, prettyRecord).Commitment("token.aleo", "token")
	require.NoError(t, err)
	assert.True(t, c1.Equal(c2))
	assert.Regexp(t, "^[0-9]+field$", c1.String())

	parsed, err := ParseCommitment(c1.String())
	require.NoError(t, err)
	assert.True(t, c1.Equal(parsed))
}

func TestCommitmentVector(t *testing.T) {
	c, err := mustParse(t, compactRecord).Commitment("token.aleo", "token")
	require.NoError(t, err)
	assert.Equal(t, "948840444910317072416179442237106541523080418250628280529533253499506434489field", c.String())
}

func TestCommitmentBindsEntries(t *testing.T) {
	commit := func(text string) Commitment {
		t.Helper()
		c, err := mustParse(t, text).Commitment("token.aleo", "token")
		require.NoError(t, err)
		return c
	}
	const tail = ", _nonce: 0group.public }"

	texts := []string{
		compactRecord,
		"{ owner: " + ownerAddress + ".private, gates: 99u64.private" + tail,
		head + ", a: 1u8.public" + tail,
		head + ", a: 1u8.private" + tail,
		head + ", a: 1u8.constant" + tail,
		head + ", a: 1u16.public" + tail,
		head + ", b: 1u8.public" + tail,
		head + ", a: -1i8.public" + tail,
		head + ", a: 255u8.public" + tail,
		head + ", a: { b: 1u8.public }" + tail,
		head + ", a: 1u8.public, b: 1u8.public" + tail,
		head + `, a: "1".public` + tail,
		head + ", a: 1field.public" + tail,
		head + ", a: 1scalar.public" + tail,
		head + ", a: true.public" + tail,
	}
	seen := make(map[string]string, len(texts))
	for _, text := range texts {
		c := commit(text)
		prev, dup := seen[c.String()]
		assert.False(t, dup, "%s collides with %s", text, prev)
		seen[c.String()] = text
	}

	// -1i8 and 255u8 share a bit pattern but not a type tag.
	neg, err := ParseLiteral("-1i8")
	require.NoError(t, err)
	top, err := ParseLiteral("255u8")
	require.NoError(t, err)
	assert.Equal(t, neg.bitsLE()[24:], top.bitsLE()[24:])
}

func TestCommitmentBindsContext(t *testing.T) {
	r := mustParse(t, compactRecord)
	base, err := r.Commitment("token.aleo", "token")
	require.NoError(t, err)

	other, err := r.Commitment("credits.aleo", "token")
	require.NoError(t, err)
	assert.False(t, base.Equal(other))

	other, err = r.Commitment("token.aleo", "credits")
	require.NoError(t, err)
	assert.False(t, base.Equal(other))

	changed := mustParse(t, "{ owner: "+ownerAddress+".private, gates: 98u64.public, _nonce: 0group.public }")
	other, err = changed.Commitment("token.aleo", "token")
	require.NoError(t, err)
	assert.False(t, base.Equal(other))

	public := mustParse(t, "{ owner: "+ownerAddress+".public, gates: 99u64.public, _nonce: 0group.public }")
	other, err = public.Commitment("token.aleo", "token")
	require.NoError(t, err)
	assert.False(t, base.Equal(other))
}

func TestCommitmentErrors(t *testing.T) {
	r := mustParse(t, compactRecord)

	tests := []struct {
		name    string
		record  *RecordPlaintext
		program string
		ident   string
		code    string
		target  error
	}{
		{"program without network", r, "token", "token", CodeInvalidProgramID, ErrInvalidProgramID},
		{"program wrong network", r, "token.eth", "token", CodeInvalidProgramID, ErrInvalidProgramID},
		{"program name contains network", r, "aleotoken.aleo", "token", CodeInvalidProgramID, ErrInvalidProgramID},
		{"program bad name", r, "1token.aleo", "token", CodeInvalidProgramID, ErrInvalidProgramID},
		{"bad record name", r, "token.aleo", "to-ken", CodeInvalidIdentifier, ErrInvalidIdentifier},
		{"empty record name", r, "token.aleo", "", CodeInvalidIdentifier, ErrInvalidIdentifier},
		{
			"no nonce",
			mustParse(t, "{ owner: "+ownerAddress+".private, gates: 99u64.public }"),
			"token.aleo", "token", CodeNotOwnedRecord, ErrNotOwnedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.record.Commitment(tt.program, tt.ident)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var rerr *RecordError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.code, rerr.Code)
		})
	}
}

func TestParseCommitmentRejects(t *testing.T) {
	for _, s := range []string{"", "12", "field", "-1field", "12group"} {
		_, err := ParseCommitment(s)
		assert.Error(t, err, s)
	}
}

func TestLiteralRanges(t *testing.T) {
	tests := []struct {
		text  string
		valid bool
		canon string
	}{
		{"127i8", true, "127i8"},
		{"128i8", false, ""},
		{"-128i8", true, "-128i8"},
		{"-129i8", false, ""},
		{"-0i8", true, "0i8"},
		{"255u8", true, "255u8"},
		{"256u8", false, ""},
		{"-1u8", false, ""},
		{"007u16", true, "7u16"},
		{"18446744073709551615u64", true, "18446744073709551615u64"},
		{"18446744073709551616u64", false, ""},
		{"340282366920938463463374607431768211455u128", true, "340282366920938463463374607431768211455u128"},
		{"340282366920938463463374607431768211456u128", false, ""},
		{"-170141183460469231731687303715884105728i128", true, "-170141183460469231731687303715884105728i128"},
		{"170141183460469231731687303715884105728i128", false, ""},
		{"u64", false, ""},
		{"1.5u64", false, ""},
		{"true", true, "true"},
		{"True", false, ""},
		{`"a\\b"`, true, `"a\\b"`},
		{`"a\nb"`, false, ""},
		{`"open`, false, ""},
		{"5", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			l, err := ParseLiteral(tt.text)
			if !tt.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.canon, l.String())
		})
	}
}

func TestNewIntegerLiteral(t *testing.T) {
	l, err := NewIntegerLiteral(TypeI16, -300)
	require.NoError(t, err)
	assert.Equal(t, "-300i16", l.String())

	_, err = NewIntegerLiteral(TypeI8, -300)
	assert.Error(t, err)

	_, err = NewIntegerLiteral(TypeField, 1)
	assert.Error(t, err)

	v, ok := NewU64Literal(42).Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(42), v)

	_, ok = l.Uint64()
	assert.False(t, ok)
}
