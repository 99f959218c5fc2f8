package account

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKDFParams keeps argon2id cheap in tests.
var testKDFParams = KDFParams{Time: 1, MemoryKiB: 64, Threads: 1}

func newTestEncryptor(t *testing.T, seed int64) *Encryptor {
	t.Helper()
	enc, err := NewEncryptor(testKDFParams, testRNG(seed))
	require.NoError(t, err)
	return enc
}

// checkRoundTrip encodes c both ways and decodes it back.
func checkRoundTrip(t *testing.T, c PrivateKeyCiphertext) {
	t.Helper()

	fromBytes, err := PrivateKeyCiphertextFromBytes(c.Bytes())
	require.NoError(t, err)
	assert.True(t, fromBytes.Equal(c))

	fromString, err := ParsePrivateKeyCiphertext(c.String())
	require.NoError(t, err)
	assert.True(t, fromString.Equal(c))
	assert.Equal(t, c.String(), fromString.String())
}

func TestEncryptDecrypt(t *testing.T) {
	enc := newTestEncryptor(t, 20)

	pk, err := NewPrivateKey(testRNG(21))
	require.NoError(t, err)

	c, err := enc.Encrypt(pk, "mypassword")
	require.NoError(t, err)
	checkRoundTrip(t, c)

	recovered, err := c.Decrypt("mypassword")
	require.NoError(t, err)
	assert.True(t, recovered.Equal(pk))

	parsed, err := ParsePrivateKeyCiphertext(c.String())
	require.NoError(t, err)
	recovered, err = Decrypt(parsed, "mypassword")
	require.NoError(t, err)
	assert.True(t, recovered.Equal(pk))
}

func TestDecryptWrongSecret(t *testing.T) {
	enc := newTestEncryptor(t, 22)
	f := fuzz.New().NilChance(0)

	pk, err := NewPrivateKey(testRNG(23))
	require.NoError(t, err)

	c, err := enc.Encrypt(pk, "correct horse")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		var secret string
		f.Fuzz(&secret)
		if secret == "correct horse" {
			continue
		}
		_, err := c.Decrypt(secret)
		require.ErrorIs(t, err, ErrDecryptionFailed)
	}

	_, err = c.Decrypt("")
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestEncryptIsRandomized(t *testing.T) {
	enc := newTestEncryptor(t, 24)

	pk, err := NewPrivateKey(testRNG(25))
	require.NoError(t, err)

	a, err := enc.Encrypt(pk, "pw")
	require.NoError(t, err)
	b, err := enc.Encrypt(pk, "pw")
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.String(), b.String())
}

func TestDecryptDetectsTampering(t *testing.T) {
	enc := newTestEncryptor(t, 26)

	pk, err := NewPrivateKey(testRNG(27))
	require.NoError(t, err)

	c, err := enc.Encrypt(pk, "pw")
	require.NoError(t, err)
	raw := c.Bytes()

	// Flip one bit in each region after the KDF parameters: salt, nonce,
	// ciphertext and tag.
	for _, offset := range []int{20, 40, len(raw) - 40, len(raw) - 1} {
		mutated := bytes.Clone(raw)
		mutated[offset] ^= 0x01

		parsed, err := PrivateKeyCiphertextFromBytes(mutated)
		require.NoError(t, err, "offset %d", offset)

		_, err = parsed.Decrypt("pw")
		require.ErrorIs(t, err, ErrDecryptionFailed, "offset %d", offset)
	}
}

func TestCiphertextRejectsMalformed(t *testing.T) {
	enc := newTestEncryptor(t, 28)

	pk, err := NewPrivateKey(testRNG(29))
	require.NoError(t, err)
	c, err := enc.Encrypt(pk, "pw")
	require.NoError(t, err)
	raw := c.Bytes()

	badMagic := bytes.Clone(raw)
	badMagic[0] = 'X'

	badVersion := bytes.Clone(raw)
	binary.LittleEndian.PutUint16(badVersion[4:6], 9)

	hugeMemory := bytes.Clone(raw)
	binary.LittleEndian.PutUint32(hugeMemory[11:15], 1<<31)

	// 512 MiB and t=9 sit just past the accepted bounds.
	halfGiB := bytes.Clone(raw)
	binary.LittleEndian.PutUint32(halfGiB[11:15], 512*1024)

	slowKDF := bytes.Clone(raw)
	binary.LittleEndian.PutUint32(slowKDF[7:11], 9)

	cases := map[string][]byte{
		"empty":       nil,
		"magic only":  []byte(CiphertextMagic),
		"bad magic":   badMagic,
		"bad version": badVersion,
		"huge memory": hugeMemory,
		"512 MiB":     halfGiB,
		"time 9":      slowKDF,
		"truncated":   raw[:len(raw)-1],
		"trailing":    append(bytes.Clone(raw), 0),
	}
	for name, data := range cases {
		_, err := PrivateKeyCiphertextFromBytes(data)
		require.Error(t, err, name)

		var ctErr *CiphertextError
		assert.True(t, errors.As(err, &ctErr), name)
	}

	_, err = ParsePrivateKeyCiphertext(pk.Address().String())
	assert.Error(t, err)
}

func TestKDFParamsValidate(t *testing.T) {
	require.NoError(t, DefaultKDFParams().Validate())
	require.NoError(t, testKDFParams.Validate())
	require.NoError(t, KDFParams{Time: 8, MemoryKiB: 256 * 1024, Threads: 16}.Validate())

	for _, p := range []KDFParams{
		{Time: 0, MemoryKiB: 64, Threads: 1},
		{Time: 1, MemoryKiB: 64, Threads: 0},
		{Time: 1, MemoryKiB: 4, Threads: 1},
		{Time: 1, MemoryKiB: 64, Threads: 16 + 1},
		{Time: 9, MemoryKiB: 64, Threads: 1},
		{Time: 1, MemoryKiB: 256*1024 + 1, Threads: 1},
		{Time: 1, MemoryKiB: 512 * 1024, Threads: 1},
	} {
		assert.ErrorIs(t, p.Validate(), ErrInvalidKDFParams, "%+v", p)

		_, err := NewEncryptor(p, testRNG(1))
		assert.Error(t, err)
	}
}
