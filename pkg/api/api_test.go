package api

import (
	"bytes"
	"errors"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/aleo-account/pkg/account"
)

const (
	vectorKey     = "APrivateKey1zkpDeRpuKmEtLNPdv57aFruPepeH1aGvTkEjBo8bqTzNUhE"
	vectorAddress = "aleo1d5hg2z3ma00382pngntdp68e74zv54jdxy249qhaujhks9c72yrs33ddah"
	vectorRecord  = "{ owner: " + vectorAddress + ".private, gates: 99u64.public, _nonce: 0group.public }"
)

var fastKDF = account.KDFParams{Time: 1, MemoryKiB: 64, Threads: 1}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr), "expected *Error, got %T", err)
	assert.Equal(t, code, apiErr.Code)
}

func TestKeyDerivationPathsAgree(t *testing.T) {
	pk, err := NewPrivateKey()
	require.NoError(t, err)

	vk, err := ViewKey(pk)
	require.NoError(t, err)
	fromPK, err := Address(pk)
	require.NoError(t, err)
	fromVK, err := AddressFromViewKey(vk)
	require.NoError(t, err)
	assert.Equal(t, fromPK, fromVK)
}

func TestPrivateKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, account.SeedSize)
	a, err := PrivateKeyFromSeed(seed)
	require.NoError(t, err)
	b, err := PrivateKeyFromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = PrivateKeyFromSeed(seed[:31])
	requireCode(t, err, CodeInvalidInput)
}

func TestMnemonicRoundTrip(t *testing.T) {
	words, err := Mnemonic(vectorKey)
	require.NoError(t, err)

	pk, err := PrivateKeyFromMnemonic(words)
	require.NoError(t, err)
	assert.Equal(t, vectorKey, pk)

	_, err = PrivateKeyFromMnemonic("abandon abandon")
	requireCode(t, err, CodeInvalidInput)
}

func TestEncryptedPrivateKey(t *testing.T) {
	pk, ct, err := NewEncryptedPrivateKey("mypassword", fastKDF)
	require.NoError(t, err)

	decrypted, err := PrivateKeyFromCiphertext(ct, "mypassword")
	require.NoError(t, err)
	assert.Equal(t, pk, decrypted)

	_, err = PrivateKeyFromCiphertext(ct, "wrong")
	requireCode(t, err, CodeDecryptionFailed)
	assert.Contains(t, err.Error(), MsgDecryptionFailed)
	assert.ErrorIs(t, err, account.ErrDecryptionFailed)

	_, err = PrivateKeyFromCiphertext("ciphertext1qqqq", "mypassword")
	requireCode(t, err, CodeDecryptionFailed)
}

func TestEncryptPrivateKey(t *testing.T) {
	ct, err := EncryptPrivateKey(vectorKey, "secret", fastKDF)
	require.NoError(t, err)

	pk, err := PrivateKeyFromCiphertext(ct, "secret")
	require.NoError(t, err)
	assert.Equal(t, vectorKey, pk)

	_, err = EncryptPrivateKey(vectorKey, "secret", account.KDFParams{})
	requireCode(t, err, CodeEncryptionFailed)
	assert.Contains(t, err.Error(), MsgEncryptionFailed)

	_, err = EncryptPrivateKey("APrivateKey1", "secret", fastKDF)
	requireCode(t, err, CodeInvalidInput)
}

func TestSignVerifyMessage(t *testing.T) {
	addr, err := Address(vectorKey)
	require.NoError(t, err)

	f := fuzz.New().NilChance(0).NumElements(1, 128)
	for i := 0; i < 10; i++ {
		var message []byte
		f.Fuzz(&message)

		sig, err := SignMessage(vectorKey, message)
		require.NoError(t, err)

		ok, err := VerifyMessage(addr, message, sig)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = VerifyMessage(addr, append(message, 0), sig)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	_, err = VerifyMessage("aleo1", []byte("m"), "sign1")
	requireCode(t, err, CodeInvalidInput)
}

func TestRecordFacade(t *testing.T) {
	formatted, err := FormatRecord(vectorRecord)
	require.NoError(t, err)
	assert.Equal(t, "{\n  owner: "+vectorAddress+".private,\n  gates: 99u64.public,\n  _nonce: 0group.public\n}", formatted)

	gates, err := RecordGates(vectorRecord)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), gates)

	_, err = FormatRecord("string")
	requireCode(t, err, CodeInvalidRecord)

	_, err = RecordGates("{ owner: " + vectorAddress + ".private }")
	requireCode(t, err, CodeInvalidRecord)

	_, err = RecordGates("{ owner: " + vectorAddress + ".private, gates: 99u32.public }")
	requireCode(t, err, CodeInvalidRecord)

	c, err := RecordCommitment(vectorRecord, "token.aleo", "token")
	require.NoError(t, err)
	assert.Equal(t, "948840444910317072416179442237106541523080418250628280529533253499506434489field", c)
}

func TestSerialNumberString(t *testing.T) {
	first, err := SerialNumberString(vectorRecord, vectorKey, "token.aleo", "token")
	require.NoError(t, err)
	assert.Equal(t, "4564977995400415519058823909143155627601970323571971278914520967771079582104field", first)

	for i := 0; i < 5; i++ {
		again, err := SerialNumberString(vectorRecord, vectorKey, "token.aleo", "token")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSerialNumberStringErrors(t *testing.T) {
	_, err := SerialNumberString("string", vectorKey, "token.aleo", "token")
	requireCode(t, err, CodeInvalidRecord)

	_, err = SerialNumberString(vectorRecord, "APrivateKey1", "token.aleo", "token")
	requireCode(t, err, CodeInvalidInput)

	_, err = SerialNumberString(vectorRecord, vectorKey, "token", "token")
	requireCode(t, err, CodeInvalidInput)

	_, err = SerialNumberString(vectorRecord, vectorKey, "token.aleo", "1token")
	requireCode(t, err, CodeInvalidInput)

	unbound := "{ owner: " + vectorAddress + ".private, gates: 99u64.public }"
	_, err = SerialNumberString(unbound, vectorKey, "token.aleo", "token")
	requireCode(t, err, CodeNotOwnedRecord)
}
