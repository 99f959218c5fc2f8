package account

import (
	"bytes"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	rng := testRNG(10)
	f := fuzz.New().NilChance(0).NumElements(0, 256)

	for i := 0; i < iterations; i++ {
		pk, err := NewPrivateKey(rng)
		require.NoError(t, err)

		var message []byte
		f.Fuzz(&message)

		sig, err := pk.Sign(message, rng)
		require.NoError(t, err)
		assert.True(t, sig.Verify(pk.Address(), message))
		assert.True(t, pk.Address().Verify(message, sig))
	}
}

func TestVerifyRejectsMutatedMessage(t *testing.T) {
	rng := testRNG(11)
	pk, err := NewPrivateKey(rng)
	require.NoError(t, err)

	message := []byte("transfer 99 gates to aleo1...")
	sig, err := pk.Sign(message, rng)
	require.NoError(t, err)

	for i := range message {
		mutated := bytes.Clone(message)
		mutated[i] ^= 0x01
		assert.False(t, sig.Verify(pk.Address(), mutated), "byte %d", i)
	}

	assert.False(t, sig.Verify(pk.Address(), message[:len(message)-1]))
	assert.False(t, sig.Verify(pk.Address(), append(bytes.Clone(message), 0)))
	assert.False(t, sig.Verify(pk.Address(), nil))
}

func TestVerifyRejectsWrongAddress(t *testing.T) {
	rng := testRNG(12)
	alice, err := NewPrivateKey(rng)
	require.NoError(t, err)
	bob, err := NewPrivateKey(rng)
	require.NoError(t, err)

	message := []byte("hello")
	sig, err := alice.Sign(message, rng)
	require.NoError(t, err)

	assert.False(t, sig.Verify(bob.Address(), message))
}

func TestSignatureIsRandomized(t *testing.T) {
	rng := testRNG(13)
	pk, err := NewPrivateKey(rng)
	require.NoError(t, err)

	a, err := pk.Sign([]byte("m"), rng)
	require.NoError(t, err)
	b, err := pk.Sign([]byte("m"), rng)
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
	assert.True(t, a.Verify(pk.Address(), []byte("m")))
	assert.True(t, b.Verify(pk.Address(), []byte("m")))
}

func TestSignatureStringRoundTrip(t *testing.T) {
	rng := testRNG(14)
	pk, err := NewPrivateKey(rng)
	require.NoError(t, err)

	message := []byte("round trip")
	sig, err := pk.Sign(message, rng)
	require.NoError(t, err)

	s := sig.String()
	assert.Regexp(t, "^sign1", s)

	parsed, err := ParseSignature(s)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(sig))
	assert.True(t, parsed.Verify(pk.Address(), message))
	assert.True(t, parsed.ComputeKey().Address().Equal(pk.Address()))
}

func TestSignatureTamperedBytes(t *testing.T) {
	rng := testRNG(15)
	pk, err := NewPrivateKey(rng)
	require.NoError(t, err)

	message := []byte("tamper")
	sig, err := pk.Sign(message, rng)
	require.NoError(t, err)

	raw := sig.Bytes()
	for _, offset := range []int{0, 32, 64, 96} {
		mutated := bytes.Clone(raw)
		mutated[offset] ^= 0x01

		// Either the encoding no longer decodes, or it no longer verifies.
		parsed, err := SignatureFromBytes(mutated)
		if err == nil {
			assert.False(t, parsed.Verify(pk.Address(), message), "offset %d", offset)
		}
	}

	_, err = SignatureFromBytes(raw[:SignatureSize-1])
	assert.Error(t, err)
}

func TestZeroSignatureNeverVerifies(t *testing.T) {
	pk, err := NewPrivateKey(testRNG(16))
	require.NoError(t, err)

	var sig Signature
	assert.False(t, sig.Verify(pk.Address(), []byte("anything")))
}
