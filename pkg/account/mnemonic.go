package account

import (
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// Mnemonic returns the 24-word BIP-39 encoding of the private key seed.
// The seed is used directly as the 256-bit entropy, so PrivateKeyFromMnemonic
// restores exactly this key.
func (pk PrivateKey) Mnemonic() (string, error) {
	seed := pk.Seed()
	defer zeroBytes(seed[:])
	return bip39.NewMnemonic(seed[:])
}

// PrivateKeyFromMnemonic restores a private key from its 24-word backup.
func PrivateKeyFromMnemonic(mnemonic string) (PrivateKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return PrivateKey{}, keyErr(privateKeyKind, CodeInvalidMnemonic, "invalid words or checksum", nil)
	}

	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return PrivateKey{}, keyErr(privateKeyKind, CodeInvalidMnemonic, "invalid words or checksum", err)
	}
	defer zeroBytes(entropy)

	if len(entropy) != SeedSize {
		return PrivateKey{}, keyErr(privateKeyKind, CodeInvalidMnemonic, "mnemonic must have 24 words", nil)
	}
	return PrivateKeyFromSeed(entropy)
}
