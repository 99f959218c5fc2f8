// Package api provides the string-level public API for account and record
// operations.
//
// This is the main entry point for hosts (wallets, signing services, the
// aleo-account CLI) that exchange keys and records as text. Every function
// takes and returns canonical strings:
//
//  1. NewPrivateKey / PrivateKeyFromSeed / PrivateKeyFromMnemonic - Key creation
//  2. ViewKey / Address - Key derivation
//  3. NewEncryptedPrivateKey / EncryptPrivateKey / PrivateKeyFromCiphertext - Key protection
//  4. SignMessage / VerifyMessage - Message signatures
//  5. FormatRecord / RecordGates / RecordCommitment - Record inspection
//  6. SerialNumberString - Spend detection
//
// Randomness is drawn from crypto/rand.
package api

import (
	"crypto/rand"
	"errors"

	"github.com/suffix-labs/aleo-account/pkg/account"
	"github.com/suffix-labs/aleo-account/pkg/record"
	"github.com/suffix-labs/aleo-account/pkg/serial"
)

// ============================================================================
// API Function 1: Key creation
// ============================================================================

// NewPrivateKey samples a fresh private key.
func NewPrivateKey() (string, error) {
	pk, err := account.NewPrivateKey(rand.Reader)
	if err != nil {
		return "", newError(CodeRandomness, "failed to sample private key", err)
	}
	return pk.String(), nil
}

// PrivateKeyFromSeed derives a private key from a 32-byte seed.
func PrivateKeyFromSeed(seed []byte) (string, error) {
	pk, err := account.PrivateKeyFromSeed(seed)
	if err != nil {
		return "", newError(CodeInvalidInput, "invalid seed", err)
	}
	return pk.String(), nil
}

// PrivateKeyFromMnemonic restores a private key from its 24-word backup.
func PrivateKeyFromMnemonic(mnemonic string) (string, error) {
	pk, err := account.PrivateKeyFromMnemonic(mnemonic)
	if err != nil {
		return "", newError(CodeInvalidInput, "invalid mnemonic", err)
	}
	return pk.String(), nil
}

// Mnemonic returns the 24-word backup of a private key.
func Mnemonic(privateKey string) (string, error) {
	pk, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	words, err := pk.Mnemonic()
	if err != nil {
		return "", newError(CodeInvalidInput, "failed to encode mnemonic", err)
	}
	return words, nil
}

// ============================================================================
// API Function 2: Key derivation
// ============================================================================

// ViewKey derives the view key of a private key.
func ViewKey(privateKey string) (string, error) {
	pk, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return pk.ViewKey().String(), nil
}

// Address derives the address of a private key.
func Address(privateKey string) (string, error) {
	pk, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return pk.Address().String(), nil
}

// AddressFromViewKey derives the address of a view key.
func AddressFromViewKey(viewKey string) (string, error) {
	vk, err := account.ParseViewKey(viewKey)
	if err != nil {
		return "", newError(CodeInvalidInput, "invalid view key", err)
	}
	return vk.Address().String(), nil
}

// ============================================================================
// API Function 3: Key protection
// ============================================================================

// NewEncryptedPrivateKey samples a private key and returns it together with
// its ciphertext under secret.
func NewEncryptedPrivateKey(secret string, params account.KDFParams) (privateKey, ciphertext string, err error) {
	pk, err := account.NewPrivateKey(rand.Reader)
	if err != nil {
		return "", "", newError(CodeRandomness, "failed to sample private key", err)
	}
	ct, err := encrypt(pk, secret, params)
	if err != nil {
		return "", "", err
	}
	return pk.String(), ct, nil
}

// EncryptPrivateKey encrypts an existing private key under secret.
func EncryptPrivateKey(privateKey, secret string, params account.KDFParams) (string, error) {
	pk, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return encrypt(pk, secret, params)
}

func encrypt(pk account.PrivateKey, secret string, params account.KDFParams) (string, error) {
	enc, err := account.NewEncryptor(params, rand.Reader)
	if err != nil {
		return "", newError(CodeEncryptionFailed, MsgEncryptionFailed, err)
	}
	ct, err := enc.Encrypt(pk, secret)
	if err != nil {
		return "", newError(CodeEncryptionFailed, MsgEncryptionFailed, err)
	}
	return ct.String(), nil
}

// PrivateKeyFromCiphertext decrypts a ciphertext string produced by
// NewEncryptedPrivateKey or EncryptPrivateKey. A malformed ciphertext, a
// wrong secret and a tampered blob all return a CodeDecryptionFailed error.
func PrivateKeyFromCiphertext(ciphertext, secret string) (string, error) {
	ct, err := account.ParsePrivateKeyCiphertext(ciphertext)
	if err != nil {
		return "", newError(CodeDecryptionFailed, MsgDecryptionFailed, err)
	}
	pk, err := ct.Decrypt(secret)
	if err != nil {
		return "", newError(CodeDecryptionFailed, MsgDecryptionFailed, err)
	}
	return pk.String(), nil
}

// ============================================================================
// API Function 4: Message signatures
// ============================================================================

// SignMessage signs message and returns the signature string.
func SignMessage(privateKey string, message []byte) (string, error) {
	pk, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	sig, err := pk.Sign(message, rand.Reader)
	if err != nil {
		return "", newError(CodeRandomness, "failed to sign message", err)
	}
	return sig.String(), nil
}

// VerifyMessage reports whether signature is valid for message under
// address. Only unparsable inputs are errors; a mismatch is false.
func VerifyMessage(address string, message []byte, signature string) (bool, error) {
	addr, err := account.ParseAddress(address)
	if err != nil {
		return false, newError(CodeInvalidInput, "invalid address", err)
	}
	sig, err := account.ParseSignature(signature)
	if err != nil {
		return false, newError(CodeInvalidInput, "invalid signature", err)
	}
	ok := sig.Verify(addr, message)
	log.Debugf("Signature verification for %s: %v", address, ok)
	return ok, nil
}

// ============================================================================
// API Function 5: Record inspection
// ============================================================================

// FormatRecord parses record text and returns its canonical pretty form.
func FormatRecord(text string) (string, error) {
	r, err := parseRecord(text)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

// RecordGates returns the gates balance of a record.
func RecordGates(text string) (uint64, error) {
	r, err := parseRecord(text)
	if err != nil {
		return 0, err
	}
	gates, err := r.Balance()
	if err != nil {
		return 0, newError(CodeInvalidRecord, "record has no gates field", err)
	}
	return gates, nil
}

// RecordCommitment returns the commitment of a record under programID and
// recordName.
func RecordCommitment(text, programID, recordName string) (string, error) {
	r, err := parseRecord(text)
	if err != nil {
		return "", err
	}
	c, err := r.Commitment(programID, recordName)
	if err != nil {
		return "", commitmentError(err)
	}
	return c.String(), nil
}

// ============================================================================
// API Function 6: Spend detection
// ============================================================================

// SerialNumberString derives the serial number of a record owned by
// privateKey. Each step fails fast: the record, the key, the commitment and
// the derivation are checked in that order.
func SerialNumberString(text, privateKey, programID, recordName string) (string, error) {
	r, err := parseRecord(text)
	if err != nil {
		return "", err
	}
	pk, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}

	sn, err := serial.Of(pk, r, programID, recordName)
	if err != nil {
		var derr *serial.DerivationError
		if errors.As(err, &derr) && derr.Stage == serial.StageCommitment {
			return "", commitmentError(derr.Cause)
		}
		return "", newError(CodeDerivationFailed, "failed to derive serial number", err)
	}
	return sn.String(), nil
}

// ============================================================================
// Helper Functions
// ============================================================================

func parsePrivateKey(s string) (account.PrivateKey, error) {
	pk, err := account.ParsePrivateKey(s)
	if err != nil {
		return account.PrivateKey{}, newError(CodeInvalidInput, "invalid private key", err)
	}
	return pk, nil
}

func parseRecord(text string) (*record.RecordPlaintext, error) {
	r, err := record.Parse(text)
	if err != nil {
		return nil, newError(CodeInvalidRecord, "invalid record", err)
	}
	return r, nil
}

// commitmentError separates "not this kind of record" from malformed
// program or record names.
func commitmentError(err error) error {
	if errors.Is(err, record.ErrNotOwnedRecord) {
		return newError(CodeNotOwnedRecord, "record is not an owned record", err)
	}
	return newError(CodeInvalidInput, "invalid program id or record name", err)
}
