package account

import (
	"crypto/cipher"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/suffix-labs/aleo-account/internal/primitives"
)

// KDFParams are the argon2id cost parameters.
type KDFParams struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
}

// DefaultKDFParams returns t=3, 64 MiB, 4 lanes.
func DefaultKDFParams() KDFParams {
	return KDFParams{Time: 3, MemoryKiB: 64 * 1024, Threads: 4}
}

// Validate checks the parameters against the bounds accepted on parse.
func (p KDFParams) Validate() error {
	switch {
	case p.Time == 0 || p.Time > maxKDFTime:
		return fmt.Errorf("%w: time %d not in [1, %d]", ErrInvalidKDFParams, p.Time, maxKDFTime)
	case p.Threads == 0 || p.Threads > maxThreads:
		return fmt.Errorf("%w: threads %d not in [1, %d]", ErrInvalidKDFParams, p.Threads, maxThreads)
	case p.MemoryKiB < 8*uint32(p.Threads) || p.MemoryKiB > maxMemoryKiB:
		return fmt.Errorf("%w: memory %d KiB not in [%d, %d]", ErrInvalidKDFParams,
			p.MemoryKiB, 8*uint32(p.Threads), maxMemoryKiB)
	}
	return nil
}

// Encryptor seals private keys under a user secret.
type Encryptor struct {
	params KDFParams
	rng    io.Reader
}

// NewEncryptor returns an Encryptor drawing salts and nonces from rng.
func NewEncryptor(params KDFParams, rng io.Reader) (*Encryptor, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Encryptor{params: params, rng: rng}, nil
}

// Encrypt seals pk with the default KDF parameters.
func Encrypt(pk PrivateKey, secret string, rng io.Reader) (PrivateKeyCiphertext, error) {
	return (&Encryptor{params: DefaultKDFParams(), rng: rng}).Encrypt(pk, secret)
}

// Encrypt seals the private key seed. Every call uses a fresh salt and
// nonce, so two ciphertexts of the same key never match.
func (e *Encryptor) Encrypt(pk PrivateKey, secret string) (PrivateKeyCiphertext, error) {
	c := PrivateKeyCiphertext{
		version: CiphertextVersion1,
		kdf:     e.params,
		salt:    make([]byte, saltSize),
		nonce:   make([]byte, chacha20poly1305.NonceSizeX),
	}
	if _, err := io.ReadFull(e.rng, c.salt); err != nil {
		return PrivateKeyCiphertext{}, fmt.Errorf("failed to sample salt: %w", err)
	}
	if _, err := io.ReadFull(e.rng, c.nonce); err != nil {
		return PrivateKeyCiphertext{}, fmt.Errorf("failed to sample nonce: %w", err)
	}

	aead, err := c.aead(secret)
	if err != nil {
		return PrivateKeyCiphertext{}, err
	}

	seed := pk.Seed()
	defer zeroBytes(seed[:])
	c.sealed = aead.Seal(nil, c.nonce, seed[:], c.header())

	log.Debugf("Sealed private key (argon2id t=%d m=%dKiB p=%d)",
		c.kdf.Time, c.kdf.MemoryKiB, c.kdf.Threads)
	return c, nil
}

// Decrypt opens c with secret. A wrong secret or a modified ciphertext
// yields ErrDecryptionFailed, never a different key.
func (c PrivateKeyCiphertext) Decrypt(secret string) (PrivateKey, error) {
	aead, err := c.aead(secret)
	if err != nil {
		return PrivateKey{}, err
	}

	seed, err := aead.Open(nil, c.nonce, c.sealed, c.header())
	if err != nil {
		log.Debugf("Private key ciphertext failed to authenticate")
		return PrivateKey{}, ErrDecryptionFailed
	}
	defer zeroBytes(seed)

	field, err := primitives.FieldFromBytesLE(seed)
	if err != nil {
		return PrivateKey{}, &CiphertextError{Message: "sealed seed is not canonical", Cause: err}
	}
	return privateKeyFromField(field)
}

// Decrypt opens c with secret.
func Decrypt(c PrivateKeyCiphertext, secret string) (PrivateKey, error) {
	return c.Decrypt(secret)
}

func (c PrivateKeyCiphertext) aead(secret string) (cipher.AEAD, error) {
	if err := c.kdf.Validate(); err != nil {
		return nil, err
	}
	if len(c.nonce) != chacha20poly1305.NonceSizeX {
		return nil, &CiphertextError{Message: "invalid nonce length"}
	}

	key := argon2.IDKey([]byte(secret), c.salt, c.kdf.Time, c.kdf.MemoryKiB,
		c.kdf.Threads, chacha20poly1305.KeySize)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return aead, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
