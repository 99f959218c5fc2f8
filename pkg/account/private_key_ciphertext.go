package account

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Private key ciphertext format (all integers little-endian):
//
//	"AKCT" (4 bytes) || version (u16) || kdf id (u8)
//	  || kdf time (u32) || kdf memory KiB (u32) || kdf threads (u8)
//	  || salt length (u8) || salt
//	  || nonce length (u8) || nonce
//	  || sealed length (u16) || sealed seed (ciphertext || 16-byte tag)
//
// Everything before the sealed length is authenticated as associated data.
const (
	CiphertextMagic    = "AKCT"
	CiphertextVersion1 = uint16(1)

	// CiphertextHRP is the bech32m human-readable part of the text form.
	CiphertextHRP = "ciphertext"

	kdfArgon2id = uint8(1)

	saltSize = 16

	// Bounds applied when parsing.
	minSaltSize  = 16
	maxSaltSize  = 64
	maxKDFTime   = 8
	maxMemoryKiB = 256 * 1024
	maxThreads   = 16
)

// PrivateKeyCiphertext is a private key sealed under a user secret.
type PrivateKeyCiphertext struct {
	version uint16
	kdf     KDFParams
	salt    []byte
	nonce   []byte
	sealed  []byte
}

// KDFParams returns the argon2id parameters the ciphertext was sealed with.
func (c PrivateKeyCiphertext) KDFParams() KDFParams {
	return c.kdf
}

// Version returns the format version.
func (c PrivateKeyCiphertext) Version() uint16 {
	return c.version
}

// header returns the authenticated prefix of the encoding.
func (c PrivateKeyCiphertext) header() []byte {
	buf := new(bytes.Buffer)

	buf.WriteString(CiphertextMagic)
	binary.Write(buf, binary.LittleEndian, c.version)
	buf.WriteByte(kdfArgon2id)
	binary.Write(buf, binary.LittleEndian, c.kdf.Time)
	binary.Write(buf, binary.LittleEndian, c.kdf.MemoryKiB)
	buf.WriteByte(c.kdf.Threads)

	buf.WriteByte(uint8(len(c.salt)))
	buf.Write(c.salt)
	buf.WriteByte(uint8(len(c.nonce)))
	buf.Write(c.nonce)

	return buf.Bytes()
}

// Bytes returns the binary encoding.
func (c PrivateKeyCiphertext) Bytes() []byte {
	buf := bytes.NewBuffer(c.header())
	binary.Write(buf, binary.LittleEndian, uint16(len(c.sealed)))
	buf.Write(c.sealed)
	return buf.Bytes()
}

// String returns the bech32m "ciphertext1..." form.
func (c PrivateKeyCiphertext) String() string {
	s, err := encodeBech32m(CiphertextHRP, c.Bytes())
	if err != nil {
		panic(err)
	}
	return s
}

// ParsePrivateKeyCiphertext decodes a "ciphertext1..." string.
func ParsePrivateKeyCiphertext(s string) (PrivateKeyCiphertext, error) {
	payload, err := decodeBech32m("ciphertext", CiphertextHRP, s)
	if err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "invalid text encoding", Cause: err}
	}
	return PrivateKeyCiphertextFromBytes(payload)
}

// PrivateKeyCiphertextFromBytes decodes the binary encoding.
func PrivateKeyCiphertextFromBytes(data []byte) (PrivateKeyCiphertext, error) {
	r := bytes.NewReader(data)

	magic := make([]byte, len(CiphertextMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "data too short", Cause: err}
	}
	if string(magic) != CiphertextMagic {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "invalid magic bytes"}
	}

	var c PrivateKeyCiphertext
	if err := binary.Read(r, binary.LittleEndian, &c.version); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "missing version", Cause: err}
	}
	if c.version != CiphertextVersion1 {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: fmt.Sprintf("unsupported version: %d", c.version)}
	}

	kdfID, err := r.ReadByte()
	if err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "missing kdf id", Cause: err}
	}
	if kdfID != kdfArgon2id {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: fmt.Sprintf("unsupported kdf: %d", kdfID)}
	}

	if err := binary.Read(r, binary.LittleEndian, &c.kdf.Time); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "missing kdf time", Cause: err}
	}
	if err := binary.Read(r, binary.LittleEndian, &c.kdf.MemoryKiB); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "missing kdf memory", Cause: err}
	}
	if c.kdf.Threads, err = r.ReadByte(); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "missing kdf threads", Cause: err}
	}
	if err := c.kdf.Validate(); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "kdf parameters out of bounds", Cause: err}
	}

	if c.salt, err = readLengthPrefixed(r); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "invalid salt", Cause: err}
	}
	if len(c.salt) < minSaltSize || len(c.salt) > maxSaltSize {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: fmt.Sprintf("invalid salt length: %d", len(c.salt))}
	}

	if c.nonce, err = readLengthPrefixed(r); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "invalid nonce", Cause: err}
	}
	if len(c.nonce) != chacha20poly1305.NonceSizeX {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: fmt.Sprintf("invalid nonce length: %d", len(c.nonce))}
	}

	var sealedLen uint16
	if err := binary.Read(r, binary.LittleEndian, &sealedLen); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "missing ciphertext length", Cause: err}
	}
	if int(sealedLen) != SeedSize+chacha20poly1305.Overhead {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: fmt.Sprintf("invalid ciphertext length: %d", sealedLen)}
	}
	c.sealed = make([]byte, sealedLen)
	if _, err := io.ReadFull(r, c.sealed); err != nil {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: "truncated ciphertext", Cause: err}
	}

	if r.Len() != 0 {
		return PrivateKeyCiphertext{}, &CiphertextError{Message: fmt.Sprintf("%d trailing bytes", r.Len())}
	}
	return c, nil
}

func readLengthPrefixed(r *bytes.Reader) ([]byte, error) {
	n, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c PrivateKeyCiphertext) Equal(o PrivateKeyCiphertext) bool {
	return bytes.Equal(c.Bytes(), o.Bytes())
}
