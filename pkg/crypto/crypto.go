package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
)

// KeySize is the required AES-256 key length in bytes.
const KeySize = 32

var (
	ErrInvalidKeySize      = errors.New("encryption key must be exactly 32 bytes")
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	ErrDecryptionFailed    = errors.New("decryption failed")
)

// Engine performs reversible AES-256-CBC encryption of single string values.
// The key is fixed at construction and never read from ambient state, so a
// test can swap it per instance. Losing or changing the key makes previously
// stored ciphertext permanently undecryptable; that is an accepted property
// of the design, not something the engine tries to detect.
//
// Stored values use the two-part layout "<iv_hex>:<ciphertext_hex>". The
// layout is load-bearing for data already in the store and must not change.
type Engine struct {
	key []byte
}

// DeriveKey turns the configured secret into an AES-256 key: short secrets
// are padded with '0' bytes up to 32, longer ones are truncated. The fixed
// filler is a documented policy so the same secret always yields the same key.
func DeriveKey(secret string) []byte {
	key := make([]byte, KeySize)
	copy(key, secret)
	for i := len(secret); i < KeySize; i++ {
		key[i] = '0'
	}
	return key
}

func NewEngine(key []byte) (*Engine, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Engine{key: k}, nil
}

// Encrypt encrypts plaintext under a fresh random 16-byte IV and returns
// "<iv_hex>:<ciphertext_hex>". Two calls with the same plaintext produce
// different ciphertext.
func (e *Engine) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)
	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ct), nil
}

// Decrypt reverses Encrypt. A value without the iv:ciphertext structure or
// with invalid hex fails with ErrMalformedCiphertext; a value that does not
// decrypt to validly padded plaintext (wrong key, corrupted bytes) fails with
// ErrDecryptionFailed. CBC carries no integrity tag, so corruption may also
// surface as garbage plaintext rather than an error.
func (e *Engine) Decrypt(value string) (string, error) {
	ivHex, ctHex, ok := strings.Cut(value, ":")
	if !ok {
		return "", ErrMalformedCiphertext
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrMalformedCiphertext
	}
	ct, err := hex.DecodeString(ctHex)
	if err != nil || len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", ErrMalformedCiphertext
	}
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}
	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(pt, ct)
	unpadded, err := pkcs7Unpad(pt, aes.BlockSize)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(unpadded), nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, errors.New("invalid padding byte")
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, errors.New("inconsistent padding")
		}
	}
	return b[:len(b)-n], nil
}
