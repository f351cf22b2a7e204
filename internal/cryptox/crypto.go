// Package cryptox seals small secrets, such as the session tokens, before
// they are written to the local database.
package cryptox

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// SaltSize is the length of the random salt stored next to sealed data.
const SaltSize = 16

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey stretches a device secret into a 32-byte key with Argon2id.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, chacha20poly1305.KeySize)
}

// Seal encrypts plaintext with XChaCha20-Poly1305. The random nonce is
// prepended to the returned ciphertext. additional is authenticated but not
// encrypted.
func Seal(key, plaintext, additional []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, additional), nil
}

// Open reverses Seal.
func Open(key, sealed, additional []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, additional)
}

// SealJSON serializes v to JSON and seals it.
func SealJSON(key []byte, v any, additional []byte) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Seal(key, plaintext, additional)
}

// OpenJSON opens sealed and unmarshals the JSON inside into v.
func OpenJSON(key, sealed []byte, v any, additional []byte) error {
	plaintext, err := Open(key, sealed, additional)
	if err != nil {
		return fmt.Errorf("open sealed data: %w", err)
	}
	return json.Unmarshal(plaintext, v)
}
