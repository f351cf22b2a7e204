package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key := DeriveKey(password, salt)
	require.Len(t, key, 32)
	require.Equal(t, key, DeriveKey(password, salt))

	// Argon2id, 1 pass, 64 MiB, 4 lanes
	require.Equal(t, argon2.IDKey(password, salt, 1, 64*1024, 4, 32), key)
	assert.Equal(t, "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3", hex.EncodeToString(key))
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealOpen(t *testing.T) {
	key := DeriveKey([]byte("device"), []byte("0123456789abcdef"))

	sealed, err := Seal(key, []byte("refresh-token"), []byte("session"))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "refresh-token")

	plain, err := Open(key, sealed, []byte("session"))
	require.NoError(t, err)
	assert.Equal(t, "refresh-token", string(plain))

	again, err := Seal(key, []byte("refresh-token"), []byte("session"))
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")
}

func TestOpen_Failures(t *testing.T) {
	key := DeriveKey([]byte("device"), []byte("0123456789abcdef"))
	other := DeriveKey([]byte("other"), []byte("0123456789abcdef"))

	sealed, err := Seal(key, []byte("x"), nil)
	require.NoError(t, err)

	_, err = Open(other, sealed, nil)
	assert.Error(t, err)

	_, err = Open(key, sealed, []byte("wrong-ad"))
	assert.Error(t, err)

	_, err = Open(key, sealed[:5], nil)
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	_, err = Seal([]byte("short"), []byte("x"), nil)
	assert.Error(t, err)
}

func TestSealJSON(t *testing.T) {
	type tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	key := DeriveKey([]byte("device"), []byte("0123456789abcdef"))

	sealed, err := SealJSON(key, tokens{"a", "r"}, nil)
	require.NoError(t, err)

	var got tokens
	require.NoError(t, OpenJSON(key, sealed, &got, nil))
	assert.Equal(t, tokens{"a", "r"}, got)
}
