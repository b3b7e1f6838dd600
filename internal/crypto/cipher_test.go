package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeyLen)
}

func TestEncryptDecrypt(t *testing.T) {
	key := testKey(1)
	plaintext := []byte("ghp_secret_token")

	encrypted, err := Encrypt(plaintext, key)
	require.NoError(t, err)
	assert.NotContains(t, string(encrypted), string(plaintext))

	decrypted, err := Decrypt(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncrypt_RandomNonce(t *testing.T) {
	key := testKey(1)

	a, err := Encrypt([]byte("same"), key)
	require.NoError(t, err)
	b, err := Encrypt([]byte("same"), key)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEncrypt_Errors(t *testing.T) {
	_, err := Encrypt(nil, testKey(1))
	assert.ErrorContains(t, err, "plaintext cannot be empty")

	_, err = Encrypt([]byte("data"), []byte("short"))
	assert.ErrorContains(t, err, "encryption key must be 32 bytes")
}

func TestDecrypt_WrongKey(t *testing.T) {
	encrypted, err := Encrypt([]byte("data"), testKey(1))
	require.NoError(t, err)

	_, err = Decrypt(encrypted, testKey(2))
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDecrypt_TooShort(t *testing.T) {
	_, err := Decrypt([]byte{1, 2, 3}, testKey(1))
	assert.ErrorContains(t, err, "too short")
}

func TestEncryptString_RoundTrip(t *testing.T) {
	key := testKey(3)

	encoded, err := EncryptString("token-value", key)
	require.NoError(t, err)

	plain, err := DecryptString(encoded, key)
	require.NoError(t, err)
	assert.Equal(t, "token-value", plain)

	_, err = DecryptString("%%%", key)
	assert.ErrorContains(t, err, "failed to decode base64")
}
