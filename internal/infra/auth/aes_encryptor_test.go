package auth

import (
	"encoding/hex"
	"strings"
	"testing"

	"taskhub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 32 bytes, hex encoded.
const testCryptoKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newEncryptorConfig(key string) *config.Config {
	return &config.Config{Auth: &config.AuthConfig{CryptoKey: key}}
}

func TestAESEncryptor_RoundTrip(t *testing.T) {
	enc, err := NewAESEncryptor(newEncryptorConfig(testCryptoKey))
	require.NoError(t, err)

	envelope, err := enc.Encrypt("1//0gProviderRefreshToken")
	require.NoError(t, err)

	plaintext, err := enc.Decrypt(envelope)
	require.NoError(t, err)
	assert.Equal(t, "1//0gProviderRefreshToken", plaintext)
}

func TestAESEncryptor_EnvelopeFormat(t *testing.T) {
	enc, err := NewAESEncryptor(newEncryptorConfig(testCryptoKey))
	require.NoError(t, err)

	envelope, err := enc.Encrypt("secret")
	require.NoError(t, err)

	parts := strings.Split(envelope, ":")
	require.Len(t, parts, 3)

	nonce, err := hex.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Len(t, nonce, nonceLength)

	tag, err := hex.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Len(t, tag, tagLength)

	_, err = hex.DecodeString(parts[2])
	require.NoError(t, err)
}

func TestAESEncryptor_FreshNoncePerCall(t *testing.T) {
	enc, err := NewAESEncryptor(newEncryptorConfig(testCryptoKey))
	require.NoError(t, err)

	first, err := enc.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := enc.Encrypt("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAESEncryptor_TamperedEnvelopeRejected(t *testing.T) {
	enc, err := NewAESEncryptor(newEncryptorConfig(testCryptoKey))
	require.NoError(t, err)

	envelope, err := enc.Encrypt("secret payload")
	require.NoError(t, err)
	parts := strings.Split(envelope, ":")
	require.Len(t, parts, 3)

	flipHexByte := func(s string) string {
		raw, err := hex.DecodeString(s)
		require.NoError(t, err)
		raw[0] ^= 0xff

		return hex.EncodeToString(raw)
	}

	cases := map[string]string{
		"tampered nonce":      flipHexByte(parts[0]) + ":" + parts[1] + ":" + parts[2],
		"tampered tag":        parts[0] + ":" + flipHexByte(parts[1]) + ":" + parts[2],
		"tampered ciphertext": parts[0] + ":" + parts[1] + ":" + flipHexByte(parts[2]),
	}
	for name, tampered := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := enc.Decrypt(tampered)
			assert.Error(t, err)
		})
	}
}

func TestAESEncryptor_MalformedEnvelopeRejected(t *testing.T) {
	enc, err := NewAESEncryptor(newEncryptorConfig(testCryptoKey))
	require.NoError(t, err)

	for _, envelope := range []string{
		"",
		"onlyonepart",
		"two:parts",
		"zz:zz:zz",
		"deadbeef:deadbeef:deadbeef", // nonce and tag lengths are wrong
	} {
		_, err := enc.Decrypt(envelope)
		assert.Error(t, err, "envelope %q", envelope)
	}
}

func TestAESEncryptor_WrongKeyRejected(t *testing.T) {
	enc, err := NewAESEncryptor(newEncryptorConfig(testCryptoKey))
	require.NoError(t, err)

	otherKey := strings.Repeat("ab", 32)
	other, err := NewAESEncryptor(newEncryptorConfig(otherKey))
	require.NoError(t, err)

	envelope, err := enc.Encrypt("secret")
	require.NoError(t, err)

	_, err = other.Decrypt(envelope)
	assert.Error(t, err)
}

func TestNewAESEncryptor_KeyValidation(t *testing.T) {
	_, err := NewAESEncryptor(newEncryptorConfig(""))
	assert.Error(t, err)

	_, err = NewAESEncryptor(newEncryptorConfig("not hex"))
	assert.Error(t, err)

	_, err = NewAESEncryptor(newEncryptorConfig("deadbeef")) // 4 bytes
	assert.Error(t, err)
}
