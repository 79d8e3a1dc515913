package utils

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRounding(t *testing.T) {
	assert.Equal(t, 252.0, RoundHalfUp(252.45))
	assert.Equal(t, 3.0, RoundHalfUp(2.5))
	assert.Equal(t, -2.0, RoundHalfUp(-2.5))
	assert.Equal(t, -165.0, RoundHalfUp(-165))

	assert.Equal(t, 46.5, Round1(46.5))
	assert.Equal(t, 5.4, Round1(5.4))
	assert.Equal(t, 0.3, Round1(0.25))
	assert.Equal(t, -3.6, Round1(-3.6))

	assert.Equal(t, 0.67, Round2(2.0/3))
}

func TestGenerateJWT(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := GenerateJWT(secret, 12, "a@example.com")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return secret, nil })
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, jwt.SigningMethodHS256.Alg(), parsed.Method.Alg())
	assert.Equal(t, float64(12), claims["userId"])
	assert.Equal(t, "a@example.com", claims["email"])

	_, err = GenerateJWT(nil, 1, "a@example.com")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
	assert.False(t, CheckPasswordHash("secret1", "not-a-hash"))
}

func TestGenerateRandomToken(t *testing.T) {
	a := GenerateRandomToken(6)
	assert.Len(t, a, 6)
	for _, r := range a {
		assert.True(t, strings.ContainsRune(tokenCharset, r))
	}
	assert.NotEqual(t, GenerateRandomToken(32), GenerateRandomToken(32))
}

func TestDecodeDataImage(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	img, err := DecodeDataImage("data:image/png;base64," + base64.StdEncoding.EncodeToString(payload))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, ".png", img.Ext)
	assert.Equal(t, payload, img.Bytes)

	img, err = DecodeDataImage("data:image/jpeg;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", img.Ext)

	for _, bad := range []string{
		"",
		"AAAA",
		"image/png;base64,AAAA",
		"data:text/plain;base64,AAAA",
		"data:image/png;base64,***",
	} {
		_, err := DecodeDataImage(bad)
		assert.Error(t, err, bad)
	}
}
