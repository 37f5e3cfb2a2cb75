package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/legacylearning/intake-api/pkg/config"
)

func TestStaticTokenVerifier(t *testing.T) {
	v := NewStaticTokenVerifier("s3cret")

	assert.NoError(t, v.Verify("s3cret"))
	assert.Error(t, v.Verify("wrong"))
	assert.Error(t, v.Verify(""))
}

func TestBcryptTokenVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptTokenVerifier(string(hash))
	assert.NoError(t, v.Verify("s3cret"))
	assert.Error(t, v.Verify("wrong"))
}

func signAdminJWT(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("jwt-secret")

	assert.NoError(t, v.Verify(signAdminJWT(t, "jwt-secret", "admin")))
	assert.Error(t, v.Verify(signAdminJWT(t, "other-secret", "admin")))
	assert.Error(t, v.Verify(signAdminJWT(t, "jwt-secret", "viewer")))
	assert.Error(t, v.Verify("not-a-jwt"))
}

func TestJWTVerifierRejectsExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("jwt-secret"))
	require.NoError(t, err)

	v := NewJWTVerifier("jwt-secret")
	assert.Error(t, v.Verify(signed))
}

func TestNewVerifierPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewVerifier(config.AdminConfig{TokenHash: string(hash), Token: "plain", JWTSecret: "secret"}, nil)
	require.IsType(t, &BcryptTokenVerifier{}, v)

	v = NewVerifier(config.AdminConfig{Token: "plain", JWTSecret: "secret"}, nil)
	require.IsType(t, &StaticTokenVerifier{}, v)

	v = NewVerifier(config.AdminConfig{JWTSecret: "secret"}, nil)
	require.IsType(t, &JWTVerifier{}, v)

	assert.Nil(t, NewVerifier(config.AdminConfig{}, nil))
}
