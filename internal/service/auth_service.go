package service

import (
	"crypto/subtle"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/legacylearning/intake-api/pkg/config"
)

// CredentialVerifier checks an admin credential presented on a request.
type CredentialVerifier interface {
	Verify(credential string) error
}

// StaticTokenVerifier compares the credential against a fixed shared token.
type StaticTokenVerifier struct {
	token string
}

func NewStaticTokenVerifier(token string) *StaticTokenVerifier {
	return &StaticTokenVerifier{token: token}
}

func (v *StaticTokenVerifier) Verify(credential string) error {
	if subtle.ConstantTimeCompare([]byte(credential), []byte(v.token)) != 1 {
		return fmt.Errorf("token mismatch")
	}
	return nil
}

// BcryptTokenVerifier compares the credential against a bcrypt hash, so the
// deployed configuration never holds the plaintext token.
type BcryptTokenVerifier struct {
	hash string
}

func NewBcryptTokenVerifier(hash string) *BcryptTokenVerifier {
	return &BcryptTokenVerifier{hash: hash}
}

func (v *BcryptTokenVerifier) Verify(credential string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(credential)); err != nil {
		return fmt.Errorf("token mismatch: %w", err)
	}
	return nil
}

// JWTVerifier accepts signed admin tokens with the "admin" role claim.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(credential string) error {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return fmt.Errorf("parse admin token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid admin token")
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return fmt.Errorf("missing admin role claim")
	}
	return nil
}

// NewVerifier selects a verifier from configuration. Precedence follows
// specificity: a bcrypt hash wins over a plaintext token, which wins over
// a JWT secret. Returns nil when no admin credential is configured.
func NewVerifier(cfg config.AdminConfig, logger *zap.Logger) CredentialVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch {
	case cfg.TokenHash != "":
		logger.Info("admin auth configured", zap.String("mode", "bcrypt"))
		return NewBcryptTokenVerifier(cfg.TokenHash)
	case cfg.Token != "":
		logger.Info("admin auth configured", zap.String("mode", "static"))
		return NewStaticTokenVerifier(cfg.Token)
	case cfg.JWTSecret != "":
		logger.Info("admin auth configured", zap.String("mode", "jwt"))
		return NewJWTVerifier(cfg.JWTSecret)
	default:
		logger.Warn("no admin credential configured, admin routes disabled")
		return nil
	}
}
