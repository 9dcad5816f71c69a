// Package auth covers password hashing and bearer token issue/verify.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned by VerifyToken for any token that does not
// carry a valid signature and owner claim.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload: the owner's identifier plus the standard
// registered claims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Auth hashes passwords and signs/verifies bearer tokens with a
// process-wide secret. Construct with New.
type Auth struct {
	secret []byte
	ttl    time.Duration
}

// New returns an Auth signing with secret. A zero ttl issues
// non-expiring tokens.
func New(secret string, ttl time.Duration) *Auth {
	return &Auth{secret: []byte(secret), ttl: ttl}
}

// HashPassword hashes a plaintext password with bcrypt at the default
// cost of 10.
func (a *Auth) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain hashes to hash.
func (a *Auth) CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IssueToken signs an HS256 token bound to the given owner identifier.
func (a *Auth) IssueToken(userID string) (string, error) {
	claims := Claims{UserID: userID}
	if a.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(a.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token, returning the owner
// identifier it was issued for. Malformed, tampered or expired tokens
// all come back as ErrInvalidToken.
func (a *Auth) VerifyToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
