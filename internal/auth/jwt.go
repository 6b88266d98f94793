// Package auth provides the Discord OAuth flow, session tokens, and the
// middleware that gates the owner console.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. User hits /auth/discord/login → redirected to Discord
// 2. Discord calls back /auth/discord/callback with a code
// 3. Server exchanges the code for the Discord profile and checks the
//    allow-list — exactly one account id is ever allowed in
// 4. Server upserts the user record and issues a JWT session token in an
//    HttpOnly cookie
// 5. On subsequent writes, middleware reads the cookie, validates the JWT,
//    and sets the userID in the request context
//
// WHY JWT?
// JWT is stateless — the server stores no session table. Everything needed
// (userID, expiry) is inside the signed token, and the HMAC signature
// ensures nobody can tamper with it without the secret key.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionLifetime is the fixed session expiry: 30 days from issuance.
// There is no refresh protocol — after expiry the owner re-authenticates
// through Discord.
const SessionLifetime = 30 * 24 * time.Hour

const issuer = "schedule-app"

// TokenService handles JWT creation and validation. It holds the HMAC
// secret used for both signing and verifying.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: SCHEDULE_JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims; the "sub" claim carries the internal
// user ID.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given userID, expiring
// SessionLifetime from now.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, SessionLifetime)
}

// GenerateWithDuration creates a token with a custom expiry. Used in tests
// to exercise the expired-token path without waiting 30 days.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string, returning the userID stored in
// the "sub" claim.
//
// Validation checks (performed by the jwt library):
//   - signature is valid (wasn't tampered with)
//   - token is not expired
//   - issuer matches (prevents tokens from other apps)
//   - algorithm is HS256 (prevents algorithm confusion attacks)
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	userID := c.Subject
	if userID == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return userID, nil
}
