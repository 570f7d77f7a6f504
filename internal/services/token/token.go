// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

// Package token issues and verifies the signed bearer tokens used by the API.
package token

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"codeberg.org/lesgardiens/boardclub/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// VerificationIssuer scopes email verification tokens away from login
// tokens. A login parse rejects tokens carrying this issuer and vice versa.
const VerificationIssuer = "boardclub/verification"

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

// Claims is the claim set carried by every token. The roles claim keeps the
// name "permissions" on the wire for compatibility with the frontend.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64    `json:"userId"`
	Roles  []string `json:"permissions"`
}

// HasRole reports whether the claim set carries the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Revoker is the revocation registry consulted by the route guard and
// written by logout. Satisfied by *repository.Repository.
type Revoker interface {
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// Service signs and parses tokens with a single HMAC key.
type Service struct {
	signingKey      []byte
	tokenTTL        time.Duration
	verificationTTL time.Duration
}

// NewService creates a token service. TTLs are given in hours by the config.
func NewService(signingKey string, tokenTTL, verificationTTL time.Duration) *Service {
	return &Service{
		signingKey:      []byte(signingKey),
		tokenTTL:        tokenTTL,
		verificationTTL: verificationTTL,
	}
}

// Issue creates a login token for the user. The jti combines the pseudo with
// a random 6-digit suffix so individual tokens can be revoked.
func (s *Service) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newJTI(user.Pseudo),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: user.ID,
		Roles:  []string{user.Role},
	}

	return s.sign(claims)
}

// IssueVerification creates an email verification token scoped to the user:
// the issuer marks it as a verification token and the audience pins it to
// the user's pseudo.
func (s *Service) IssueVerification(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newJTI(user.Pseudo),
			Issuer:    VerificationIssuer,
			Audience:  jwt.ClaimStrings{user.Pseudo},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.verificationTTL)),
		},
		UserID: user.ID,
		Roles:  []string{user.Role},
	}

	return s.sign(claims)
}

func (s *Service) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a login token's signature and expiry and returns its claims.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	// A verification token is not a login credential.
	if claims.Issuer == VerificationIssuer {
		return nil, ErrInvalid
	}

	return claims, nil
}

// ParseVerification verifies an email verification token pinned to the given
// pseudo. A token valid for a different user is rejected even when the
// signature checks out.
func (s *Service) ParseVerification(tokenString, pseudo string) (*Claims, error) {
	claims, err := s.parse(tokenString, jwt.WithIssuer(VerificationIssuer), jwt.WithAudience(pseudo))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Service) parse(tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// newJTI builds a token id from the pseudo and a random 6-digit suffix.
func newJTI(pseudo string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%s_%06d", pseudo, n.Int64())
}
