// Package utils provides token helpers for reservation lookup.
package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// claim checks.
var ErrInvalidToken = errors.New("invalid lookup token")

// LookupToken is a signed HS256 JWT granting read access to the bookings
// of one email address.
type LookupToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expires_at"`
}

// NewLookupToken signs a token whose subject is the lower-cased email.
func NewLookupToken(secret, email string, ttl time.Duration) (LookupToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":   strings.ToLower(strings.TrimSpace(email)),
		"scope": "reservations:read",
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return LookupToken{}, err
	}
	return LookupToken{Token: signed, Exp: exp}, nil
}

// ParseLookupToken verifies raw and returns the email it was issued for.
func ParseLookupToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["scope"] != "reservations:read" {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
