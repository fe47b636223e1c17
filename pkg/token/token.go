// Package token issues and verifies the HS256 bearer tokens that identify API clients.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	jwt.RegisteredClaims

	// Name is an optional display label for the client.
	Name string `json:"name,omitempty"`
}

type Verified struct {
	ClientID  string
	Name      string
	ExpiresAt time.Time
}

var (
	ErrMissingToken  = errors.New("missing token")
	ErrMissingSecret = errors.New("missing token secret")
)

// Issue signs a token for subject valid for ttl from now.
func Issue(subject, name, secret, audience string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("missing subject")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name: name,
	}
	if audience != "" {
		claims.Audience = jwt.ClaimStrings{audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify checks signature, expiry and (when audience is non-empty) the audience,
// and returns the client identity carried in the subject claim.
func Verify(tokenString, secret, audience string, now time.Time) (*Verified, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	if secret == "" {
		return nil, ErrMissingSecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	parser := jwt.NewParser(opts...)

	claims := &Claims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return nil, fmt.Errorf("missing subject in token")
	}

	return &Verified{
		ClientID:  subject,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
