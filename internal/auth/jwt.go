// Package auth verifies the identity provider's session tokens and signed
// webhook deliveries.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims are the claims of a session token. Azp is the origin the
// token was minted for.
type SessionClaims struct {
	jwt.RegisteredClaims

	Azp string `json:"azp,omitempty"`
}

// Verifier checks RS256 session tokens against a fixed public key.
type Verifier struct {
	key     *rsa.PublicKey
	parties []string
	parser  *jwt.Parser
}

// NewVerifier parses publicKeyPEM. An empty issuer or parties list disables
// that check.
func NewVerifier(publicKeyPEM, issuer string, parties []string) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse jwt public key: %w", err)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &Verifier{
		key:     key,
		parties: parties,
		parser:  jwt.NewParser(opts...),
	}, nil
}

// Verify returns the subject of a valid token.
func (v *Verifier) Verify(token string) (string, error) {
	claims := &SessionClaims{}

	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	if len(v.parties) > 0 && claims.Azp != "" && !slices.Contains(v.parties, claims.Azp) {
		return "", fmt.Errorf("%w: unexpected authorized party %q", ErrInvalidToken, claims.Azp)
	}

	return claims.Subject, nil
}
