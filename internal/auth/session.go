package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signer issues and verifies tamper-evident session tokens.
type Signer interface {
	Issue(identityID int64) (string, error)
	Parse(token string) (int64, error)
}

// JWTSigner signs session tokens as HS256 JWTs whose subject is the identity ID.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ Signer = (*JWTSigner)(nil)

// NewJWTSigner creates a signer using secret and a token lifetime of ttl.
func NewJWTSigner(secret string, ttl time.Duration) (*JWTSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: session secret is empty", shared.ErrInvalidConfig)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: session lifetime must be positive", shared.ErrInvalidConfig)
	}
	return &JWTSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for identityID expiring after the signer's lifetime.
func (s *JWTSigner) Issue(identityID int64) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(identityID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token's signature, algorithm and expiry and returns the identity ID it names.
func (s *JWTSigner) Parse(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, shared.ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", shared.ErrInvalidToken, claims.Subject)
	}
	return id, nil
}
