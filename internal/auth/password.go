package auth

import (
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SetPassword hashes plaintext at the configured cost and stores the hash on identity,
// replacing any previous hash. On error the identity is left unchanged.
func (c *Credentials) SetPassword(identity *models.Identity, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	identity.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether plaintext matches the identity's stored hash.
func (c *Credentials) VerifyPassword(identity *models.Identity, plaintext string) bool {
	if identity == nil || identity.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(plaintext)) == nil
}
