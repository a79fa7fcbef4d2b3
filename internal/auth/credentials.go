package auth

import (
	"context"
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// IdentityRepository is the persistence the credential store needs.
//
// Implemented by [repositories.IdentityRepository].
type IdentityRepository interface {
	First(ctx context.Context) (*models.Identity, error)
	Get(ctx context.Context, id int64) (*models.Identity, error)
	Update(ctx context.Context, identity *models.Identity) error
	Upsert(ctx context.Context, apply func(identity *models.Identity) error) (*models.Identity, error)
}

// Credentials holds the single administrator identity.
type Credentials struct {
	repo IdentityRepository
	cost int
}

// NewCredentials creates a credential store hashing at the given bcrypt cost.
// A cost of zero uses [bcrypt.DefaultCost].
func NewCredentials(repo IdentityRepository, cost int) *Credentials {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{repo: repo, cost: cost}
}

// Current returns the administrator identity, or [shared.ErrNotFound] before bootstrap.
func (c *Credentials) Current(ctx context.Context) (*models.Identity, error) {
	return c.repo.First(ctx)
}

// UpsertAdmin creates the administrator (named [models.DefaultName]) if none exists, or reuses
// the existing row, then sets its username and password. Hashing failures abort without writing.
func (c *Credentials) UpsertAdmin(ctx context.Context, username, plaintext string) (*models.Identity, error) {
	if username == "" || plaintext == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}

	return c.repo.Upsert(ctx, func(identity *models.Identity) error {
		identity.Username = username
		return c.SetPassword(identity, plaintext)
	})
}

// UpdateDisplayName changes the authenticated caller's display name.
func (c *Credentials) UpdateDisplayName(ctx context.Context, caller Caller, name string) (*models.Identity, error) {
	if err := Authorize(caller); err != nil {
		return nil, err
	}

	if err := models.ValidateName(name); err != nil {
		return nil, err
	}

	identity, err := c.repo.Get(ctx, caller.Identity().ID)
	if err != nil {
		return nil, err
	}

	identity.Name = name
	if err := c.repo.Update(ctx, identity); err != nil {
		return nil, err
	}

	return identity, nil
}
