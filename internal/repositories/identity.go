package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

var _ models.Repository[*models.Identity] = (*IdentityRepository)(nil)

const identityColumns = `id, name, username, password_hash`

// IdentityRepository implements [models.Repository] for the administrator [models.Identity].
//
// Only one identity is expected; [IdentityRepository.First] returns "the" identity.
type IdentityRepository struct {
	db *sql.DB
}

// NewIdentityRepository creates a new [IdentityRepository] with the given database connection
func NewIdentityRepository(db *sql.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func scanIdentity(row interface{ Scan(...any) error }) (*models.Identity, error) {
	identity := &models.Identity{}
	if err := row.Scan(&identity.ID, &identity.Name, &identity.Username, &identity.PasswordHash); err != nil {
		return nil, err
	}
	return identity, nil
}

func firstIdentity(ctx context.Context, q DBTX) (*models.Identity, error) {
	identity, err := scanIdentity(q.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM users ORDER BY id ASC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no identity has been created", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query identity: %w", err)
	}
	return identity, nil
}

func insertIdentity(ctx context.Context, tx DBTX, identity *models.Identity) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, username, password_hash) VALUES (?, ?, ?)`,
		identity.Name, identity.Username, identity.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert identity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read identity id: %w", err)
	}
	identity.ID = id
	return nil
}

func updateIdentity(ctx context.Context, tx DBTX, identity *models.Identity) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE users SET name = ?, username = ?, password_hash = ? WHERE id = ?`,
		identity.Name, identity.Username, identity.PasswordHash, identity.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update identity: %w", err)
	}
	return expectAffected(result, "identity", identity.ID)
}

// First returns the identity with the lowest ID, or [shared.ErrNotFound] before bootstrap.
func (r *IdentityRepository) First(ctx context.Context) (*models.Identity, error) {
	return firstIdentity(ctx, r.db)
}

// Upsert loads the first identity (or a new one named [models.DefaultName] if none exists),
// lets apply modify it, validates it and stores it, all in one transaction.
//
// An error from apply aborts the transaction without writing anything.
func (r *IdentityRepository) Upsert(ctx context.Context, apply func(identity *models.Identity) error) (*models.Identity, error) {
	var stored *models.Identity

	err := WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		identity, err := firstIdentity(ctx, tx)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			identity = models.NewIdentity("")
		case err != nil:
			return err
		}

		if err := apply(identity); err != nil {
			return err
		}

		if err := identity.Validate(); err != nil {
			return err
		}

		if identity.ID == 0 {
			err = insertIdentity(ctx, tx, identity)
		} else {
			err = updateIdentity(ctx, tx, identity)
		}
		if err != nil {
			return err
		}

		stored = identity
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// Create inserts a new identity into the database
func (r *IdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		return insertIdentity(ctx, tx, identity)
	})
}

// Get retrieves an identity by ID
func (r *IdentityRepository) Get(ctx context.Context, id int64) (*models.Identity, error) {
	identity, err := scanIdentity(r.db.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "identity", id)
	}
	return identity, nil
}

// Update modifies an existing identity in the database
func (r *IdentityRepository) Update(ctx context.Context, identity *models.Identity) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		return updateIdentity(ctx, tx, identity)
	})
}

// Delete removes an identity by ID
func (r *IdentityRepository) Delete(ctx context.Context, id int64) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete identity: %w", err)
		}
		return expectAffected(result, "identity", id)
	})
}

// List retrieves all identities ordered by ID
func (r *IdentityRepository) List(ctx context.Context) ([]*models.Identity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+identityColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query identities: %w", err)
	}
	defer rows.Close()

	identities := []*models.Identity{}
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		identities = append(identities, identity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return identities, nil
}
