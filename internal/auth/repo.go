package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymbuddy/internal/db"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrUserNotFound = errors.New("user not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// CreateIdentityWithProfile inserts the identity and its profile row in one
// transaction, so a failed profile insert leaves no orphan identity behind.
func (r *Repo) CreateIdentityWithProfile(ctx context.Context, identity Identity, profile Profile) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	user := &User{
		AuthID:   identity.ID,
		Email:    identity.Email,
		Name:     profile.Name,
		Username: profile.Username,
		Height:   profile.Height,
		Weight:   profile.Weight,
	}

	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO auth_identity (id, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4)`,
			identity.ID, identity.Email, identity.PasswordHash, identity.CreatedAt,
		); err != nil {
			if pkg.IsUniqueViolationError(err) {
				return fmt.Errorf("email %s: %w", identity.Email, ErrAlreadyExists)
			}
			return fmt.Errorf("insert identity: %w", err)
		}

		if err := tx.QueryRow(ctx, `
			INSERT INTO users (auth_id, email, name, username, height, weight)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			user.AuthID, user.Email, user.Name, user.Username, user.Height, user.Weight,
		).Scan(&user.ID); err != nil {
			if pkg.IsUniqueViolationError(err) {
				return fmt.Errorf("%w: username %s: %w", ErrProfileCreation, profile.Username, ErrAlreadyExists)
			}
			return fmt.Errorf("%w: %w", ErrProfileCreation, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repo) IdentityByEmail(ctx context.Context, email string) (_ *Identity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.identity")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	identity := &Identity{}
	err = r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM auth_identity
		WHERE email = $1`,
		email,
	).Scan(&identity.ID, &identity.Email, &identity.PasswordHash, &identity.CreatedAt)
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return identity, nil
}

func (r *Repo) UserByAuthID(ctx context.Context, authID string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.auth.user")
	span.SetAttributes(attribute.String("auth_id", authID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	user := &User{}
	err = r.db.QueryRow(ctx, `
		SELECT id, auth_id, email, name, username, height, weight
		FROM users
		WHERE auth_id = $1`,
		authID,
	).Scan(&user.ID, &user.AuthID, &user.Email, &user.Name, &user.Username, &user.Height, &user.Weight)
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
