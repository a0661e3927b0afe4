package partners

import (
	"context"
	"fmt"

	"github.com/2beens/gymbuddy/internal/db"
	"github.com/2beens/gymbuddy/internal/telemetry/tracing"
	"github.com/2beens/gymbuddy/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) CountAccepted(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.partners.count_accepted")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM workout_partners
		WHERE user_id = $1 AND status = 'accepted'`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AcceptedPartner returns the oldest accepted partner of the user, or nil
// when there is none.
func (r *Repo) AcceptedPartner(ctx context.Context, userID string) (_ *Partner, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.partners.accepted")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	partner := &Partner{}
	err = r.db.QueryRow(ctx, `
		SELECT wp.partner_id, COALESCE(u.name, ''), COALESCE(u.username, '')
		FROM workout_partners wp
			LEFT JOIN users u ON u.auth_id = wp.partner_id
		WHERE wp.user_id = $1 AND wp.status = 'accepted'
		ORDER BY wp.created_at, wp.id
		LIMIT 1`,
		userID,
	).Scan(&partner.UserID, &partner.Name, &partner.Username)
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return partner, nil
}

func (r *Repo) UserIDByUsername(ctx context.Context, username string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.partners.user_by_username")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var authID string
	err = r.db.QueryRow(ctx, `SELECT auth_id FROM users WHERE username = $1`, username).Scan(&authID)
	if err != nil {
		if pkg.IsNoRows(err) {
			return "", ErrPartnerNotFound
		}
		return "", err
	}
	return authID, nil
}

func (r *Repo) CreatePending(ctx context.Context, userID, partnerID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.partners.create_pending")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	_, err = r.db.Exec(ctx, `
		INSERT INTO workout_partners (user_id, partner_id, status)
		VALUES ($1, $2, 'pending')`,
		userID, partnerID,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrAlreadyInvited
		}
		if pkg.IsForeignKeyViolationError(err) {
			return ErrPartnerNotFound
		}
		return err
	}
	return nil
}

// Accept flips the requester's pending invite to accepted and records the
// reverse relation, so both users see each other as partners.
func (r *Repo) Accept(ctx context.Context, userID, requesterID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.partners.accept")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE workout_partners
			SET status = 'accepted'
			WHERE user_id = $1 AND partner_id = $2 AND status = 'pending'`,
			requesterID, userID,
		)
		if err != nil {
			return fmt.Errorf("accept invite: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrPartnerNotFound
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO workout_partners (user_id, partner_id, status)
			VALUES ($1, $2, 'accepted')
			ON CONFLICT (user_id, partner_id) DO UPDATE SET status = 'accepted'`,
			userID, requesterID,
		); err != nil {
			return fmt.Errorf("insert reverse relation: %w", err)
		}
		return nil
	})
}

// List returns the user's own relations plus invites other users sent to them
// that are still pending.
func (r *Repo) List(ctx context.Context, userID string) (_ []Relation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.partners.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT wp.id, wp.user_id, wp.partner_id, wp.status, 'outgoing',
			COALESCE(u.name, ''), COALESCE(u.username, ''), wp.created_at
		FROM workout_partners wp
			LEFT JOIN users u ON u.auth_id = wp.partner_id
		WHERE wp.user_id = $1
		UNION ALL
		SELECT wp.id, wp.user_id, wp.partner_id, wp.status, 'incoming',
			COALESCE(u.name, ''), COALESCE(u.username, ''), wp.created_at
		FROM workout_partners wp
			LEFT JOIN users u ON u.auth_id = wp.user_id
		WHERE wp.partner_id = $1 AND wp.status = 'pending'
		ORDER BY 8 DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	relations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Relation, error) {
		var rel Relation
		err := row.Scan(
			&rel.ID, &rel.UserID, &rel.PartnerID, &rel.Status, &rel.Direction,
			&rel.Name, &rel.Username, &rel.CreatedAt,
		)
		return rel, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect relations: %w", err)
	}
	return relations, nil
}
