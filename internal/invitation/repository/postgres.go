package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"alumni-network/backend/internal/invitation/domain"
)

// PostgresInvitationRepository implements InvitationRepository on Postgres.
type PostgresInvitationRepository struct {
	db *sql.DB
}

// NewPostgresInvitationRepository returns a Postgres-backed invitation repository.
func NewPostgresInvitationRepository(db *sql.DB) *PostgresInvitationRepository {
	return &PostgresInvitationRepository{db: db}
}

func (r *PostgresInvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitations (code, email, sent_at, sent_by) VALUES ($1, $2, $3, $4)`,
		inv.Code, inv.Email, inv.SentAt, inv.SentBy,
	)
	return err
}

func (r *PostgresInvitationRepository) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	return r.get(ctx,
		`SELECT code, email, sent_at, sent_by, used_at FROM invitations WHERE code = $1`, code)
}

func (r *PostgresInvitationRepository) LatestOpenByEmail(ctx context.Context, email string) (*domain.Invitation, error) {
	return r.get(ctx,
		`SELECT code, email, sent_at, sent_by, used_at FROM invitations
		 WHERE email = $1 AND used_at IS NULL
		 ORDER BY sent_at DESC LIMIT 1`, email)
}

// MarkUsed flips used_at in a single conditional UPDATE so two concurrent
// redeems of the same code cannot both succeed.
func (r *PostgresInvitationRepository) MarkUsed(ctx context.Context, code string, usedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET used_at = $2 WHERE code = $1 AND used_at IS NULL`,
		code, usedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	// Zero rows: either the code does not exist or someone else won the race.
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM invitations WHERE code = $1)`, code,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrAlreadyUsed
}

func (r *PostgresInvitationRepository) get(ctx context.Context, query, arg string) (*domain.Invitation, error) {
	var inv domain.Invitation
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&inv.Code, &inv.Email, &inv.SentAt, &inv.SentBy, &inv.UsedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
