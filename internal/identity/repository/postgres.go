package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"alumni-network/backend/internal/identity/domain"
)

// PostgresAccountRepository implements AccountRepository on Postgres.
type PostgresAccountRepository struct {
	db *sql.DB
}

// NewPostgresAccountRepository returns a Postgres-backed account repository.
func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (uid, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		account.UID, account.Email, account.PasswordHash, account.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *PostgresAccountRepository) GetByUID(ctx context.Context, uid string) (*domain.Account, error) {
	return r.get(ctx, `SELECT uid, email, password_hash, created_at, disabled_at FROM accounts WHERE uid = $1`, uid)
}

func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.get(ctx, `SELECT uid, email, password_hash, created_at, disabled_at FROM accounts WHERE email = $1`, email)
}

func (r *PostgresAccountRepository) get(ctx context.Context, query, arg string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.UID, &account.Email, &account.PasswordHash, &account.CreatedAt, &account.DisabledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
