// Package pgstore provides a PostgreSQL-backed AccountStore over database/sql
// with the pgx stdlib driver. Schema management uses embedded goose migrations
// applied by [Open].
package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	niceAuth "github.com/MrEthical07/niceAuth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const pgUniqueViolation = "23505"

// Store defines a public type used by niceAuth APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	db *sql.DB
}

// New wraps an existing database handle without running migrations. Intended
// for callers that manage the schema themselves and for tests.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL with the pgx stdlib driver and applies the
// embedded migrations before returning the store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Close() error {
	return s.db.Close()
}

const accountColumns = `id, email, name, password_hash, is_verified,
	verify_otp, verify_otp_expires_at, reset_otp, reset_otp_expires_at, created_at`

// FindByEmail describes the findbyemail operation and its observable behavior.
//
// FindByEmail may return an error when input validation, dependency calls, or security checks fail.
// FindByEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindByEmail(ctx context.Context, email string) (*niceAuth.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

// FindByID describes the findbyid operation and its observable behavior.
//
// FindByID may return an error when input validation, dependency calls, or security checks fail.
// FindByID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindByID(ctx context.Context, id string) (*niceAuth.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
// Create does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Create(ctx context.Context, account *niceAuth.Account) (*niceAuth.Account, error) {
	created := *account
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		created.ID,
		created.Email,
		created.Name,
		created.PasswordHash,
		created.IsVerified,
		created.VerifyOTP,
		created.VerifyOTPExpiresAt,
		created.ResetOTP,
		created.ResetOTPExpiresAt,
		created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, niceAuth.ErrDuplicateEmail
		}
		return nil, err
	}

	out := created
	return &out, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Save(ctx context.Context, account *niceAuth.Account) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET
			email = $2,
			name = $3,
			password_hash = $4,
			is_verified = $5,
			verify_otp = $6,
			verify_otp_expires_at = $7,
			reset_otp = $8,
			reset_otp_expires_at = $9
		 WHERE id = $1`,
		account.ID,
		account.Email,
		account.Name,
		account.PasswordHash,
		account.IsVerified,
		account.VerifyOTP,
		account.VerifyOTPExpiresAt,
		account.ResetOTP,
		account.ResetOTPExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return niceAuth.ErrDuplicateEmail
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return niceAuth.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (*niceAuth.Account, error) {
	var a niceAuth.Account
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.PasswordHash,
		&a.IsVerified,
		&a.VerifyOTP,
		&a.VerifyOTPExpiresAt,
		&a.ResetOTP,
		&a.ResetOTPExpiresAt,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, niceAuth.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
