// Package postgres implements auth.UserStore on PostgreSQL via pgx. The
// users table carries a unique index on email; unique violations surface as
// auth.ErrEmailTaken so the account linker can resolve concurrent-create
// races. Schema migrations are embedded and applied with goose.
package postgres

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightpath/authkit/pkg/auth"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations exposes the embedded schema migrations for pg.Migrate.
func Migrations() embed.FS {
	return migrationsFS
}

const uniqueViolationCode = "23505"

const userColumns = `id, name, first_name, last_name, email, password_hash, image,
	provider, provider_account_id, email_verified_at, created_at, updated_at`

// Store is a PostgreSQL-backed user store.
type Store struct {
	pool *pgxpool.Pool
}

// New creates the store over an established connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) FindByEmailOrProvider(ctx context.Context, email, provider, providerAccountID string) (*auth.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
		   OR ($2 <> '' AND $3 <> '' AND provider = $2 AND provider_account_id = $3)
		LIMIT 1`,
		email, provider, providerAccountID,
	)
	return scanUser(row)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (s *Store) FindByID(ctx context.Context, id string) (*auth.User, error) {
	// Hydration path: select NULL in place of the hash column.
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, first_name, last_name, email, NULL::bytea, image,
			provider, provider_account_id, email_verified_at, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (s *Store) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	now := time.Now()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (
			id, name, first_name, last_name, email, password_hash, image,
			provider, provider_account_id, email_verified_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING `+userColumns,
		uuid.NewString(),
		user.Name,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Image,
		user.Provider,
		user.ProviderAccountID,
		user.EmailVerifiedAt,
		now,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, auth.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

func (s *Store) Update(ctx context.Context, id string, params auth.UpdateUserParams) (*auth.User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users SET
			name                = COALESCE($2, name),
			image               = COALESCE($3, image),
			provider            = COALESCE($4, provider),
			provider_account_id = COALESCE($5, provider_account_id),
			updated_at          = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, params.Name, params.Image, params.Provider, params.ProviderAccountID,
	)
	return scanUser(row)
}

func (s *Store) ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Image,
		&u.Provider,
		&u.ProviderAccountID,
		&u.EmailVerifiedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Compile-time interface assertion
var _ auth.UserStore = (*Store)(nil)
