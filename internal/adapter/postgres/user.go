package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/internal/domain/types"
	pgutil "github.com/fareline/fareline/pkg/postgres"
	"github.com/fareline/fareline/pkg/uuid"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user row. It expects u.Name, u.Email, and
// u.PasswordHash to be set.
func (r *UserRepo) Create(ctx context.Context, u *models.User) (uuid.UUID, error) {
	if u == nil {
		return uuid.UUID{}, errors.New("nil user")
	}

	const q = `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at;
	`

	var id uuid.UUID
	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(
		ctx, q, uuid.New(), u.Name, u.Email, u.PasswordHash,
	).Scan(&id, &u.CreatedAt, &u.UpdatedAt)
	r.record("insert_user", start, err)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return uuid.UUID{}, types.ErrDuplicateUser
		}
		return uuid.UUID{}, err
	}

	u.ID = id
	return id, nil
}

// GetByEmail fetches by email (unique). A missing user is (nil, nil).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	const q = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1;
	`

	var u models.User
	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	r.record("select_user_by_email", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// GetByID fetches by UUID id. A missing user is (nil, nil).
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id.IsNil() {
		return nil, errors.New("id is required")
	}

	const q = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1;
	`

	var u models.User
	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	r.record("select_user_by_id", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}
