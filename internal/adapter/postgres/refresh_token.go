package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/pkg/uuid"
)

type RefreshTokenRepo struct {
	db *pgxpool.Pool
}

func NewRefreshTokenRepo(db *pgxpool.Pool) *RefreshTokenRepo {
	return &RefreshTokenRepo{db: db}
}

func (r *RefreshTokenRepo) Save(ctx context.Context, record *models.RefreshTokenRecord) error {
	if record == nil {
		return errors.New("refresh token record is nil")
	}

	const q = `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked, created_at)
		VALUES ($1, $2, $3, $4, false, $5);
	`

	start := time.Now()
	_, err := TxorDB(ctx, r.db).Exec(ctx, q, record.ID, record.UserID, record.TokenHash, record.ExpiresAt, record.CreatedAt)
	r.record("insert_refresh_token", start, err)
	return err
}

func (r *RefreshTokenRepo) Get(ctx context.Context, tokenID uuid.UUID) (*models.RefreshTokenRecord, error) {
	const q = `
		SELECT id, user_id, token_hash, expires_at, revoked, created_at
		FROM refresh_tokens
		WHERE id = $1;
	`

	var rec models.RefreshTokenRecord
	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, tokenID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.TokenHash,
		&rec.ExpiresAt,
		&rec.Revoked,
		&rec.CreatedAt,
	)
	r.record("select_refresh_token", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &rec, nil
}

func (r *RefreshTokenRepo) MarkUsed(ctx context.Context, tokenID uuid.UUID) error {
	const q = `
		UPDATE refresh_tokens
		SET revoked = true,
		    last_used_at = $2
		WHERE id = $1;
	`

	start := time.Now()
	_, err := TxorDB(ctx, r.db).Exec(ctx, q, tokenID, time.Now().UTC())
	r.record("update_refresh_token_revoked", start, err)
	return err
}
