package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

const userColumns = `id, name, email, password_hash, is_verified, verification_otp, verification_otp_expiry, reset_token_hash, reset_token_expiry, created_at`

const insertUserQuery = `
INSERT INTO users (id, name, email, password_hash, is_verified, verification_otp, verification_otp_expiry, reset_token_hash, reset_token_expiry, created_at)
VALUES (:id, :name, :email, :password_hash, :is_verified, :verification_otp, :verification_otp_expiry, :reset_token_hash, :reset_token_expiry, :created_at);
`

const updateUserQuery = `
UPDATE users
SET name = :name, email = :email, password_hash = :password_hash, is_verified = :is_verified,
    verification_otp = :verification_otp, verification_otp_expiry = :verification_otp_expiry,
    reset_token_hash = :reset_token_hash, reset_token_expiry = :reset_token_expiry
WHERE id = :id;
`

type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID                    string         `db:"id"`
	Name                  string         `db:"name"`
	Email                 string         `db:"email"`
	PasswordHash          string         `db:"password_hash"`
	IsVerified            bool           `db:"is_verified"`
	VerificationOTP       sql.NullString `db:"verification_otp"`
	VerificationOTPExpiry sql.NullTime   `db:"verification_otp_expiry"`
	ResetTokenHash        sql.NullString `db:"reset_token_hash"`
	ResetTokenExpiry      sql.NullTime   `db:"reset_token_expiry"`
	CreatedAt             time.Time      `db:"created_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	_, err := r.db.NamedExecContext(ctx, insertUserQuery, mapDomainUserToRow(user))
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?;`, email)
}

func (r *UserRepository) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (domain.User, error) {
	return r.getUser(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token_hash = ? AND reset_token_expiry > ?;`,
		tokenHash, now,
	)
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	res, err := r.db.NamedExecContext(ctx, updateUserQuery, mapDomainUserToRow(user))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	// Unchanged rows report zero affected rows on MySQL, so only a failed
	// lookup is treated as missing.
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		var count int
		if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE id = ?;`, user.ID); err != nil {
			return fmt.Errorf("select user: %w", err)
		}
		if count == 0 {
			return domain.ErrUserNotFound
		}
	}
	return nil
}

func (r *UserRepository) getUser(ctx context.Context, query string, args ...any) (domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	return mapUserRowToDomain(row), nil
}

func mapUserRowToDomain(row userRow) domain.User {
	return domain.User{
		ID:                    row.ID,
		Name:                  row.Name,
		Email:                 row.Email,
		PasswordHash:          row.PasswordHash,
		IsVerified:            row.IsVerified,
		VerificationOTP:       nullStringPtr(row.VerificationOTP),
		VerificationOTPExpiry: nullTimePtr(row.VerificationOTPExpiry),
		ResetTokenHash:        nullStringPtr(row.ResetTokenHash),
		ResetTokenExpiry:      nullTimePtr(row.ResetTokenExpiry),
		CreatedAt:             row.CreatedAt,
	}
}

func mapDomainUserToRow(user domain.User) userRow {
	row := userRow{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
	}
	if user.VerificationOTP != nil {
		row.VerificationOTP = sql.NullString{String: *user.VerificationOTP, Valid: true}
	}
	if user.VerificationOTPExpiry != nil {
		row.VerificationOTPExpiry = sql.NullTime{Time: *user.VerificationOTPExpiry, Valid: true}
	}
	if user.ResetTokenHash != nil {
		row.ResetTokenHash = sql.NullString{String: *user.ResetTokenHash, Valid: true}
	}
	if user.ResetTokenExpiry != nil {
		row.ResetTokenExpiry = sql.NullTime{Time: *user.ResetTokenExpiry, Valid: true}
	}
	return row
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}
