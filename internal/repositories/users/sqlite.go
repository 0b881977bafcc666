package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/melodica-app/melodica/internal/common"
	"github.com/melodica-app/melodica/internal/dbx"
	"github.com/melodica-app/melodica/internal/models"
	"github.com/melodica-app/melodica/internal/validation"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// isUniqueViolation reports whether err is the driver's UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, email, password_hash, salt) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted id: %w", err)
	}
	user.ID = id
	return user, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, salt FROM users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, salt FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return user, nil
}

func (r *SQLiteRepository) UpdateEmail(ctx context.Context, id int64, newEmail string) error {
	if !validation.ValidEmail(newEmail) {
		return fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE users SET email = ? WHERE id = ?`, newEmail, id)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update email: %w", err)
	}
	return requireOneRow(res)
}

func (r *SQLiteRepository) UpdateUsername(ctx context.Context, id int64, newUsername string) error {
	if !validation.ValidUsername(newUsername) {
		return fmt.Errorf("%w: username must be 1+ characters of letters, digits, spaces and dashes", common.ErrValidation)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE users SET username = ? WHERE id = ?`, newUsername, id)
	if err != nil {
		return fmt.Errorf("failed to update username: %w", err)
	}
	return requireOneRow(res)
}

// UpdatePassword writes hash and salt in one statement. The pairing is the
// core credential invariant; splitting it into two updates would open a
// window where a stored hash does not match its salt.
func (r *SQLiteRepository) UpdatePassword(ctx context.Context, id int64, newHash, newSalt string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, salt = ? WHERE id = ?`, newHash, newSalt, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}
