package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrNotFound = errors.New("user not found")

// ErrUniqueViolation reports a duplicate username or email.
var ErrUniqueViolation = errors.New("username or email already in use")

func Create(ctx context.Context, db sqlx.ExtContext, usr User) error {
	const q = `
	INSERT INTO users
		(user_id, username, email, password_hash, role, is_active, created_at, updated_at)
	VALUES
		(:user_id, :username, :email, :password_hash, :role, :is_active, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, usr); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrUniqueViolation
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (User, error) {
	const q = `SELECT * FROM users WHERE user_id = $1`

	var usr User
	if err := sqlx.GetContext(ctx, db, &usr, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("selecting user[%s]: %w", id, err)
	}

	return usr, nil
}

// FetchByLogin looks a user up by username or email.
func FetchByLogin(ctx context.Context, db sqlx.ExtContext, login string) (User, error) {
	const q = `SELECT * FROM users WHERE username = $1 OR email = lower($1)`

	var usr User
	if err := sqlx.GetContext(ctx, db, &usr, q, login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("selecting user by login: %w", err)
	}

	return usr, nil
}
