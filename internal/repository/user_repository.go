package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campuslabs/desk-reservation/internal/model"
)

// UserRepo reads user records. Users are provisioned and kept current
// by the institutional identity service; this application never writes
// the users table.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// GetByID looks a user up by primary key. Returns ErrUserNotFound when
// no row matches.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, pid, onyen, first_name, last_name, email, pronouns, role FROM users WHERE id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.PID, &u.Onyen, &u.FirstName, &u.LastName, &u.Email, &u.Pronouns, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByOnyen looks a user up by institutional login name.
func (r *UserRepo) GetByOnyen(ctx context.Context, onyen string) (*model.User, error) {
	const q = `SELECT id, pid, onyen, first_name, last_name, email, pronouns, role FROM users WHERE onyen = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, onyen).Scan(&u.ID, &u.PID, &u.Onyen, &u.FirstName, &u.LastName, &u.Email, &u.Pronouns, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
