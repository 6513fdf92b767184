package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
	"github.com/iliyamo/clinic-review-platform/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a freshly hashed password. The email is
// normalized to lowercase before the write so the unique index treats
// addresses case-insensitively.
func (r *UserRepo) Create(ctx context.Context, id, name, email, password, role, avatar string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Avatar:       avatar,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id,name,email,password_hash,role,avatar,created_at) VALUES (?,?,?,?,?,?,?)",
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Avatar, encodeTime(u.CreatedAt))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT id,name,email,password_hash,role,avatar,created_at FROM users WHERE lower(email)=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(ctx, "SELECT id,name,email,password_hash,role,avatar,created_at FROM users WHERE id=? LIMIT 1", id)
}

// UpdateRole switches an account between patient and clinic roles,
// replacing the role badge along with it.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role, avatar string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET role=?, avatar=? WHERE id=?", role, avatar, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (model.User, error) {
	var (
		u   model.User
		raw string
	)
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Avatar, &raw)
	if err != nil {
		return model.User{}, err
	}
	u.CreatedAt = decodeTime(raw)
	return u, nil
}
