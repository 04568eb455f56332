package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"
)

type userRepo struct{ *DB }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	repository.StampID(&u.ID)
	repository.StampTime(&u.CreatedAt)
	u.Email = strings.ToLower(u.Email)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, string(u.Role), toUnix(u.CreatedAt))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return repository.ErrDuplicate
	}
	return err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, `email = ?`, strings.ToLower(email))
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, `id = ?`, id)
}

func (r *userRepo) findOne(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User
	var role string
	var created int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, role, created_at FROM users WHERE `+where, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	u.CreatedAt = fromUnix(created)
	return &u, nil
}
