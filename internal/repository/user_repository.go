package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/villa-booking/internal/model"
	"github.com/iliyamo/villa-booking/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrUsernameExists = errors.New("username already exists")

const userColumns = "id,username,password_hash,role,is_active,created_at,updated_at"

// Create hashes password and inserts the user, returning its ID.
func (r *UserRepo) Create(ctx context.Context, username, password, role string, cost int) (uint64, error) {
	username = normalizeUsername(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	id, err := insert(ctx, r.DB,
		"INSERT INTO users (username, password_hash, role) VALUES (?,?,?)",
		username, hash, role)
	if errors.Is(err, ErrConflict) {
		return 0, ErrUsernameExists
	}
	return id, err
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", normalizeUsername(username))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) getOne(ctx context.Context, q string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, q, arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
