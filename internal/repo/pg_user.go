package repo

import (
	"context"

	dom "taskmanager/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, password_hash, is_active, date_joined`

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername returns the user by username.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// Create inserts a new user and returns it.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	return r.scanOne(ctx, query, u.Username, u.Email, u.PasswordHash, u.IsActive)
}

// Delete removes the user; categories, tags, tasks and subtasks go with it
// through ON DELETE CASCADE.
func (r *PGUserRepo) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (r *PGUserRepo) scanOne(ctx context.Context, query string, args ...any) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.DateJoined,
	)
	return u, pgErr(err)
}
