package repo

import (
	"context"

	dom "taskmanager/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PGCategoryRepo struct {
	db *pgxpool.Pool
}

func NewPGCategoryRepo(db *pgxpool.Pool) *PGCategoryRepo {
	return &PGCategoryRepo{db: db}
}

func (r *PGCategoryRepo) List(ctx context.Context, userID int64) ([]dom.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, color FROM categories WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Category{}
	for rows.Next() {
		var c dom.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PGCategoryRepo) GetByID(ctx context.Context, userID, id int64) (dom.Category, error) {
	var c dom.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, color FROM categories WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Color)
	return c, pgErr(err)
}

func (r *PGCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	var out dom.Category
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (user_id, name, color) VALUES ($1, $2, $3)
		 RETURNING id, user_id, name, color`,
		c.UserID, c.Name, c.Color,
	).Scan(&out.ID, &out.UserID, &out.Name, &out.Color)
	return out, pgErr(err)
}

func (r *PGCategoryRepo) Update(ctx context.Context, c dom.Category) (dom.Category, error) {
	var out dom.Category
	err := r.db.QueryRow(ctx,
		`UPDATE categories SET name = $3, color = $4 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, color`,
		c.ID, c.UserID, c.Name, c.Color,
	).Scan(&out.ID, &out.UserID, &out.Name, &out.Color)
	return out, pgErr(err)
}

// Delete removes the category; tasks pointing at it keep existing with
// category_id set to NULL.
func (r *PGCategoryRepo) Delete(ctx context.Context, userID, id int64) error {
	return affectedOrNotFound(r.db.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID))
}
