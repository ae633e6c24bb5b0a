package repo

import (
	"context"

	dom "taskmanager/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PGTagRepo struct {
	db *pgxpool.Pool
}

func NewPGTagRepo(db *pgxpool.Pool) *PGTagRepo {
	return &PGTagRepo{db: db}
}

func (r *PGTagRepo) List(ctx context.Context, userID int64) ([]dom.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name FROM tags WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Tag{}
	for rows.Next() {
		var t dom.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTagRepo) GetByID(ctx context.Context, userID, id int64) (dom.Tag, error) {
	var t dom.Tag
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name FROM tags WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&t.ID, &t.UserID, &t.Name)
	return t, pgErr(err)
}

func (r *PGTagRepo) OwnedIDs(ctx context.Context, userID int64, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT id FROM tags WHERE user_id = $1 AND id = ANY($2) ORDER BY id`, userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PGTagRepo) Create(ctx context.Context, t dom.Tag) (dom.Tag, error) {
	var out dom.Tag
	err := r.db.QueryRow(ctx,
		`INSERT INTO tags (user_id, name) VALUES ($1, $2) RETURNING id, user_id, name`,
		t.UserID, t.Name,
	).Scan(&out.ID, &out.UserID, &out.Name)
	return out, pgErr(err)
}

func (r *PGTagRepo) Update(ctx context.Context, t dom.Tag) (dom.Tag, error) {
	var out dom.Tag
	err := r.db.QueryRow(ctx,
		`UPDATE tags SET name = $3 WHERE id = $1 AND user_id = $2 RETURNING id, user_id, name`,
		t.ID, t.UserID, t.Name,
	).Scan(&out.ID, &out.UserID, &out.Name)
	return out, pgErr(err)
}

func (r *PGTagRepo) Delete(ctx context.Context, userID, id int64) error {
	return affectedOrNotFound(r.db.Exec(ctx,
		`DELETE FROM tags WHERE id = $1 AND user_id = $2`, id, userID))
}
