package repo

import (
	"context"
	"strconv"
	"strings"

	dom "taskmanager/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `t.id, t.user_id, t.category_id, t.title, t.description, t.due_date,
	t.priority, t.status, t.created_at, t.updated_at`

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) List(ctx context.Context, userID int64, f dom.TaskFilter) ([]dom.Task, error) {
	where := []string{"t.user_id = $1"}
	args := []any{userID}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.CategoryID != nil {
		where = append(where, "t.category_id = "+arg(*f.CategoryID))
	}
	if f.Priority != nil {
		where = append(where, "t.priority = "+arg(*f.Priority))
	}
	if f.Status != nil {
		where = append(where, "t.status = "+arg(*f.Status))
	}
	if f.Search != "" {
		p := arg(likePattern(f.Search))
		where = append(where, "(t.title ILIKE "+p+" OR t.description ILIKE "+p+" OR c.name ILIKE "+p+")")
	}
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t LEFT JOIN categories c ON c.id = t.category_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ` + taskOrderBy(f.Ordering)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, scanTask)
	if err != nil {
		return nil, err
	}
	if err := loadTags(ctx, r.db, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PGTaskRepo) GetByID(ctx context.Context, userID, id int64) (dom.Task, error) {
	return getTask(ctx, r.db, userID, id)
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task, tagIDs []int64) (dom.Task, error) {
	var out dom.Task
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO tasks (user_id, category_id, title, description, due_date, priority, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			t.UserID, t.CategoryID, t.Title, t.Description, t.DueDate, t.Priority, t.Status,
		).Scan(&id)
		if err != nil {
			return err
		}
		if tagIDs != nil {
			if err := replaceTaskTags(ctx, tx, t.UserID, id, &tagIDs); err != nil {
				return err
			}
		}
		out, err = getTask(ctx, tx, t.UserID, id)
		return err
	})
	return out, pgErr(err)
}

func (r *PGTaskRepo) Update(ctx context.Context, t dom.Task, tagIDs *[]int64) (dom.Task, error) {
	var out dom.Task
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE tasks SET category_id = $3, title = $4, description = $5, due_date = $6,
				priority = $7, status = $8, updated_at = NOW()
			WHERE id = $1 AND user_id = $2`,
			t.ID, t.UserID, t.CategoryID, t.Title, t.Description, t.DueDate, t.Priority, t.Status,
		)
		if err := affectedOrNotFound(tag, err); err != nil {
			return err
		}
		if err := replaceTaskTags(ctx, tx, t.UserID, t.ID, tagIDs); err != nil {
			return err
		}
		out, err = getTask(ctx, tx, t.UserID, t.ID)
		return err
	})
	return out, pgErr(err)
}

func (r *PGTaskRepo) Delete(ctx context.Context, userID, id int64) error {
	return affectedOrNotFound(r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID))
}

// replaceTaskTags applies tag-set replace semantics inside tx: nil skips,
// empty clears, otherwise the set becomes exactly the user's tags among tagIDs.
func replaceTaskTags(ctx context.Context, tx pgx.Tx, userID, taskID int64, tagIDs *[]int64) error {
	if tagIDs == nil {
		return nil
	}
	if _, err := tx.Exec(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID); err != nil {
		return err
	}
	ids := uniqueIDs(*tagIDs)
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO task_tags (task_id, tag_id)
		SELECT $1, id FROM tags WHERE user_id = $2 AND id = ANY($3)`,
		taskID, userID, ids,
	)
	return err
}

func getTask(ctx context.Context, q querier, userID, id int64) (dom.Task, error) {
	rows, err := q.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks t WHERE t.id = $1 AND t.user_id = $2`, id, userID)
	if err != nil {
		return dom.Task{}, err
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanTask)
	if err != nil {
		return dom.Task{}, pgErr(err)
	}
	list := []dom.Task{t}
	if err := loadTags(ctx, q, list); err != nil {
		return dom.Task{}, err
	}
	return list[0], nil
}

// loadTags fills Tags for every task in list with a single query.
func loadTags(ctx context.Context, q querier, list []dom.Task) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int64, len(list))
	index := make(map[int64]int, len(list))
	for i := range list {
		ids[i] = list[i].ID
		index[list[i].ID] = i
		list[i].Tags = []dom.Tag{}
	}
	rows, err := q.Query(ctx, `
		SELECT tt.task_id, g.id, g.user_id, g.name
		FROM task_tags tt JOIN tags g ON g.id = tt.tag_id
		WHERE tt.task_id = ANY($1)
		ORDER BY g.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var taskID int64
		var g dom.Tag
		if err := rows.Scan(&taskID, &g.ID, &g.UserID, &g.Name); err != nil {
			return err
		}
		i := index[taskID]
		list[i].Tags = append(list[i].Tags, g)
	}
	return rows.Err()
}

func scanTask(row pgx.CollectableRow) (dom.Task, error) {
	var t dom.Task
	err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Title, &t.Description, &t.DueDate,
		&t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
