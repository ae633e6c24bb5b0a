package repo

import (
	"context"

	dom "taskmanager/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGSubtaskRepo struct {
	db *pgxpool.Pool
}

func NewPGSubtaskRepo(db *pgxpool.Pool) *PGSubtaskRepo {
	return &PGSubtaskRepo{db: db}
}

func (r *PGSubtaskRepo) List(ctx context.Context, userID int64, taskID *int64) ([]dom.Subtask, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.task_id, s.description, s.is_completed
		FROM subtasks s JOIN tasks t ON t.id = s.task_id
		WHERE t.user_id = $1 AND ($2::BIGINT IS NULL OR s.task_id = $2)
		ORDER BY s.id`, userID, taskID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanSubtask)
}

func (r *PGSubtaskRepo) GetByID(ctx context.Context, userID, id int64) (dom.Subtask, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.task_id, s.description, s.is_completed
		FROM subtasks s JOIN tasks t ON t.id = s.task_id
		WHERE s.id = $1 AND t.user_id = $2`, id, userID)
	if err != nil {
		return dom.Subtask{}, err
	}
	s, err := pgx.CollectExactlyOneRow(rows, scanSubtask)
	return s, pgErr(err)
}

func (r *PGSubtaskRepo) TaskOwned(ctx context.Context, userID, taskID int64) (bool, error) {
	var owned bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2)`, taskID, userID).Scan(&owned)
	return owned, err
}

// Create inserts only if the parent task belongs to userID.
func (r *PGSubtaskRepo) Create(ctx context.Context, userID int64, s dom.Subtask) (dom.Subtask, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO subtasks (task_id, description, is_completed)
		SELECT t.id, $3, $4 FROM tasks t WHERE t.id = $1 AND t.user_id = $2
		RETURNING id, task_id, description, is_completed`,
		s.TaskID, userID, s.Description, s.IsCompleted)
	if err != nil {
		return dom.Subtask{}, err
	}
	out, err := pgx.CollectExactlyOneRow(rows, scanSubtask)
	return out, pgErr(err)
}

func (r *PGSubtaskRepo) Update(ctx context.Context, userID int64, s dom.Subtask) (dom.Subtask, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE subtasks s SET description = $3, is_completed = $4
		FROM tasks t
		WHERE s.id = $1 AND t.id = s.task_id AND t.user_id = $2
		RETURNING s.id, s.task_id, s.description, s.is_completed`,
		s.ID, userID, s.Description, s.IsCompleted)
	if err != nil {
		return dom.Subtask{}, err
	}
	out, err := pgx.CollectExactlyOneRow(rows, scanSubtask)
	return out, pgErr(err)
}

func (r *PGSubtaskRepo) Delete(ctx context.Context, userID, id int64) error {
	return affectedOrNotFound(r.db.Exec(ctx, `
		DELETE FROM subtasks s USING tasks t
		WHERE s.id = $1 AND t.id = s.task_id AND t.user_id = $2`, id, userID))
}

func scanSubtask(row pgx.CollectableRow) (dom.Subtask, error) {
	var s dom.Subtask
	err := row.Scan(&s.ID, &s.TaskID, &s.Description, &s.IsCompleted)
	return s, err
}
