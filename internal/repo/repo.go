// Package repo holds the persistence layer. Every read and write on user-owned
// data takes the owner's id as an argument; there is no ambient current user.
package repo

import (
	"context"
	"errors"
	"strings"

	dom "taskmanager/internal/domain"
)

var (
	// ErrNotFound is returned when a row does not exist or is not owned by the
	// given user.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on a unique constraint violation.
	ErrConflict = errors.New("conflict")
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	Create(ctx context.Context, u dom.User) (dom.User, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryRepo interface {
	List(ctx context.Context, userID int64) ([]dom.Category, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Category, error)
	Create(ctx context.Context, c dom.Category) (dom.Category, error)
	Update(ctx context.Context, c dom.Category) (dom.Category, error)
	Delete(ctx context.Context, userID, id int64) error
}

type TagRepo interface {
	List(ctx context.Context, userID int64) ([]dom.Tag, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Tag, error)
	// OwnedIDs returns the subset of ids that exist and belong to userID.
	OwnedIDs(ctx context.Context, userID int64, ids []int64) ([]int64, error)
	Create(ctx context.Context, t dom.Tag) (dom.Tag, error)
	Update(ctx context.Context, t dom.Tag) (dom.Tag, error)
	Delete(ctx context.Context, userID, id int64) error
}

// TaskRepo persists tasks together with their tag sets.
//
// Create and Update write the task row and its tag set in one transaction.
// tagIDs follows replaceTaskTags semantics: nil leaves the set untouched, an
// empty slice clears it, anything else replaces it. Tag ids not owned by the
// task's user are never linked.
type TaskRepo interface {
	List(ctx context.Context, userID int64, f dom.TaskFilter) ([]dom.Task, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Task, error)
	Create(ctx context.Context, t dom.Task, tagIDs []int64) (dom.Task, error)
	Update(ctx context.Context, t dom.Task, tagIDs *[]int64) (dom.Task, error)
	Delete(ctx context.Context, userID, id int64) error
}

// SubtaskRepo scopes subtasks through the owner of their parent task.
type SubtaskRepo interface {
	List(ctx context.Context, userID int64, taskID *int64) ([]dom.Subtask, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Subtask, error)
	// TaskOwned reports whether taskID exists and belongs to userID.
	TaskOwned(ctx context.Context, userID, taskID int64) (bool, error)
	// Create returns ErrNotFound when s.TaskID is missing or owned by someone else.
	Create(ctx context.Context, userID int64, s dom.Subtask) (dom.Subtask, error)
	Update(ctx context.Context, userID int64, s dom.Subtask) (dom.Subtask, error)
	Delete(ctx context.Context, userID, id int64) error
}

var taskOrderColumns = map[string]string{
	"due_date":   "t.due_date",
	"priority":   "t.priority",
	"created_at": "t.created_at",
}

// taskOrderBy turns ordering keys into an ORDER BY list. Unknown keys are
// skipped and t.id is always the last tie-breaker.
func taskOrderBy(keys []string) string {
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		desc := strings.HasPrefix(k, "-")
		col, ok := taskOrderColumns[strings.TrimPrefix(k, "-")]
		if !ok {
			continue
		}
		if desc {
			parts = append(parts, col+" DESC")
		} else {
			parts = append(parts, col+" ASC")
		}
	}
	return strings.Join(append(parts, "t.id ASC"), ", ")
}

// likePattern builds a substring pattern with LIKE metacharacters escaped by
// a backslash.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
