package domain

import "time"

const (
	DefaultTaskStatus   = "To Do"
	DefaultTaskPriority = 0
)

// Domain entity: бизнес-объект (истина).
// Не зависит от Gin, Postgres, Redis.
type Task struct {
	ID          int64
	UserID      int64
	CategoryID  *int64
	Title       string
	Description string
	DueDate     *time.Time
	Priority    int
	Status      string
	Tags        []Tag

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskPatch carries the fields of an update. A nil pointer leaves the column
// untouched; the Clear* flags null out the nullable ones.
type TaskPatch struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	ClearDueDate  bool
	Priority      *int
	Status        *string
	CategoryID    *int64
	ClearCategory bool
}

// TaskFilter holds the list query: exact-match filters, free-text search and
// ordering keys such as "priority" or "-due_date".
type TaskFilter struct {
	CategoryID *int64
	Priority   *int
	Status     *string
	Search     string
	Ordering   []string
}

// Apply copies the set fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.ClearCategory {
		t.CategoryID = nil
	} else if p.CategoryID != nil {
		id := *p.CategoryID
		t.CategoryID = &id
	}
}
