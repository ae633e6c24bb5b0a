package repo

import (
	"errors"
	"time"

	dom "taskmanager/internal/domain"

	"gorm.io/gorm"
)

// Row types map the migrated schema for gorm; the schema itself is owned by
// the goose migrations, never by AutoMigrate.

type userRow struct {
	ID           int64 `gorm:"primaryKey"`
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	DateJoined   time.Time
}

func (userRow) TableName() string { return "users" }

func (r userRow) toDomain() dom.User {
	return dom.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		IsActive:     r.IsActive,
		DateJoined:   r.DateJoined,
	}
}

type categoryRow struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64
	Name   string
	Color  string
}

func (categoryRow) TableName() string { return "categories" }

func (r categoryRow) toDomain() dom.Category {
	return dom.Category{ID: r.ID, UserID: r.UserID, Name: r.Name, Color: r.Color}
}

type tagRow struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64
	Name   string
}

func (tagRow) TableName() string { return "tags" }

func (r tagRow) toDomain() dom.Tag {
	return dom.Tag{ID: r.ID, UserID: r.UserID, Name: r.Name}
}

type taskRow struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      int64
	CategoryID  *int64
	Title       string
	Description string
	DueDate     *time.Time
	Priority    int
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskRow) TableName() string { return "tasks" }

func (r taskRow) toDomain() dom.Task {
	return dom.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
		Status:      r.Status,
		Tags:        []dom.Tag{},
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type subtaskRow struct {
	ID          int64 `gorm:"primaryKey"`
	TaskID      int64
	Description string
	IsCompleted bool
}

func (subtaskRow) TableName() string { return "subtasks" }

func (r subtaskRow) toDomain() dom.Subtask {
	return dom.Subtask{ID: r.ID, TaskID: r.TaskID, Description: r.Description, IsCompleted: r.IsCompleted}
}

// gormErr maps gorm errors onto the package sentinels.
func gormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}

func affectedOrNotFoundGorm(res *gorm.DB) error {
	if res.Error != nil {
		return gormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
