package repo

import (
	"context"

	dom "taskmanager/internal/domain"

	"gorm.io/gorm"
)

type GormSubtaskRepo struct {
	db *gorm.DB
}

func NewGormSubtaskRepo(db *gorm.DB) *GormSubtaskRepo {
	return &GormSubtaskRepo{db: db}
}

func (r *GormSubtaskRepo) owned(ctx context.Context, userID int64) *gorm.DB {
	return r.db.WithContext(ctx).Model(&subtaskRow{}).
		Select("subtasks.*").
		Joins("JOIN tasks ON tasks.id = subtasks.task_id").
		Where("tasks.user_id = ?", userID)
}

func (r *GormSubtaskRepo) List(ctx context.Context, userID int64, taskID *int64) ([]dom.Subtask, error) {
	q := r.owned(ctx, userID)
	if taskID != nil {
		q = q.Where("subtasks.task_id = ?", *taskID)
	}
	var rows []subtaskRow
	if err := q.Order("subtasks.id").Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]dom.Subtask, len(rows))
	for i := range rows {
		list[i] = rows[i].toDomain()
	}
	return list, nil
}

func (r *GormSubtaskRepo) GetByID(ctx context.Context, userID, id int64) (dom.Subtask, error) {
	var row subtaskRow
	if err := r.owned(ctx, userID).Where("subtasks.id = ?", id).First(&row).Error; err != nil {
		return dom.Subtask{}, gormErr(err)
	}
	return row.toDomain(), nil
}

func (r *GormSubtaskRepo) TaskOwned(ctx context.Context, userID, taskID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&taskRow{}).
		Where("id = ? AND user_id = ?", taskID, userID).Count(&n).Error
	return n > 0, err
}

func (r *GormSubtaskRepo) Create(ctx context.Context, userID int64, s dom.Subtask) (dom.Subtask, error) {
	row := subtaskRow{TaskID: s.TaskID, Description: s.Description, IsCompleted: s.IsCompleted}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&taskRow{}).Where("id = ? AND user_id = ?", s.TaskID, userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return dom.Subtask{}, gormErr(err)
	}
	return row.toDomain(), nil
}

func (r *GormSubtaskRepo) Update(ctx context.Context, userID int64, s dom.Subtask) (dom.Subtask, error) {
	res := r.db.WithContext(ctx).Model(&subtaskRow{}).
		Where("id = ? AND task_id IN (?)", s.ID, r.ownedTaskIDs(ctx, userID)).
		Updates(map[string]any{"description": s.Description, "is_completed": s.IsCompleted})
	if err := affectedOrNotFoundGorm(res); err != nil {
		return dom.Subtask{}, err
	}
	return r.GetByID(ctx, userID, s.ID)
}

func (r *GormSubtaskRepo) Delete(ctx context.Context, userID, id int64) error {
	return affectedOrNotFoundGorm(r.db.WithContext(ctx).
		Where("id = ? AND task_id IN (?)", id, r.ownedTaskIDs(ctx, userID)).
		Delete(&subtaskRow{}))
}

func (r *GormSubtaskRepo) ownedTaskIDs(ctx context.Context, userID int64) *gorm.DB {
	return r.db.WithContext(ctx).Model(&taskRow{}).Select("id").Where("user_id = ?", userID)
}
