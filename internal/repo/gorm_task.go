package repo

import (
	"context"
	"strings"

	dom "taskmanager/internal/domain"

	"gorm.io/gorm"
)

type GormTaskRepo struct {
	db *gorm.DB
}

func NewGormTaskRepo(db *gorm.DB) *GormTaskRepo {
	return &GormTaskRepo{db: db}
}

func (r *GormTaskRepo) List(ctx context.Context, userID int64, f dom.TaskFilter) ([]dom.Task, error) {
	q := r.db.WithContext(ctx).Table("tasks AS t").Select("t.*").
		Joins("LEFT JOIN categories c ON c.id = t.category_id").
		Where("t.user_id = ?", userID)
	if f.CategoryID != nil {
		q = q.Where("t.category_id = ?", *f.CategoryID)
	}
	if f.Priority != nil {
		q = q.Where("t.priority = ?", *f.Priority)
	}
	if f.Status != nil {
		q = q.Where("t.status = ?", *f.Status)
	}
	if f.Search != "" {
		p := strings.ToLower(likePattern(f.Search))
		q = q.Where(`(casefold(t.title) LIKE ? ESCAPE '\' OR casefold(t.description) LIKE ? ESCAPE '\'`+
			` OR casefold(coalesce(c.name, '')) LIKE ? ESCAPE '\')`, p, p, p)
	}
	var rows []taskRow
	if err := q.Order(taskOrderBy(f.Ordering)).Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]dom.Task, len(rows))
	for i := range rows {
		list[i] = rows[i].toDomain()
	}
	if err := gormLoadTags(r.db.WithContext(ctx), list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormTaskRepo) GetByID(ctx context.Context, userID, id int64) (dom.Task, error) {
	return gormGetTask(r.db.WithContext(ctx), userID, id)
}

func (r *GormTaskRepo) Create(ctx context.Context, t dom.Task, tagIDs []int64) (dom.Task, error) {
	var out dom.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := taskRow{
			UserID:      t.UserID,
			CategoryID:  t.CategoryID,
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.DueDate,
			Priority:    t.Priority,
			Status:      t.Status,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if tagIDs != nil {
			if err := gormReplaceTaskTags(tx, t.UserID, row.ID, &tagIDs); err != nil {
				return err
			}
		}
		var err error
		out, err = gormGetTask(tx, t.UserID, row.ID)
		return err
	})
	return out, gormErr(err)
}

func (r *GormTaskRepo) Update(ctx context.Context, t dom.Task, tagIDs *[]int64) (dom.Task, error) {
	var out dom.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&taskRow{}).
			Where("id = ? AND user_id = ?", t.ID, t.UserID).
			Updates(map[string]any{
				"category_id": t.CategoryID,
				"title":       t.Title,
				"description": t.Description,
				"due_date":    t.DueDate,
				"priority":    t.Priority,
				"status":      t.Status,
				"updated_at":  tx.NowFunc(),
			})
		if err := affectedOrNotFoundGorm(res); err != nil {
			return err
		}
		if err := gormReplaceTaskTags(tx, t.UserID, t.ID, tagIDs); err != nil {
			return err
		}
		var err error
		out, err = gormGetTask(tx, t.UserID, t.ID)
		return err
	})
	return out, gormErr(err)
}

func (r *GormTaskRepo) Delete(ctx context.Context, userID, id int64) error {
	return affectedOrNotFoundGorm(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).Delete(&taskRow{}))
}

// gormReplaceTaskTags is the gorm twin of replaceTaskTags.
func gormReplaceTaskTags(tx *gorm.DB, userID, taskID int64, tagIDs *[]int64) error {
	if tagIDs == nil {
		return nil
	}
	if err := tx.Exec(`DELETE FROM task_tags WHERE task_id = ?`, taskID).Error; err != nil {
		return err
	}
	ids := uniqueIDs(*tagIDs)
	if len(ids) == 0 {
		return nil
	}
	return tx.Exec(`
		INSERT INTO task_tags (task_id, tag_id)
		SELECT ?, id FROM tags WHERE user_id = ? AND id IN ?`,
		taskID, userID, ids,
	).Error
}

func gormGetTask(db *gorm.DB, userID, id int64) (dom.Task, error) {
	var row taskRow
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		return dom.Task{}, gormErr(err)
	}
	list := []dom.Task{row.toDomain()}
	if err := gormLoadTags(db, list); err != nil {
		return dom.Task{}, err
	}
	return list[0], nil
}

type taskTagLink struct {
	TaskID int64
	ID     int64
	UserID int64
	Name   string
}

func gormLoadTags(db *gorm.DB, list []dom.Task) error {
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
	var links []taskTagLink
	err := db.Table("task_tags AS tt").
		Select("tt.task_id, g.id, g.user_id, g.name").
		Joins("JOIN tags g ON g.id = tt.tag_id").
		Where("tt.task_id IN ?", ids).
		Order("g.id").
		Scan(&links).Error
	if err != nil {
		return err
	}
	for _, l := range links {
		i := index[l.TaskID]
		list[i].Tags = append(list[i].Tags, dom.Tag{ID: l.ID, UserID: l.UserID, Name: l.Name})
	}
	return nil
}
