package repo

import (
	"context"

	dom "taskmanager/internal/domain"

	"gorm.io/gorm"
)

type GormCategoryRepo struct {
	db *gorm.DB
}

func NewGormCategoryRepo(db *gorm.DB) *GormCategoryRepo {
	return &GormCategoryRepo{db: db}
}

func (r *GormCategoryRepo) List(ctx context.Context, userID int64) ([]dom.Category, error) {
	var rows []categoryRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]dom.Category, len(rows))
	for i := range rows {
		list[i] = rows[i].toDomain()
	}
	return list, nil
}

func (r *GormCategoryRepo) GetByID(ctx context.Context, userID, id int64) (dom.Category, error) {
	var row categoryRow
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		return dom.Category{}, gormErr(err)
	}
	return row.toDomain(), nil
}

func (r *GormCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	row := categoryRow{UserID: c.UserID, Name: c.Name, Color: c.Color}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return dom.Category{}, gormErr(err)
	}
	return row.toDomain(), nil
}

func (r *GormCategoryRepo) Update(ctx context.Context, c dom.Category) (dom.Category, error) {
	res := r.db.WithContext(ctx).Model(&categoryRow{}).
		Where("id = ? AND user_id = ?", c.ID, c.UserID).
		Updates(map[string]any{"name": c.Name, "color": c.Color})
	if err := affectedOrNotFoundGorm(res); err != nil {
		return dom.Category{}, err
	}
	return r.GetByID(ctx, c.UserID, c.ID)
}

func (r *GormCategoryRepo) Delete(ctx context.Context, userID, id int64) error {
	return affectedOrNotFoundGorm(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).Delete(&categoryRow{}))
}
