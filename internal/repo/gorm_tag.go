package repo

import (
	"context"

	dom "taskmanager/internal/domain"

	"gorm.io/gorm"
)

type GormTagRepo struct {
	db *gorm.DB
}

func NewGormTagRepo(db *gorm.DB) *GormTagRepo {
	return &GormTagRepo{db: db}
}

func (r *GormTagRepo) List(ctx context.Context, userID int64) ([]dom.Tag, error) {
	var rows []tagRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]dom.Tag, len(rows))
	for i := range rows {
		list[i] = rows[i].toDomain()
	}
	return list, nil
}

func (r *GormTagRepo) GetByID(ctx context.Context, userID, id int64) (dom.Tag, error) {
	var row tagRow
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		return dom.Tag{}, gormErr(err)
	}
	return row.toDomain(), nil
}

func (r *GormTagRepo) OwnedIDs(ctx context.Context, userID int64, ids []int64) ([]int64, error) {
	out := []int64{}
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Model(&tagRow{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Order("id").Pluck("id", &out).Error
	return out, err
}

func (r *GormTagRepo) Create(ctx context.Context, t dom.Tag) (dom.Tag, error) {
	row := tagRow{UserID: t.UserID, Name: t.Name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return dom.Tag{}, gormErr(err)
	}
	return row.toDomain(), nil
}

func (r *GormTagRepo) Update(ctx context.Context, t dom.Tag) (dom.Tag, error) {
	res := r.db.WithContext(ctx).Model(&tagRow{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Update("name", t.Name)
	if err := affectedOrNotFoundGorm(res); err != nil {
		return dom.Tag{}, err
	}
	return r.GetByID(ctx, t.UserID, t.ID)
}

func (r *GormTagRepo) Delete(ctx context.Context, userID, id int64) error {
	return affectedOrNotFoundGorm(r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).Delete(&tagRow{}))
}
