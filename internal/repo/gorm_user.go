package repo

import (
	"context"

	dom "taskmanager/internal/domain"

	"gorm.io/gorm"
)

// GormUserRepo implements UserRepo on top of gorm (SQLite backend).
type GormUserRepo struct {
	db *gorm.DB
}

func NewGormUserRepo(db *gorm.DB) *GormUserRepo {
	return &GormUserRepo{db: db}
}

func (r *GormUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return dom.User{}, gormErr(err)
	}
	return row.toDomain(), nil
}

func (r *GormUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return dom.User{}, gormErr(err)
	}
	return row.toDomain(), nil
}

func (r *GormUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	row := userRow{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		DateJoined:   r.db.NowFunc(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return dom.User{}, gormErr(err)
	}
	return row.toDomain(), nil
}

func (r *GormUserRepo) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFoundGorm(r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRow{}))
}
