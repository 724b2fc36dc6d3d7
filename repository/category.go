package repository

import (
	"context"

	"gorm.io/gorm"
)

type categoryRepository struct {
	database *gorm.DB
}

func (c *categoryRepository) Create(ctx context.Context, category *Category) error {
	return c.database.WithContext(ctx).Model(Category{}).Create(category).Error
}

func (c *categoryRepository) GetByID(ctx context.Context, id uint) (Category, error) {
	var category Category
	err := c.database.WithContext(ctx).Model(Category{}).First(&category, id).Error
	return category, err
}

func (c *categoryRepository) List(ctx context.Context, limit, offset int) ([]Category, error) {
	var categories []Category
	err := c.database.WithContext(ctx).Model(Category{}).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&categories).Error
	return categories, err
}

func (c *categoryRepository) Update(ctx context.Context, category *Category) error {
	return c.database.WithContext(ctx).Save(category).Error
}

func (c *categoryRepository) Delete(ctx context.Context, id uint) error {
	res := c.database.WithContext(ctx).Delete(&Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id uint) (Category, error)
	List(ctx context.Context, limit, offset int) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepository{database: db}
}
