package repository

import (
	"context"

	"gorm.io/gorm"
)

// ItemQuery narrows and orders item listings. Sort columns outside the
// whitelist fall back to created_at.
type ItemQuery struct {
	CategoryID uint
	Name       string
	InStock    bool
	Sort       string
	Descending bool
	Limit      int
	Offset     int
}

var itemSortColumns = map[string]string{
	"name":       "name",
	"price":      "price_cents",
	"created_at": "created_at",
}

// OrderClause renders the ORDER BY expression for the query.
func (q ItemQuery) OrderClause() string {
	column, ok := itemSortColumns[q.Sort]
	if !ok {
		column = "created_at"
	}
	if q.Descending {
		return column + " DESC"
	}
	return column + " ASC"
}

type itemRepository struct {
	database *gorm.DB
}

func (i *itemRepository) Create(ctx context.Context, item *Item) error {
	return i.database.WithContext(ctx).Model(Item{}).Create(item).Error
}

func (i *itemRepository) GetByID(ctx context.Context, id uint) (Item, error) {
	var item Item
	err := i.database.WithContext(ctx).Model(Item{}).First(&item, id).Error
	return item, err
}

func (i *itemRepository) List(ctx context.Context, query ItemQuery) ([]Item, error) {
	tx := i.database.WithContext(ctx).Model(Item{})
	if query.CategoryID != 0 {
		tx = tx.Where("category_id = ?", query.CategoryID)
	}
	if query.Name != "" {
		tx = tx.Where("name LIKE ?", "%"+query.Name+"%")
	}
	if query.InStock {
		tx = tx.Where("stock > 0")
	}
	var items []Item
	err := tx.Order(query.OrderClause()).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&items).Error
	return items, err
}

func (i *itemRepository) ListByCategory(ctx context.Context, categoryID uint) ([]Item, error) {
	var items []Item
	err := i.database.WithContext(ctx).Model(Item{}).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (i *itemRepository) Update(ctx context.Context, item *Item) error {
	return i.database.WithContext(ctx).Save(item).Error
}

func (i *itemRepository) Delete(ctx context.Context, id uint) error {
	res := i.database.WithContext(ctx).Delete(&Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id uint) (Item, error)
	List(ctx context.Context, query ItemQuery) ([]Item, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uint) error
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepository{database: db}
}
