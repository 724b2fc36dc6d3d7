package repository

import (
	"context"

	"gorm.io/gorm"
)

type userRepository struct {
	database *gorm.DB
}

func (u *userRepository) Create(ctx context.Context, user *User) error {
	return u.database.WithContext(ctx).Model(User{}).Create(user).Error
}

func (u *userRepository) GetByID(ctx context.Context, id uint) (User, error) {
	var user User
	err := u.database.WithContext(ctx).Model(User{}).First(&user, id).Error
	return user, err
}

func (u *userRepository) List(ctx context.Context, limit, offset int) ([]User, error) {
	var users []User
	err := u.database.WithContext(ctx).Model(User{}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (u *userRepository) Update(ctx context.Context, user *User) error {
	return u.database.WithContext(ctx).Save(user).Error
}

func (u *userRepository) Delete(ctx context.Context, id uint) error {
	res := u.database.WithContext(ctx).Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (User, error)
	List(ctx context.Context, limit, offset int) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepository{database: db}
}
