package repository

import (
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindActiveByID(id string) (*model.User, error)
	FindActiveByEmail(email string) (*model.User, error)
	FindActiveByGoogleID(googleID string) (*model.User, error)
	FindAll() ([]model.User, error)
	Update(user *model.User) error
	Delete(id string) error
	CountActive() (int64, error)
	CountAdmins() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActiveByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ? AND is_active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActiveByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "email = ? AND is_active = ?", email, true).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActiveByGoogleID(googleID string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "google_id = ? AND is_active = ?", googleID, true).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// Delete hard-deletes the user row. Attempts and refresh tokens go with it
// through the ON DELETE CASCADE constraints.
func (r *userRepository) Delete(id string) error {
	return r.db.Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *userRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("is_admin = ?", true).Count(&count).Error
	return count, err
}
