package repository

import (
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"gorm.io/gorm"
)

type RefreshTokenRepository interface {
	Create(token *model.RefreshToken) error
	FindByID(id string) (*model.RefreshToken, error)
	Delete(id string) error
	DeleteAllForUser(userID string) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(token *model.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *refreshTokenRepository) FindByID(id string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	if err := r.db.First(&token, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) Delete(id string) error {
	return r.db.Delete(&model.RefreshToken{}, "id = ?", id).Error
}

func (r *refreshTokenRepository) DeleteAllForUser(userID string) error {
	return r.db.Delete(&model.RefreshToken{}, "user_id = ?", userID).Error
}
