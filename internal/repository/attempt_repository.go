package repository

import (
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"gorm.io/gorm"
)

// AttemptAggregate is the computed per-user history summary.
type AttemptAggregate struct {
	TotalAttempts     int64
	AveragePercentage float64
	BestPercentage    float64
}

type AttemptRepository interface {
	Create(attempt *model.QuizAttempt) error
	FindAllByUser(userID string) ([]model.QuizAttempt, error)
	AggregateByUser(userID string) (*AttemptAggregate, error)
	Count() (int64, error)
	AveragePercentage() (float64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// Create is a single-row insert; the snapshot is serialized before the write
// so a client disconnect can never leave a partial attempt behind.
func (r *attemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindAllByUser(userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Where("user_id = ?", userID).Order("submitted_at desc").Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) AggregateByUser(userID string) (*AttemptAggregate, error) {
	var agg AttemptAggregate
	err := r.db.Model(&model.QuizAttempt{}).
		Select("COUNT(*) as total_attempts, COALESCE(AVG(percentage), 0) as average_percentage, COALESCE(MAX(percentage), 0) as best_percentage").
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *attemptRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.QuizAttempt{}).Count(&count).Error
	return count, err
}

func (r *attemptRepository) AveragePercentage() (float64, error) {
	var avg float64
	err := r.db.Model(&model.QuizAttempt{}).
		Select("COALESCE(AVG(percentage), 0)").
		Scan(&avg).Error
	return avg, err
}
