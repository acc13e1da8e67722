package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UserAdminService covers admin user management and the dashboard totals.
type UserAdminService interface {
	ListUsers() ([]dto.UserResponse, error)
	GetUser(id string) (*dto.UserResponse, error)
	UpdateUser(id string, req dto.UserUpdateRequest) (*dto.UserResponse, error)
	DeleteUser(id string) error
	Stats() (*dto.AdminStatsDTO, error)
}

type userAdminService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
}

func NewUserAdminService(userRepo repository.UserRepository, questionRepo repository.QuestionRepository, attemptRepo repository.AttemptRepository) UserAdminService {
	return &userAdminService{userRepo: userRepo, questionRepo: questionRepo, attemptRepo: attemptRepo}
}

func (s *userAdminService) ListUsers() ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return nil, fmt.Errorf("error fetching users: %w", err)
	}

	dtos := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		dtos = append(dtos, *toUserResponse(&users[i]))
	}
	return dtos, nil
}

func (s *userAdminService) GetUser(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return toUserResponse(user), nil
}

func (s *userAdminService) UpdateUser(id string, req dto.UserUpdateRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("User updated by admin")
	return toUserResponse(user), nil
}

// DeleteUser removes the identity and, through the storage-level cascade,
// every attempt and refresh token it owns.
func (s *userAdminService) DeleteUser(id string) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("error fetching user: %w", err)
	}
	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	log.Info().Str("user_id", id).Msg("User deleted by admin")
	return nil
}

func (s *userAdminService) Stats() (*dto.AdminStatsDTO, error) {
	users, err := s.userRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	questions, err := s.questionRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("error counting questions: %w", err)
	}
	attempts, err := s.attemptRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("error counting attempts: %w", err)
	}
	avg, err := s.attemptRepo.AveragePercentage()
	if err != nil {
		return nil, fmt.Errorf("error averaging attempt scores: %w", err)
	}

	return &dto.AdminStatsDTO{
		TotalUsers:     users,
		TotalQuestions: questions,
		TotalAttempts:  attempts,
		AverageScore:   math.Round(avg*100) / 100,
	}, nil
}
