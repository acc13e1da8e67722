package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"github.com/imarb51/Vetro-Quiz/internal/repository"
	"github.com/rs/zerolog/log"
)

// HistoryService owns the append-only attempt ledger. Entries are created on
// authenticated submission and removed only by the cascading user delete.
type HistoryService interface {
	Record(userID string, result *dto.QuizResultDTO) (*model.QuizAttempt, error)
	ListFor(userID string) ([]dto.AttemptSummaryDTO, error)
	Aggregate(userID string) (*dto.HistoryAggregateDTO, error)
}

type historyService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
}

func NewHistoryService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository) HistoryService {
	return &historyService{userRepo: userRepo, attemptRepo: attemptRepo}
}

// Record persists one attempt with a full per-question snapshot, so later
// question edits cannot rewrite what this attempt displays.
func (s *historyService) Record(userID string, result *dto.QuizResultDTO) (*model.QuizAttempt, error) {
	if _, err := s.userRepo.FindActiveByID(userID); err != nil {
		// The caller already passed authentication, so a missing row here is
		// a referential-integrity bug, not user error.
		log.Error().Str("user_id", userID).Msg("Attempt record requested for unknown or inactive user")
		return nil, apperror.ErrUnknownUser
	}

	snapshot, err := json.Marshal(result.Results)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize attempt snapshot: %w", err)
	}

	attempt := &model.QuizAttempt{
		ID:             uuid.NewString(),
		UserID:         userID,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		ResultJSON:     snapshot,
		SubmittedAt:    time.Now(),
	}

	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, fmt.Errorf("failed to save quiz attempt: %w", err)
	}
	return attempt, nil
}

func (s *historyService) ListFor(userID string) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load quiz history")
		return nil, fmt.Errorf("error fetching quiz history: %w", err)
	}

	dtos := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, a := range attempts {
		dtos = append(dtos, dto.AttemptSummaryDTO{
			ID:             a.ID,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			Percentage:     a.Percentage,
			SubmittedAt:    a.SubmittedAt,
		})
	}
	return dtos, nil
}

// Aggregate is computed on read; a user with no attempts gets zero values,
// not an error.
func (s *historyService) Aggregate(userID string) (*dto.HistoryAggregateDTO, error) {
	agg, err := s.attemptRepo.AggregateByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to aggregate quiz history")
		return nil, fmt.Errorf("error aggregating quiz history: %w", err)
	}
	return &dto.HistoryAggregateDTO{
		TotalAttempts:     int(agg.TotalAttempts),
		AveragePercentage: agg.AveragePercentage,
		BestPercentage:    agg.BestPercentage,
	}, nil
}
