package service

import (
	"fmt"

	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuizService serves the candidate-facing question listing and runs the
// submission pipeline for both anonymous and tracked callers.
type QuizService interface {
	ListQuestions() ([]dto.PublicQuestionDTO, error)
	Submit(answers map[uint]int) (*dto.QuizResultDTO, error)
	SubmitTracked(userID string, answers map[uint]int) (*dto.TrackedQuizResultDTO, error)
}

type quizService struct {
	questionRepo repository.QuestionRepository
	scoring      ScoringService
	history      HistoryService
}

func NewQuizService(questionRepo repository.QuestionRepository, scoring ScoringService, history HistoryService) QuizService {
	return &quizService{questionRepo: questionRepo, scoring: scoring, history: history}
}

// ListQuestions returns the bank in id order with correct answers stripped.
// An empty bank is a valid, empty listing.
func (s *quizService) ListQuestions() ([]dto.PublicQuestionDTO, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load questions for public listing")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	dtos := make([]dto.PublicQuestionDTO, 0, len(questions))
	for _, q := range questions {
		dtos = append(dtos, dto.PublicQuestionDTO{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.Options,
		})
	}
	return dtos, nil
}

// Submit scores an anonymous submission. Nothing is persisted.
func (s *quizService) Submit(answers map[uint]int) (*dto.QuizResultDTO, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load questions for scoring")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	return s.scoring.Score(questions, answers)
}

// SubmitTracked scores and then records exactly one attempt for the caller.
func (s *quizService) SubmitTracked(userID string, answers map[uint]int) (*dto.TrackedQuizResultDTO, error) {
	result, err := s.Submit(answers)
	if err != nil {
		return nil, err
	}

	attempt, err := s.history.Record(userID, result)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID).Str("attempt_id", attempt.ID).
		Int("score", result.Score).Int("total", result.TotalQuestions).
		Msg("Quiz attempt recorded")

	return &dto.TrackedQuizResultDTO{
		QuizResultDTO: *result,
		AttemptID:     attempt.ID,
		UserID:        userID,
	}, nil
}
