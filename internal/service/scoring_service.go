package service

import (
	"math"

	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/model"
)

// ScoringService grades one submission against a question set. It is a pure
// function of its inputs: no storage, no clock, no randomness, so identical
// inputs always produce identical results.
type ScoringService interface {
	Score(questions []model.Question, answers map[uint]int) (*dto.QuizResultDTO, error)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Score walks the question sequence in order, matching answers by question id
// so the result is independent of the order the client collected them in.
// An absent answer, or an option index outside [0, len(options)), counts as
// unanswered rather than an error. Answer-map keys that reference no question
// in the set are ignored.
func (s *scoringService) Score(questions []model.Question, answers map[uint]int) (*dto.QuizResultDTO, error) {
	if len(questions) == 0 {
		return nil, apperror.ErrEmptyQuestionSet
	}

	results := make([]dto.QuestionResultDTO, 0, len(questions))
	score := 0

	for _, q := range questions {
		entry := dto.QuestionResultDTO{
			ID:            q.ID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		}

		if picked, ok := answers[q.ID]; ok && picked >= 0 && picked < len(q.Options) {
			answer := picked
			entry.UserAnswer = &answer
			entry.IsCorrect = picked == q.CorrectOption
			if entry.IsCorrect {
				score++
			}
		}

		results = append(results, entry)
	}

	total := len(questions)
	return &dto.QuizResultDTO{
		Score:          score,
		TotalQuestions: total,
		Percentage:     roundPercentage(score, total),
		Results:        results,
	}, nil
}

// roundPercentage rounds 100*score/total to one decimal place, half away
// from zero (math.Round semantics).
func roundPercentage(score, total int) float64 {
	p := float64(score) / float64(total) * 100
	return math.Round(p*10) / 10
}
