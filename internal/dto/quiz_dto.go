package dto

import "time"

// PublicQuestionDTO is a question as served to candidates: the correct
// option index is stripped.
type PublicQuestionDTO struct {
	ID      uint     `json:"id"`
	Text    string   `json:"question_text"`
	Options []string `json:"options"`
}

// SubmitRequest maps question id to the selected option index. Keys that do
// not reference a question in the bank are ignored during scoring.
type SubmitRequest struct {
	Answers map[uint]int `json:"answers" binding:"required"`
}

// QuestionResultDTO is one per-question line of a scored result. UserAnswer
// is nil when the question was unanswered (including out-of-range picks,
// which are normalized to unanswered).
type QuestionResultDTO struct {
	ID            uint     `json:"id"`
	Text          string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	UserAnswer    *int     `json:"user_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// QuizResultDTO is the outcome of scoring one submission.
type QuizResultDTO struct {
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"total_questions"`
	Percentage     float64             `json:"percentage"`
	Results        []QuestionResultDTO `json:"results"`
}

// TrackedQuizResultDTO extends QuizResultDTO with the persisted attempt
// reference for authenticated submissions.
type TrackedQuizResultDTO struct {
	QuizResultDTO
	AttemptID string `json:"attempt_id"`
	UserID    string `json:"user_id"`
}

// AttemptSummaryDTO is one history-list entry.
type AttemptSummaryDTO struct {
	ID             string    `json:"id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	SubmittedAt    time.Time `json:"attempt_date"`
}

// HistoryAggregateDTO is computed, not stored; all fields are zero when the
// user has no attempts.
type HistoryAggregateDTO struct {
	TotalAttempts     int     `json:"total_attempts"`
	AveragePercentage float64 `json:"average_percentage"`
	BestPercentage    float64 `json:"best_percentage"`
}
