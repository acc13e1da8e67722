package dto

// QuestionCreateRequest is for admin question creation. The correct-option
// range check against len(options) happens in the service since binding tags
// cannot express it.
type QuestionCreateRequest struct {
	Text          string   `json:"question_text" binding:"required,min=5,max=1000"`
	Options       []string `json:"options" binding:"required,min=2,max=6,dive,required,max=200"`
	CorrectOption int      `json:"correct_option" binding:"gte=0"`
}

type QuestionUpdateRequest struct {
	Text          string   `json:"question_text" binding:"required,min=5,max=1000"`
	Options       []string `json:"options" binding:"required,min=2,max=6,dive,required,max=200"`
	CorrectOption int      `json:"correct_option" binding:"gte=0"`
}

// AdminQuestionDTO includes the correct option; admin listings only.
type AdminQuestionDTO struct {
	ID            uint     `json:"id"`
	Text          string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

type UserUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}

type AdminStatsDTO struct {
	TotalUsers     int64   `json:"total_users"`
	TotalQuestions int64   `json:"total_questions"`
	TotalAttempts  int64   `json:"total_attempts"`
	AverageScore   float64 `json:"average_score"`
}

type ImportResultDTO struct {
	Count int `json:"count"`
}
