package service

import (
	"errors"
	"fmt"
	"io"

	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"github.com/imarb51/Vetro-Quiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService is the admin side of the bank: full listings including
// correct answers, CRUD, and bulk import from PDF.
type QuestionService interface {
	ListWithAnswers() ([]dto.AdminQuestionDTO, error)
	Get(id uint) (*dto.AdminQuestionDTO, error)
	Create(req dto.QuestionCreateRequest) (*dto.AdminQuestionDTO, error)
	Update(id uint, req dto.QuestionUpdateRequest) (*dto.AdminQuestionDTO, error)
	Delete(id uint) error
	ImportPDF(file io.ReaderAt, size int64) (*dto.ImportResultDTO, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) ListWithAnswers() ([]dto.AdminQuestionDTO, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load questions for admin listing")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	dtos := make([]dto.AdminQuestionDTO, 0, len(questions))
	for _, q := range questions {
		dtos = append(dtos, toAdminQuestionDTO(&q))
	}
	return dtos, nil
}

func (s *questionService) Get(id uint) (*dto.AdminQuestionDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching question %d: %w", id, err)
	}
	d := toAdminQuestionDTO(question)
	return &d, nil
}

func (s *questionService) Create(req dto.QuestionCreateRequest) (*dto.AdminQuestionDTO, error) {
	if req.CorrectOption >= len(req.Options) {
		return nil, apperror.Validation("correct_option %d is out of range for %d options", req.CorrectOption, len(req.Options))
	}

	question := &model.Question{
		Text:          req.Text,
		Options:       model.OptionList(req.Options),
		CorrectOption: req.CorrectOption,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	log.Info().Uint("question_id", question.ID).Msg("Question created")
	d := toAdminQuestionDTO(question)
	return &d, nil
}

func (s *questionService) Update(id uint, req dto.QuestionUpdateRequest) (*dto.AdminQuestionDTO, error) {
	if req.CorrectOption >= len(req.Options) {
		return nil, apperror.Validation("correct_option %d is out of range for %d options", req.CorrectOption, len(req.Options))
	}

	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching question %d: %w", id, err)
	}

	question.Text = req.Text
	question.Options = model.OptionList(req.Options)
	question.CorrectOption = req.CorrectOption

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}
	d := toAdminQuestionDTO(question)
	return &d, nil
}

func (s *questionService) Delete(id uint) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("error fetching question %d: %w", id, err)
	}
	if err := s.questionRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	log.Info().Uint("question_id", id).Msg("Question deleted")
	return nil
}

// ImportPDF extracts text from the uploaded file and inserts every question
// block that parses cleanly. Malformed blocks are skipped, not fatal.
func (s *questionService) ImportPDF(file io.ReaderAt, size int64) (*dto.ImportResultDTO, error) {
	text, err := ExtractPDFText(file, size)
	if err != nil {
		return nil, apperror.Validation("could not read PDF: %s", err)
	}

	parsed := ParseQuestionText(text)
	if len(parsed) == 0 {
		return nil, apperror.Validation("no questions found in PDF")
	}

	questions := make([]*model.Question, 0, len(parsed))
	for _, p := range parsed {
		questions = append(questions, &model.Question{
			Text:          p.Text,
			Options:       model.OptionList(p.Options),
			CorrectOption: p.CorrectOption,
		})
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return nil, fmt.Errorf("failed to save imported questions: %w", err)
	}

	log.Info().Int("count", len(questions)).Msg("Questions imported from PDF")
	return &dto.ImportResultDTO{Count: len(questions)}, nil
}

func toAdminQuestionDTO(q *model.Question) dto.AdminQuestionDTO {
	return dto.AdminQuestionDTO{
		ID:            q.ID,
		Text:          q.Text,
		Options:       q.Options,
		CorrectOption: q.CorrectOption,
	}
}
