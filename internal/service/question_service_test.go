package service

import (
	"testing"

	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionCreate(t *testing.T) {
	repo := newMemQuestionRepo()
	svc := NewQuestionService(repo)

	created, err := svc.Create(dto.QuestionCreateRequest{
		Text:          "What is the boiling point of water at sea level?",
		Options:       []string{"90C", "100C", "110C"},
		CorrectOption: 1,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, created.CorrectOption)

	list, err := svc.ListWithAnswers()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestQuestionCreate_RejectsOutOfRangeCorrectOption(t *testing.T) {
	svc := NewQuestionService(newMemQuestionRepo())

	_, err := svc.Create(dto.QuestionCreateRequest{
		Text:          "A question with too large an answer index",
		Options:       []string{"one", "two"},
		CorrectOption: 2,
	})

	var verr *apperror.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestQuestionUpdate(t *testing.T) {
	repo := newMemQuestionRepo()
	svc := NewQuestionService(repo)

	created, err := svc.Create(dto.QuestionCreateRequest{
		Text:          "Original question text goes here",
		Options:       []string{"one", "two"},
		CorrectOption: 0,
	})
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, dto.QuestionUpdateRequest{
		Text:          "Updated question text goes here",
		Options:       []string{"one", "two", "three"},
		CorrectOption: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated question text goes here", updated.Text)
	assert.Equal(t, 2, updated.CorrectOption)

	_, err = svc.Update(999, dto.QuestionUpdateRequest{
		Text:          "Target does not exist anywhere",
		Options:       []string{"one", "two"},
		CorrectOption: 0,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestQuestionDelete(t *testing.T) {
	repo := newMemQuestionRepo()
	svc := NewQuestionService(repo)

	created, err := svc.Create(dto.QuestionCreateRequest{
		Text:          "A question that will be deleted",
		Options:       []string{"one", "two"},
		CorrectOption: 0,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))
	assert.ErrorIs(t, svc.Delete(created.ID), apperror.ErrNotFound)

	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
