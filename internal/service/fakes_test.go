package service

import (
	"context"
	"sync"

	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"github.com/imarb51/Vetro-Quiz/internal/repository"
	"gorm.io/gorm"
)

// memUserRepo is an in-memory UserRepository with the same not-found and
// duplicate-key behavior as the postgres-backed one.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) FindByID(id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindActiveByID(id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok && u.IsActive {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindActiveByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.IsActive {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindActiveByGoogleID(googleID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID && u.IsActive {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindAll() ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) CountActive() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) CountAdmins() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.IsAdmin {
			n++
		}
	}
	return n, nil
}

// memTokenRepo is an in-memory RefreshTokenRepository.
type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*model.RefreshToken)}
}

func (r *memTokenRepo) Create(token *model.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

func (r *memTokenRepo) FindByID(id string) (*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTokenRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
	return nil
}

func (r *memTokenRepo) DeleteAllForUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *memTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

// memAttemptRepo is an in-memory AttemptRepository that mirrors the SQL
// aggregate semantics, including the zero-value COALESCE defaults.
type memAttemptRepo struct {
	mu       sync.Mutex
	attempts []model.QuizAttempt
}

func newMemAttemptRepo() *memAttemptRepo {
	return &memAttemptRepo{}
}

func (r *memAttemptRepo) Create(attempt *model.QuizAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, *attempt)
	return nil
}

func (r *memAttemptRepo) FindAllByUser(userID string) ([]model.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.QuizAttempt
	for i := len(r.attempts) - 1; i >= 0; i-- {
		if r.attempts[i].UserID == userID {
			out = append(out, r.attempts[i])
		}
	}
	return out, nil
}

func (r *memAttemptRepo) AggregateByUser(userID string) (*repository.AttemptAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg := &repository.AttemptAggregate{}
	var sum float64
	for _, a := range r.attempts {
		if a.UserID != userID {
			continue
		}
		agg.TotalAttempts++
		sum += a.Percentage
		if a.Percentage > agg.BestPercentage {
			agg.BestPercentage = a.Percentage
		}
	}
	if agg.TotalAttempts > 0 {
		agg.AveragePercentage = sum / float64(agg.TotalAttempts)
	}
	return agg, nil
}

func (r *memAttemptRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.attempts)), nil
}

func (r *memAttemptRepo) AveragePercentage() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.attempts) == 0 {
		return 0, nil
	}
	var sum float64
	for _, a := range r.attempts {
		sum += a.Percentage
	}
	return sum / float64(len(r.attempts)), nil
}

// memQuestionRepo is an in-memory QuestionRepository that assigns ascending
// ids and lists in id order, like the postgres-backed one.
type memQuestionRepo struct {
	mu        sync.Mutex
	nextID    uint
	questions []model.Question
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{nextID: 1}
}

func (r *memQuestionRepo) Create(question *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	question.ID = r.nextID
	r.nextID++
	r.questions = append(r.questions, *question)
	return nil
}

func (r *memQuestionRepo) CreateBatch(questions []*model.Question) error {
	for _, q := range questions {
		if err := r.Create(q); err != nil {
			return err
		}
	}
	return nil
}

func (r *memQuestionRepo) FindByID(id uint) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.questions {
		if q.ID == id {
			clone := q
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memQuestionRepo) FindAll() ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Question, len(r.questions))
	copy(out, r.questions)
	return out, nil
}

func (r *memQuestionRepo) Update(question *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, q := range r.questions {
		if q.ID == question.ID {
			r.questions[i] = *question
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memQuestionRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, q := range r.questions {
		if q.ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memQuestionRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.questions)), nil
}

// fakeGoogleVerifier returns canned claims, or fails when claims is nil.
type fakeGoogleVerifier struct {
	claims *GoogleClaims
}

func (f *fakeGoogleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleClaims, error) {
	if f.claims == nil {
		return nil, apperror.ErrInvalidAssertion
	}
	return f.claims, nil
}
