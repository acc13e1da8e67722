package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/imarb51/Vetro-Quiz/config"
	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"github.com/imarb51/Vetro-Quiz/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when the account is unknown or has no local
// password, so a login against a missing email costs the same as a mismatch.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(req dto.LoginRequest) (*dto.TokenResponse, error)
	LoginWithGoogle(ctx context.Context, assertion string) (*dto.TokenResponse, error)
	Refresh(refreshToken string) (*dto.TokenResponse, error)
	Logout(refreshToken string) error
	GetProfile(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req dto.ProfileUpdateRequest) (*dto.UserResponse, error)
}

type authService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	tokens   TokenService
	google   GoogleVerifier
}

func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, tokens TokenService, google GoogleVerifier) AuthService {
	return &authService{cfg: cfg, userRepo: userRepo, tokens: tokens, google: google}
}

// CanonicalEmail lowercase-folds and trims an address. Applied on every
// write and every lookup, so the unique index on the stored form is
// effectively case-insensitive.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := CanonicalEmail(req.Email)
	name := strings.TrimSpace(req.Name)

	if email == "" || name == "" || req.Password == "" {
		return nil, apperror.Validation("email, name and password are required")
	}
	if len(req.Password) < s.cfg.Auth.MinPasswordLength {
		return nil, apperror.Validation("password must be at least %d characters long", s.cfg.Auth.MinPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hash := string(hashed)

	user := &model.User{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           name,
		Phone:          req.Phone,
		Address:        req.Address,
		HashedPassword: &hash,
		IsActive:       true,
	}

	// The unique index on email decides concurrent registrations; the loser
	// of the race gets a duplicate-key error here, never a second row.
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("User registered")
	return s.tokenResponse(user)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	email := CanonicalEmail(req.Email)

	user, err := s.userRepo.FindActiveByEmail(email)
	if err != nil || user.HashedPassword == nil {
		// Burn a hash comparison anyway so unknown emails and OAuth-only
		// accounts are indistinguishable from a wrong password by timing.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
		log.Warn().Str("email", email).Msg("Login failed: unknown account or no local password")
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(req.Password)); err != nil {
		log.Warn().Str("user_id", user.ID).Msg("Login failed: password mismatch")
		return nil, apperror.ErrInvalidCredentials
	}

	return s.tokenResponse(user)
}

// LoginWithGoogle resolves the verified assertion to an identity: by Google
// subject first, then by email (same email means same person, so the
// accounts are linked), finally auto-provisioning a passwordless user.
func (s *authService) LoginWithGoogle(ctx context.Context, assertion string) (*dto.TokenResponse, error) {
	claims, err := s.google.Verify(ctx, assertion)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindActiveByGoogleID(claims.Subject)
	if err != nil {
		user, err = s.linkOrProvisionGoogleUser(claims)
		if err != nil {
			return nil, err
		}
	}

	return s.tokenResponse(user)
}

func (s *authService) linkOrProvisionGoogleUser(claims *GoogleClaims) (*model.User, error) {
	email := CanonicalEmail(claims.Email)
	subject := claims.Subject

	if existing, err := s.userRepo.FindActiveByEmail(email); err == nil {
		existing.GoogleID = &subject
		if err := s.userRepo.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		log.Info().Str("user_id", existing.ID).Msg("Linked Google account to existing user")
		return existing, nil
	}

	user := &model.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     claims.Name,
		GoogleID: &subject,
		IsActive: true,
	}
	if user.Name == "" {
		user.Name = email
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to provision google user: %w", err)
	}
	log.Info().Str("user_id", user.ID).Msg("Auto-registered user from Google sign-in")
	return user, nil
}

// Refresh rotates the presented refresh token: the old one is revoked and a
// fresh pair is issued, so a replayed token fails on its missing row.
func (s *authService) Refresh(refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindActiveByID(claims.Subject)
	if err != nil {
		log.Warn().Str("user_id", claims.Subject).Msg("Refresh for missing or inactive user")
		return nil, apperror.ErrInvalidToken
	}

	if err := s.tokens.Revoke(refreshToken); err != nil {
		return nil, err
	}

	return s.tokenResponse(user)
}

// Logout revokes the refresh token and always reports success; revoking an
// already-dead token changes nothing.
func (s *authService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokens.Revoke(refreshToken); err != nil {
		log.Warn().Err(err).Msg("Logout: failed to revoke refresh token")
	}
	return nil
}

func (s *authService) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindActiveByID(userID)
	if err != nil {
		return nil, apperror.ErrNotFound
	}
	return toUserResponse(user), nil
}

func (s *authService) UpdateProfile(userID string, req dto.ProfileUpdateRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindActiveByID(userID)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	if req.Name == nil && req.Phone == nil && req.Address == nil {
		return nil, apperror.Validation("no valid fields to update")
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

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return toUserResponse(user), nil
}

func (s *authService) tokenResponse(user *model.User) (*dto.TokenResponse, error) {
	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    pair.ExpiresIn,
		User:         *toUserResponse(user),
	}, nil
}

func toUserResponse(user *model.User) *dto.UserResponse {
	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		log.Error().Err(err).Msg("Failed to copy user model to response DTO")
	}
	return &resp
}
