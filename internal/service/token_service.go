package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/imarb51/Vetro-Quiz/config"
	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"github.com/imarb51/Vetro-Quiz/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims is the JWT payload for both token kinds. Type distinguishes access
// from refresh so one can never stand in for the other.
type Claims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is one issued access+refresh credential set. Access tokens are
// stateless; each refresh token has a backing row keyed by its jti, so
// revocation survives restarts and is shared across replicas.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

type TokenService interface {
	IssuePair(user *model.User) (*TokenPair, error)
	VerifyAccess(raw string) (*Claims, error)
	VerifyRefresh(raw string) (*Claims, error)
	Revoke(raw string) error
}

type tokenService struct {
	cfg       *config.Config
	tokenRepo repository.RefreshTokenRepository
}

func NewTokenService(cfg *config.Config, tokenRepo repository.RefreshTokenRepository) TokenService {
	return &tokenService{cfg: cfg, tokenRepo: tokenRepo}
}

func (s *tokenService) IssuePair(user *model.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := &Claims{
		Email: user.Email,
		Type:  tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.AccessTokenTTL)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshID := uuid.NewString()
	refreshExpiry := now.Add(s.cfg.Auth.RefreshTokenTTL)
	refreshClaims := &Claims{
		Email: user.Email,
		Type:  tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        refreshID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.tokenRepo.Create(&model.RefreshToken{
		ID:        refreshID,
		UserID:    user.ID,
		ExpiresAt: refreshExpiry,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *tokenService) VerifyAccess(raw string) (*Claims, error) {
	return s.parse(raw, tokenTypeAccess)
}

// VerifyRefresh validates the signature and expiry, then checks the backing
// row still exists. A rotated or revoked token has no row and is rejected.
func (s *tokenService) VerifyRefresh(raw string) (*Claims, error) {
	claims, err := s.parse(raw, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	stored, err := s.tokenRepo.FindByID(claims.ID)
	if err != nil {
		log.Warn().Str("jti", claims.ID).Msg("Refresh token has no backing record")
		return nil, apperror.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperror.ErrInvalidToken
	}

	return claims, nil
}

// Revoke deletes the refresh token's backing row. Revoking an unknown or
// already-revoked token is a no-op, so logout stays idempotent.
func (s *tokenService) Revoke(raw string) error {
	token, _, err := jwt.NewParser().ParseUnverified(raw, &Claims{})
	if err != nil {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ID == "" {
		return nil
	}
	if err := s.tokenRepo.Delete(claims.ID); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (s *tokenService) parse(raw, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Type != wantType || claims.Subject == "" {
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}
