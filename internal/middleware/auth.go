package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/model"
	"github.com/imarb51/Vetro-Quiz/internal/repository"
	"github.com/imarb51/Vetro-Quiz/internal/service"
	"github.com/rs/zerolog/log"
)

const identityKey = "identity"

// Auth resolves bearer tokens to identities for route guards. All guards are
// per-request; nothing is cached between requests.
type Auth struct {
	tokens   service.TokenService
	userRepo repository.UserRepository
}

func NewAuth(tokens service.TokenService, userRepo repository.UserRepository) *Auth {
	return &Auth{tokens: tokens, userRepo: userRepo}
}

// RequireAuth rejects the request with 401 unless a valid access token for
// an active user is presented.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "could not validate credentials"})
			return
		}
		c.Set(identityKey, user)
		c.Next()
	}
}

// OptionalAuth resolves an identity when a valid token is presented and
// falls through to anonymous otherwise. Used on endpoints that accept both.
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := a.resolve(c); ok {
			c.Set(identityKey, user)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth; it rejects non-admin identities
// with 403.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "could not validate credentials"})
			return
		}
		if !user.IsAdmin {
			log.Warn().Str("user_id", user.ID).Str("path", c.FullPath()).Msg("Admin route denied")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "not enough permissions"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity resolved by RequireAuth/OptionalAuth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}

func (a *Auth) resolve(c *gin.Context) (*model.User, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	claims, err := a.tokens.VerifyAccess(parts[1])
	if err != nil {
		log.Warn().Str("path", c.FullPath()).Msg("Access token rejected")
		return nil, false
	}

	user, err := a.userRepo.FindActiveByID(claims.Subject)
	if err != nil {
		log.Warn().Str("user_id", claims.Subject).Msg("Token subject is missing or inactive")
		return nil, false
	}
	return user, true
}
