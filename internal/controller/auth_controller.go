package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/middleware"
	"github.com/imarb51/Vetro-Quiz/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	resp, err := ctrl.authService.Register(req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	resp, err := ctrl.authService.Login(req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleLogin godoc
// @Summary Log in with a Google ID token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.GoogleAuthRequest true "Google ID token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid assertion"
// @Router /auth/google [post]
func (ctrl *AuthController) GoogleLogin(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	resp, err := ctrl.authService.LoginWithGoogle(c.Request.Context(), req.Token)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /auth/refresh [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	resp, err := ctrl.authService.Refresh(req.RefreshToken)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Log out and revoke the presented refresh token
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	// Body is optional; an absent refresh token still logs out successfully.
	_ = c.ShouldBindJSON(&req)

	if err := ctrl.authService.Logout(req.RefreshToken); err != nil {
		log.Warn().Err(err).Msg("Logout revocation failed")
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

// Me godoc
// @Summary Get the authenticated user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	resp, err := ctrl.authService.GetProfile(user.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	ctrl.Me(c)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.ProfileUpdateRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/profile [put]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	resp, err := ctrl.authService.UpdateProfile(user.ID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
