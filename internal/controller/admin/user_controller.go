package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imarb51/Vetro-Quiz/internal/controller"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/imarb51/Vetro-Quiz/internal/service"
)

type UserController struct {
	userAdminService service.UserAdminService
}

func NewUserController(userAdminService service.UserAdminService) *UserController {
	return &UserController{userAdminService: userAdminService}
}

// List godoc
// @Summary (Admin) List all users
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users [get]
func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.userAdminService.ListUsers()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary (Admin) Get one user
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id} [get]
func (ctrl *UserController) Get(c *gin.Context) {
	user, err := ctrl.userAdminService.GetUser(c.Param("id"))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update godoc
// @Summary (Admin) Update a user
// @Tags Admin - Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body dto.UserUpdateRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id} [put]
func (ctrl *UserController) Update(c *gin.Context) {
	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	user, err := ctrl.userAdminService.UpdateUser(c.Param("id"), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary (Admin) Delete a user and their quiz history
// @Tags Admin - Users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id} [delete]
func (ctrl *UserController) Delete(c *gin.Context) {
	if err := ctrl.userAdminService.DeleteUser(c.Param("id")); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats godoc
// @Summary (Admin) Dashboard totals
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AdminStatsDTO
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/stats [get]
func (ctrl *UserController) Stats(c *gin.Context) {
	stats, err := ctrl.userAdminService.Stats()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
