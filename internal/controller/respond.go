package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/imarb51/Vetro-Quiz/internal/dto"
	"github.com/rs/zerolog/log"
)

// RespondError maps a service error to its HTTP status. Typed errors forward
// their message; anything else is logged and reported as a generic 500 so
// store internals never reach the client.
func RespondError(c *gin.Context, err error) {
	status, safe := apperror.Status(err)
	if !safe {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	c.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

// RespondBindError reports a request-body validation failure.
func RespondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}
