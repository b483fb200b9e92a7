package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/librisapp/libris-backend/internal/response"
	"github.com/librisapp/libris-backend/internal/service"
)

// failFromError maps service sentinel errors onto the response taxonomy.
// Anything unrecognized becomes a generic 500 with no detail leakage.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrTextOrFileRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrTextOrFileRequired)
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
