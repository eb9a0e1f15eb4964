package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	pkgAuth "github.com/polkiloo/deliverypro/internal/pkg/auth"
	"github.com/polkiloo/deliverypro/internal/server/http/dto"
	"github.com/polkiloo/deliverypro/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentActor extracts the authenticated caller from context.
func CurrentActor(c *gin.Context) model.Actor {
	actor := model.Actor{UserID: CurrentUserID(c)}
	if val, ok := c.Get(middleware.RoleContextKey); ok {
		actor.Role, _ = val.(model.Role)
	}
	return actor
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case domainErrors.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pkgAuth.ErrWeakPassword),
		errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrItemNotFound),
		errors.Is(err, domainErrors.ErrStoreNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrStatusConflict),
		errors.Is(err, domainErrors.ErrNotAssigned),
		errors.Is(err, domainErrors.ErrDriverOffline),
		errors.Is(err, domainErrors.ErrNoDriverAssigned):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidRole):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": message}. Internal failures are
// attached to the gin context and not echoed to the client.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}

// bindJSON decodes the request body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request body"})
		return false
	}
	return true
}
