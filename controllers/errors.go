package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/econursery/nursery-app/services"
	"github.com/econursery/nursery-app/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP codes.
func respondServiceError(c *gin.Context, err error) {
	var insufficient *services.InsufficientStockError

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrUnauthorized):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrNotPurchased):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidRating):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &insufficient):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrDuplicateCredential):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("internal error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

// currentUserID reads the identity set by AuthMiddleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
