package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promo-engine/internal/handler/httperr"
	"promo-engine/internal/pkg/errs"
)

// respondError maps the usecase error taxonomy onto HTTP statuses. Anything
// unclassified is an internal error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errors.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, errs.ErrIneligible):
		httperr.AbortWithReason(c, http.StatusUnprocessableEntity, err, "Coupon not eligible", rootMessage(err))
	case errors.Is(err, errs.ErrBudgetExhausted):
		httperr.AbortWithError(c, http.StatusConflict, err, "Campaign budget exhausted", nil)
	case errors.Is(err, errs.ErrConflict):
		httperr.AbortWithReason(c, http.StatusConflict, err, "Conflict", rootMessage(err))
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// rootMessage digs out the innermost cause so clients see the eligibility
// rule that failed rather than the wrapping chain.
func rootMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
