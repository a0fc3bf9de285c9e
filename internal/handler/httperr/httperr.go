package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error envelope for every non-2xx reply. Detail carries
// machine-readable context, e.g. the eligibility reason for a rejected
// coupon.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError records err on the context for the logging middleware and
// replies with the envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithReason is AbortWithError with the detail shaped as {"reason": ...},
// the contract for 422 ineligibility and 409 conflict replies.
func AbortWithReason(c *gin.Context, status int, err error, msg, reason string) {
	AbortWithError(c, status, err, msg, gin.H{"reason": reason})
}
