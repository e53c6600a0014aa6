package handler

import (
	"hackpay/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status and a structured
// body with a stable kind; internal detail never reaches the caller.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	c.JSON(apperr.HTTPStatus(kind), gin.H{
		"error": gin.H{
			"kind":    string(kind),
			"message": apperr.MessageOf(err),
		},
	})
}
