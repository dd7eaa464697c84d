package middleware

import (
	"net/http"

	"rc-building-model/internal/api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler middleware recovers panics and answers with a JSON error
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		if log != nil {
			log.Error("panic recovered",
				zap.String("path", c.Request.URL.Path),
				zap.Any("panic", recovered),
			)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
