package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"customerapp/internal/adapter/http/helper"
	"customerapp/pkg/config"
)

// RecoveryMiddleware turns a panic into the generic 500 envelope.
func RecoveryMiddleware(logger *config.LokiLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorWithTrace(c.Request.Context(), "panic recovered",
			zap.String("panic", fmt.Sprint(recovered)),
			zap.String("path", c.Request.URL.Path))

		helper.SendInternalError(c, helper.MessageUnexpectedError)
		c.Abort()
	})
}
