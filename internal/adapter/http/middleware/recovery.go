package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/pkg/apierrors"
)

// RecoveryMiddleware turns panics into a 500 response. The panic value is
// only echoed to the client in development.
func RecoveryMiddleware(logger *zap.Logger, development bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		lang := GetLang(c)
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)

		detail := apierrors.GetTransErrorMsg(apierrors.MsgInternalDetail, lang)
		if development {
			detail = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgInternal, lang).WithDetail(detail),
		)
	})
}
