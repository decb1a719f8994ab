package middleware

import (
	"errors"
	"net/http"

	"motoshop-be/internal/auth"
	"motoshop-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallerKey is the gin context key holding the authenticated auth.Caller.
const CallerKey = "caller"

// RequireAdmin rejects requests without a valid admin token and puts the
// caller on the request context for audit logging.
func RequireAdmin(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := auth.ParseCaller(auth.ExtractAccessToken(c.Request), secret)
		if err != nil {
			logger.FromCtx(c.Request.Context()).Warn("admin auth rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			message := "invalid token"
			if errors.Is(err, auth.ErrMissingToken) {
				message = "authentication required"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message, "error": true})
			return
		}

		if !caller.IsAdmin() {
			logger.FromCtx(c.Request.Context()).Warn("admin access denied", zap.String("caller_id", caller.ID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin role required", "error": true})
			return
		}

		ctx := auth.WithCaller(c.Request.Context(), caller)
		ctx = logger.WithCallerID(ctx, caller.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(CallerKey, caller)

		c.Next()
	}
}
