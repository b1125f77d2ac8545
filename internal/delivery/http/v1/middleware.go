package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/taskboard/api/internal/auth"
)

const claimsCtxKey = "auth_claims"

// HandleAuthMiddleware gates protected routes. A missing or empty
// bearer value is a 401, a token that fails verification is a 403.
// On success the decoded claims land in the request context.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("authorization header required")
		abort(c, newUnauthorizedError("token missing"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
		h.logger.Warn().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("no bearer token in authorization header")
		abort(c, newUnauthorizedError("token missing"))
		return
	}

	claims, err := h.tokens.Verify(parts[1])
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("failed to verify token")
		abort(c, newForbiddenError("invalid token"))
		return
	}

	h.logger.Debug().
		Str("user_id", claims.UserID).
		Str("path", c.Request.URL.Path).
		Msg("verified token")

	c.Set(claimsCtxKey, claims)
	c.Next()
}

// claimsFromContext returns the identity attached by the auth middleware.
func claimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(claimsCtxKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// RequestLogger emits one structured event per request. Bodies are
// never logged since login and signup payloads carry passwords.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("handled request")
	}
}
