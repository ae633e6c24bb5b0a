package auth

import (
	"context"
	"net/http"
	"strings"

	dom "taskmanager/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	contextKeyUserID   = "user_id"
	contextKeyUsername = "username"
)

// UserLookup resolves a user id to an active account. ok is false when the
// user is gone or deactivated.
type UserLookup interface {
	LookupActive(ctx context.Context, id int64) (u dom.User, ok bool, err error)
}

// UserIDFromContext returns the current user ID set by RequireToken. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// UsernameFromContext returns the current username set by RequireToken.
func UsernameFromContext(c *gin.Context) string {
	return c.GetString(contextKeyUsername)
}

// RequireToken checks the Authorization header ("Token <key>" or
// "Bearer <key>") and stores the user in context. Otherwise it responds 401.
func RequireToken(tokens *TokenStore, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			unauthorized(c, "Authentication credentials were not provided.")
			return
		}
		scheme, key, _ := strings.Cut(header, " ")
		if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
			unauthorized(c, "Authentication credentials were not provided.")
			return
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.Contains(key, " ") {
			unauthorized(c, "Invalid token header.")
			return
		}

		ctx := c.Request.Context()
		userID, ok, err := tokens.UserID(ctx, key)
		if err != nil {
			internalError(c, err)
			return
		}
		if !ok {
			unauthorized(c, "Invalid token.")
			return
		}
		user, ok, err := users.LookupActive(ctx, userID)
		if err != nil {
			internalError(c, err)
			return
		}
		if !ok {
			unauthorized(c, "Invalid token.")
			return
		}

		c.Set(contextKeyUserID, user.ID)
		c.Set(contextKeyUsername, user.Username)
		c.Next()
	}
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Token")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}

// internalError aborts with a 500 that carries the request id echoed by the
// request-id middleware; the cause is attached to the gin context for logging.
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"detail":     "Internal server error.",
		"request_id": c.Writer.Header().Get("X-Request-ID"),
	})
}
