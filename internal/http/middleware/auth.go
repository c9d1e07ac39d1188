package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minhaalawais/fos-hrdd-software/internal/auth"
	"github.com/minhaalawais/fos-hrdd-software/internal/model"
	"github.com/minhaalawais/fos-hrdd-software/internal/session"
)

const (
	sessionContextKey   = "session"
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer"
)

// Auth verifies the dashboard JWT and resolves its session. A valid token
// whose session has expired or been deleted is treated the same as no token.
func Auth(parser *auth.Parser, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawHeader := c.GetHeader(authorizationHeader)
		if rawHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			return
		}

		parts := strings.SplitN(rawHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := parser.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired", "redirect": "/login"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

func MustSession(c *gin.Context) (*model.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}

	sess, ok := value.(*model.Session)
	if !ok {
		return nil, false
	}

	return sess, true
}
