package session

import (
	"github.com/gin-gonic/gin"

	"mastoride/internal/models"
)

const contextKey = "session"

// Session is the resolved current user for one request. It is an
// explicit value handed to services rather than ambient global state,
// so concurrent requests (and tests) each see their own copy.
type Session struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

func (s *Session) IsAdmin() bool {
	return s.Role == string(models.UserRoleAdmin)
}

// Attach stores the session on the request context.
func Attach(c *gin.Context, sess *Session) {
	c.Set(contextKey, sess)
}

// FromContext retrieves the session placed by the auth middleware.
func FromContext(c *gin.Context) (*Session, bool) {
	value, exists := c.Get(contextKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*Session)
	return sess, ok
}
