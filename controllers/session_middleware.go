package controllers

import (
	"net/http"

	"dbconnectorapi/services/pool"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the session id in both directions.
const SessionHeader = "X-Session-ID"

const sessionKey = "dbconnector.session"

var sessionStore *pool.Store

// SetSessionStore sets the store the session middleware resolves sessions from.
func SetSessionStore(s *pool.Store) {
	sessionStore = s
}

// SessionMiddleware attaches the caller's session to the request, starting a new one
// when the header is missing or names an expired session. The id is always echoed back.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionStore == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "session_unavailable",
				"message": "session store is not configured",
			})
			return
		}
		sess, _ := sessionStore.Resolve(c.GetHeader(SessionHeader))
		c.Set(sessionKey, sess)
		c.Header(SessionHeader, sess.ID)
		c.Next()
	}
}

func currentSession(c *gin.Context) *pool.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*pool.Session)
	return sess
}

// requireSession returns the request's session or aborts with 503.
func requireSession(c *gin.Context) (*pool.Session, bool) {
	sess := currentSession(c)
	if sess == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error":   "session_unavailable",
			"message": "no session attached to request",
		})
		return nil, false
	}
	return sess, true
}
