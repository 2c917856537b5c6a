package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the opaque per-client token.
const SessionCookie = "lumina_session"

// sessionContextKey is where the resolved session id lives in the gin
// context.
const sessionContextKey = "session_id"

// cookieMaxAge is the client-side cookie lifetime. Server-side session
// rows never expire; this only governs how long the browser holds the
// token.
const cookieMaxAge = 365 * 24 * 60 * 60

// Session resolves the client's session token, minting a fresh UUID and
// setting the cookie when none is present or the value is not a UUID.
// No expiry, no rotation.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || !validToken(sessionID) {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sessionID, cookieMaxAge, "/", "", false, true)
		}

		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id resolved by the Session middleware.
func SessionID(c *gin.Context) string {
	if v, exists := c.Get(sessionContextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func validToken(token string) bool {
	_, err := uuid.Parse(token)
	return err == nil
}
