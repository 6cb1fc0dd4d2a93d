package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "sid"
	CtxSessionKey = "session_id"

	sessionMaxAge = 24 * 60 * 60
)

// Session makes sure every browser carries an anonymous session id cookie.
// The id only scopes result banners; it identifies nobody.
func Session(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sid, sessionMaxAge, "/", "", secure, true)
		}
		c.Set(CtxSessionKey, sid)
		c.Next()
	}
}
