package auth

import (
	"log"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the browser cookie carrying the signed session id.
const SessionCookieName = "session_id"

const (
	contextKeySessionID = "session_id"
	contextKeyIdentity  = "identity"
)

// SessionIDFromContext returns the current session id set by LoadSession.
func SessionIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeySessionID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// IdentityFromContext returns the identity set by LoadSession.
// Absent means Anonymous.
func IdentityFromContext(c *gin.Context) Identity {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}
	}
	ident, _ := v.(Identity)
	return ident
}

// SetSessionCookie writes the signed session cookie for the given id.
func SetSessionCookie(c *gin.Context, sessions *Store, id string) {
	c.SetCookie(SessionCookieName, sessions.CookieValue(id), int(sessions.TTL().Seconds()), "/", "", false, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// LoadSession ensures every request carries a live session: a valid cookie is
// verified and loaded, anything else gets a fresh anonymous session. Drafts
// accumulated before registering are therefore already session-scoped.
func LoadSession(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if raw, err := c.Cookie(SessionCookieName); err == nil && raw != "" {
			if id, ok := sessions.ParseCookie(raw); ok {
				// Expired sessions fall through and get a fresh one.
				if live, err := sessions.Exists(ctx, id); err == nil && live {
					ident, err := sessions.Identity(ctx, id)
					if err == nil {
						c.Set(contextKeySessionID, id)
						c.Set(contextKeyIdentity, ident)
						c.Next()
						return
					}
					log.Printf("session %s: %v", id, err)
				}
			}
		}

		id, err := sessions.Create(ctx)
		if err != nil {
			// Redis is down; proceed anonymous without a session.
			log.Printf("create session: %v", err)
			c.Set(contextKeyIdentity, Identity{})
			c.Next()
			return
		}
		SetSessionCookie(c, sessions, id)
		c.Set(contextKeySessionID, id)
		c.Set(contextKeyIdentity, Identity{})
		c.Next()
	}
}
