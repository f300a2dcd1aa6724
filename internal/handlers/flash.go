package handlers

import (
	"log"

	"github.com/anmshpython/to-do-list/internal/auth"

	"github.com/gin-gonic/gin"
)

// flasher adds session-flash plumbing to a handler.
type flasher struct {
	sessions *auth.Store
}

func (f flasher) flash(c *gin.Context, msg string) {
	if sid := auth.SessionIDFromContext(c); sid != "" {
		if err := f.sessions.AddFlash(c.Request.Context(), sid, msg); err != nil {
			log.Printf("flash: %v", err)
		}
	}
}

func (f flasher) popFlashes(c *gin.Context) []string {
	sid := auth.SessionIDFromContext(c)
	if sid == "" {
		return nil
	}
	flashes, err := f.sessions.PopFlashes(c.Request.Context(), sid)
	if err != nil {
		log.Printf("pop flashes: %v", err)
		return nil
	}
	return flashes
}
