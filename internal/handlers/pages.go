package handlers

import (
	"net/http"

	"github.com/anmshpython/to-do-list/internal/auth"

	"github.com/gin-gonic/gin"
)

// About renders the static informational page.
func About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{
		"identity": auth.IdentityFromContext(c),
	})
}
