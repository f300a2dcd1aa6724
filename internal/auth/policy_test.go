package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRolePolicy(t *testing.T) {
	tests := []struct {
		name  string
		ident Identity
		minID int64
		want  Decision
	}{
		{"anonymous passes", Identity{}, 1, Allow},
		{"first user denied", Identity{Authenticated: true, UserID: 1}, 1, Deny},
		{"any user denied", Identity{Authenticated: true, UserID: 99}, 1, Deny},
		{"below threshold passes", Identity{Authenticated: true, UserID: 2}, 10, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RolePolicy(tt.ident, tt.minID))
		})
	}
}

func TestRequireRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/guarded",
		func(c *gin.Context) { c.Set(contextKeyIdentity, Identity{Authenticated: true, UserID: 1}) },
		RequireRole(1),
		func(c *gin.Context) { c.String(http.StatusOK, "through") },
	)
	router.GET("/open",
		RequireRole(1),
		func(c *gin.Context) { c.String(http.StatusOK, "through") },
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "through", w.Body.String())
}
