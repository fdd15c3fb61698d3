// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAdminRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	setRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
		}
	}
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	r.GET("/as-admin", setRole("admin"), AdminRequired("admin"), ok)
	r.GET("/as-member", setRole("member"), AdminRequired("admin"), ok)
	r.GET("/anonymous", setRole(""), AdminRequired("admin"), ok)

	for path, want := range map[string]int{
		"/as-admin":  http.StatusOK,
		"/as-member": http.StatusForbidden,
		"/anonymous": http.StatusForbidden,
	} {
		req, _ := http.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, path)
	}
}
