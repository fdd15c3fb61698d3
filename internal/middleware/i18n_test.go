// internal/middleware/i18n_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanmaru/mall-backend/internal/i18n"
)

func TestI18nMiddlewareNegotiation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize("../i18n/locales", "ko"))

	cases := []struct {
		header string
		want   string
	}{
		{"", "ko"},
		{"ko", "ko"},
		{"ko-KR,ko;q=0.9,en;q=0.8", "ko"},
		{"en", "en"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR,fr;q=0.9", "ko"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest("GET", "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Accept-Language", tc.header)
		}

		I18nMiddleware()(c)

		lang, _ := c.Get("lang")
		assert.Equal(t, tc.want, lang, "header %q", tc.header)
	}
}
