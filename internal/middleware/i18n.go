// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hanmaru/mall-backend/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := "ko"

		// Handle cases like "ko-KR,ko;q=0.9,en;q=0.8"
		if header := c.GetHeader("Accept-Language"); header != "" {
			first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			for _, supported := range i18n.GetSupportedLanguages() {
				if first == supported || strings.HasPrefix(first, supported+"-") || strings.HasPrefix(first, supported+"_") {
					lang = supported
					break
				}
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}
