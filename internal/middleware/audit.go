package middleware

import (
	"bytes"
	"io"
	"net/http"
	"regexp"

	"github.com/mutiaradiva/Chachingify-Website/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// credentials must never land in the audit trail
var credentialField = regexp.MustCompile(`(?i)("[^"]*password[^"]*"\s*:\s*)"(?:[^"\\]|\\.)*"`)

func redactSecrets(body []byte) string {
	return credentialField.ReplaceAllString(string(body), `$1"[redacted]"`)
}

// AuditMiddleware records mutating calls of authenticated users.
// Reads are not logged; a failed insert never fails the request.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		mutating := c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead
		if mutating && c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		if !mutating {
			return
		}
		user, ok := CurrentUser(c)
		if !ok {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + redactSecrets(bodyBytes)
		}

		entry := models.AuditLog{
			UserID:    user.ID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
