package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/legacylearning/intake-api/internal/service"
	appErrors "github.com/legacylearning/intake-api/pkg/errors"
	"github.com/legacylearning/intake-api/pkg/response"
)

// AdminAuth protects triage routes with the configured admin credential.
// The credential arrives either in X-Admin-Token or as a Bearer token.
func AdminAuth(verifier service.CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrInternal, "admin credential not configured"))
			c.Abort()
			return
		}

		credential := c.GetHeader("X-Admin-Token")
		if credential == "" {
			header := c.GetHeader("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				credential = parts[1]
			}
		}
		if credential == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if err := verifier.Verify(credential); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid admin credential"))
			c.Abort()
			return
		}

		c.Next()
	}
}
