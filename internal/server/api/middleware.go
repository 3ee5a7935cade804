package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mvaldesc/conecta-api/internal/server/models"
)

const identityKey = "identity"

// AuthRequired extracts the bearer token, authenticates it, and stores the
// resolved account in the request context. Every failure mode gets the same
// generic 401.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondUnauthorized(c)
			c.Abort()
			return
		}

		user, err := a.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondUnauthorized(c)
			c.Abort()
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// identity returns the account AuthRequired stored for this request.
func identity(c *gin.Context) *models.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
