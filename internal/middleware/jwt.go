package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-transcript-api/internal/models"
	"github.com/noah-isme/sma-transcript-api/pkg/response"
)

// Authenticator verifies an Authorization header value.
type Authenticator interface {
	Authenticate(header string) (*models.Identity, error)
}

// IdentityHandler is a gin handler that receives the verified caller explicitly.
type IdentityHandler func(c *gin.Context, identity models.Identity)

// Authenticated rejects requests without a valid bearer token and hands the identity to next.
func Authenticated(auth Authenticator, next IdentityHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := auth.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		next(c, *identity)
	}
}
