// Package widgetauth decodes the optional JWT the embeddable web widget
// attaches to its requests. The token carries the partner site's user id;
// requests without one are still served, they just vote anonymously.
package widgetauth

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/imageimprov/photogame-api/internal/logger"
)

// ClaimsKey is the gin context key holding the decoded widget claims.
const ClaimsKey = "widget_claims"

// UserIDKey is the gin context key holding the partner user id, when present.
const UserIDKey = "widget_user_id"

// Decode returns a middleware that parses a Bearer widget token if one is
// attached. A missing, expired or malformed token never rejects the request;
// identity is a hint here, not a gate.
func Decode(secret string) gin.HandlerFunc {
	log := logger.Service("widgetauth")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			c.Next()
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithLeeway(30*time.Second))
		if err != nil {
			log.Debug("Ignoring unparseable widget token", "error", err)
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}

		c.Set(ClaimsKey, claims)
		if userID, ok := claims["user_id"].(string); ok && userID != "" {
			c.Set(UserIDKey, userID)
		}

		c.Next()
	}
}
