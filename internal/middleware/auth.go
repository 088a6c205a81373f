package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"quizbank/pkg/response"
)

// Context keys populated by AuthJWT.
const (
	ContextUserIDKey = "userID"
	ContextEmailKey  = "email"
)

// AuthJWT returns a gin middleware that validates the bearer token and
// stores the caller's id and email in the request context.
func AuthJWT(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Err(c, http.StatusUnauthorized, "Missing authorization header", nil)
			c.Abort()
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Err(c, http.StatusUnauthorized, "Malformed authorization header", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			response.Err(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			response.Err(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		userID, ok := claims["_id"].(string)
		if !ok || userID == "" {
			response.Err(c, http.StatusUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, userID)
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextEmailKey, email)
		}

		c.Next()
	}
}
