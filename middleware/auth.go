package middleware

import (
	"net/http"
	"quanta-backend/utils"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

func parseBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	authHeader = strings.Trim(authHeader, "\"' ")

	if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		authHeader = "Bearer " + authHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}

	return strings.Trim(parts[1], "\"' "), true
}

func extractJwtClaims(c *gin.Context) (jwt.MapClaims, bool) {
	tokenString, ok := parseBearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or malformed"})
		c.Abort()
		return nil, false
	}

	claims, err := utils.DecodeJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
		c.Abort()
		return nil, false
	}

	return claims, true
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	c.Set("user_id", claims["user_id"])
	c.Set("wallet", claims["wallet"])
	c.Set("is_admin", claims["is_admin"])
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := extractJwtClaims(c)
		if !ok {
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth populates the user claims when a valid token is present and
// lets anonymous requests through. Content reads and access checks behave
// differently for anonymous callers, they must not reject them.
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := parseBearerToken(c)
		if ok {
			if claims, err := utils.DecodeJWT(tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := extractJwtClaims(c)
		if !ok {
			return
		}

		setClaims(c, claims)

		if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: admin role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
