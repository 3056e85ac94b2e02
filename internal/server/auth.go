package server

import (
	"net/http"

	"github.com/deadlyfingers/ARStudioGame/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired gates every endpoint on the code query parameter. With a JWT
// secret configured the code must be a valid HS256 token; otherwise it is
// compared against the static access code.
func AuthRequired(cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("code")

		if cfg.JWTSecret != "" {
			token, err := jwt.Parse(code, func(t *jwt.Token) (interface{}, error) {
				return []byte(cfg.JWTSecret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.Next()
			return
		}

		if code != cfg.AccessCode {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
