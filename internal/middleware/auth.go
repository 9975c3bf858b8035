package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// Claims carries the identity provider's notion of the signed-in user.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates JWT tokens and sets user identity in the context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "MISSING_TOKEN",
					Message: "Authorization header is required",
				},
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "INVALID_TOKEN_FORMAT",
					Message: "Authorization header must be in format: Bearer <token>",
				},
			})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenParts[1], &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "INVALID_TOKEN",
					Message: "Invalid or expired token",
				},
			})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || !token.Valid {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "INVALID_CLAIMS",
					Message: "Invalid token claims",
				},
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// ResolveRole looks up the user's role record by uid; when the record is
// absent (or unreadable) the configured admin-email allowlist decides, and
// anyone else is a plain user.
func ResolveRole(users *repository.UsersRepository, adminEmails []string, logger *logrus.Logger) gin.HandlerFunc {
	allowlist := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		allowlist[strings.ToLower(strings.TrimSpace(email))] = true
	}

	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		email := strings.ToLower(c.GetString("user_email"))

		role, err := users.GetRole(c.Request.Context(), uid)
		if err != nil {
			logger.WithError(err).WithField("uid", uid).Warn("role lookup failed, falling back to allowlist")
			role = ""
		}
		if role == "" {
			if allowlist[email] {
				role = "admin"
			} else {
				role = "user"
			}
		}

		c.Set("user_role", role)
		c.Next()
	}
}

// RequireAdmin guards taxonomy mutation and product creation routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_role") != "admin" {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    models.CodeForbidden,
					Message: "Admin role required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
