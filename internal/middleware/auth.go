package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/BlueAI-edu/blueai-backend/internal/dto"
)

const teacherIDKey = "teacherID"

// TeacherClaims is what the identity provider puts in the bearer token. Only
// the teacher id and role matter to this service; credential management lives
// elsewhere.
type TeacherClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireTeacher verifies the bearer token and attaches the teacher identity
// to the request context. Student endpoints are public and never pass here.
func RequireTeacher(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := &TeacherClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Warn().Err(err).Msg("Rejected invalid bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid token"})
			return
		}
		if claims.Role != "teacher" && claims.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "Teacher role required"})
			return
		}

		c.Set(teacherIDKey, claims.Subject)
		c.Next()
	}
}

// TeacherID returns the authenticated teacher id attached by RequireTeacher.
func TeacherID(c *gin.Context) string {
	return c.GetString(teacherIDKey)
}
