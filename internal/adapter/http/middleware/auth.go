package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"
)

const userIDKey = "user_id"

// RequireAuth accepts "Authorization: Bearer <token>" and stores the user id
// carried by the token in the gin context.
func RequireAuth(sessions ports.SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgNoTokenProvided, lang),
			)
			return
		}

		userID, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidToken, lang),
			)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" outside RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
