package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// notRequiredAuthMiddleware resolves the viewer when a token is present but
// lets the request through anonymously otherwise; visibility rules treat a
// missing viewer as a logged-out reader.
func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.Next()
		return
	}

	accessToken := strings.Split(header, " ")[1]
	if accessToken == "" {
		c.Next()
		return
	}

	user, err := h.getUserDataFromAccessToken(c.Request.Context(), accessToken)
	if err != nil {
		c.Next()
		return
	}

	c.Set("user", *user)

	c.Next()
}
