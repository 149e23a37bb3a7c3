package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// RequireConfirmation blocks destructive requests unless the caller passed confirm=true
func RequireConfirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("confirm") != "true" {
			c.JSON(http.StatusBadRequest, models.NewAPIError(
				models.ErrConfirmationNeeded,
				"This action must be confirmed",
				map[string]interface{}{"hint": "repeat the request with ?confirm=true"},
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
