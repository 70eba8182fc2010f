package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/casafernando/comanda-backend/utils"
)

// WebSocketAuthMiddleware authenticates socket upgrades. Browsers cannot
// set headers on WebSocket requests, so the token travels as a query param.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
