package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/utils"
)

// RequireRoles guards a route group to the given roles. Admin always
// passes.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondAppError(c, utils.AuthorizationError("no role in context"))
			c.Abort()
			return
		}

		role, ok := userRole.(string)
		if !ok {
			utils.RespondAppError(c, utils.AuthorizationError("invalid role in context"))
			c.Abort()
			return
		}

		if role == models.RoleAdmin {
			c.Next()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, utils.AuthorizationError("role %s is not permitted here", role))
		c.Abort()
	}
}
