package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/services"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

// RequireTaskAccess checks that the task in the :id parameter exists and
// that its project belongs to the current user. Must run after RequireAuth.
func RequireTaskAccess(resolver *services.Resolver, guard *services.OwnershipGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		publicID := c.Param("id")
		if !utils.IsPublicID(publicID) {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		taskID, err := resolver.ResolveTaskID(publicID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if err := guard.AssertOwnsTask(userID, taskID); err != nil {
			abortWithError(c, err)
			return
		}

		c.Next()
	}
}
