package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/services"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

// RequireProjectAccess checks that the project in the :id parameter exists
// and belongs to the current user. Must run after RequireAuth.
func RequireProjectAccess(resolver *services.Resolver, guard *services.OwnershipGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		publicID := c.Param("id")
		if !utils.IsPublicID(publicID) {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		projectID, err := resolver.ResolveProjectID(publicID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if err := guard.AssertOwnsProject(userID, projectID); err != nil {
			abortWithError(c, err)
			return
		}

		c.Next()
	}
}

// abortWithError answers with the mapped error response and records the
// error on the context for the request logger.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	apierrors.Respond(c, err)
	c.Abort()
}
