package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/constants"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/services"
)

// RequireAuth checks the session and resolves the signed-in user.
// A session pointing at a user that no longer exists is cleared.
func RequireAuth(resolver *services.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		publicID, ok := session.Get(constants.ContextKeyUserPublicID).(string)
		if !ok || publicID == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, err := resolver.ResolveUserID(publicID)
		if err != nil {
			if apierrors.KindOf(err) == apierrors.KindNotFound {
				session.Clear()
				_ = session.Save()
				apierrors.Unauthorized(c, "")
			} else {
				_ = c.Error(err)
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserPublicID, publicID)
		c.Next()
	}
}

// GetUserID retrieves the current user's internal ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	return getUint64(c, constants.ContextKeyUserID)
}

// GetUserPublicID retrieves the current user's public ID from context
func GetUserPublicID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUserPublicID)
	if !exists {
		return "", false
	}
	publicID, ok := value.(string)
	return publicID, ok && publicID != ""
}

func getUint64(c *gin.Context, key string) (uint64, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
