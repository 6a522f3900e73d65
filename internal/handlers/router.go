package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/middleware"
	"github.com/yukikurage/project-tasks-api/internal/services"
)

// Routes bundles what RegisterRoutes needs to wire the API.
type Routes struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Projects *ProjectHandler
	Tasks    *TaskHandler
	Resolver *services.Resolver
	Guard    *services.OwnershipGuard
}

// RegisterRoutes mounts every endpoint on r. Session middleware must
// already be installed.
func RegisterRoutes(r gin.IRouter, routes Routes) {
	if routes.Health != nil {
		r.GET("/health", routes.Health.Health)
	}

	requireAuth := middleware.RequireAuth(routes.Resolver)
	projectAccess := middleware.RequireProjectAccess(routes.Resolver, routes.Guard)
	taskAccess := middleware.RequireTaskAccess(routes.Resolver, routes.Guard)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", routes.Auth.Signup)
			auth.POST("/login", routes.Auth.Login)
			auth.POST("/logout", routes.Auth.Logout)
			auth.GET("/me", requireAuth, routes.Auth.GetCurrentUser)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", routes.Projects.ListProjects)
			projects.POST("", routes.Projects.CreateProject)
			projects.GET("/:id", projectAccess, routes.Projects.GetProject)
			projects.PUT("/:id", projectAccess, routes.Projects.UpdateProject)
			projects.DELETE("/:id", projectAccess, routes.Projects.DeleteProject)
			projects.GET("/:id/tasks", projectAccess, routes.Tasks.ListProjectTasks)
			projects.POST("/:id/tasks", projectAccess, routes.Tasks.CreateParentTask)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("/:id", taskAccess, routes.Tasks.GetTaskTree)
			tasks.PUT("/:id", taskAccess, routes.Tasks.UpdateTask)
			tasks.DELETE("/:id", taskAccess, routes.Tasks.DeleteTask)
			tasks.POST("/:id/subtasks", taskAccess, routes.Tasks.CreateSubtask)
			tasks.POST("/:id/suggestions", taskAccess, routes.Tasks.SuggestSubtasks)
		}
	}
}
