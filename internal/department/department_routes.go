package department

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", handler.GetAll)
		departments.GET("/:id", handler.GetByID)
		departments.POST("", middleware.RoleMiddleware("ADMIN"), handler.Create)
		departments.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), handler.Delete)

		departments.POST("/:id/members", middleware.RoleMiddleware("ADMIN"), handler.AddMember)
		departments.DELETE("/:id/members/:userId", middleware.RoleMiddleware("ADMIN"), handler.RemoveMember)
		departments.POST("/:id/managers", middleware.RoleMiddleware("ADMIN"), handler.AddManager)
		departments.DELETE("/:id/managers/:userId", middleware.RoleMiddleware("ADMIN"), handler.RemoveManager)
	}
}
