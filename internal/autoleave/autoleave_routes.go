package autoleave

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	autoLeaves := r.Group("/auto-leaves")
	autoLeaves.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("ADMIN"))
	{
		autoLeaves.POST("/run", handler.Run)
		autoLeaves.GET("/runs", handler.ListRuns)
	}
}
