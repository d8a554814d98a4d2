package roster

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", handler.ListHolidays)
		holidays.POST("", middleware.RoleMiddleware("ADMIN"), handler.CreateHoliday)
		holidays.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), handler.DeleteHoliday)
	}

	weeklyOffs := r.Group("/weekly-offs")
	weeklyOffs.Use(middleware.AuthMiddleware())
	{
		weeklyOffs.GET("", handler.ListWeeklyOffs)
		weeklyOffs.POST("", middleware.RoleMiddleware("ADMIN"), handler.CreateWeeklyOff)
		weeklyOffs.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), handler.DeleteWeeklyOff)
	}
}
