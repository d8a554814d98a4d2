package attendance

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/clock-in", handler.ClockIn)
		attendances.POST("/clock-out", handler.ClockOut)
		attendances.GET("", handler.ListOwn)
		attendances.GET("/users/:userId", handler.ListForUser)
	}
}
