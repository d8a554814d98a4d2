package balance

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("ADMIN"))
	{
		balances.POST("/users/:userId/adjust", handler.Adjust)
	}
}
