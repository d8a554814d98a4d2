package compoff

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	compOffs := r.Group("/comp-offs")
	compOffs.Use(middleware.AuthMiddleware())
	{
		compOffs.GET("/mine", handler.GetOwn)
		compOffs.GET("", middleware.RoleMiddleware("ADMIN"), handler.GetAll)
		compOffs.POST("",
			middleware.RoleMiddleware("ADMIN"),
			middleware.Idempotency(rdb),
			handler.Grant,
		)
		compOffs.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), handler.Delete)
	}
}
