package correction

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	corrections := r.Group("/attendance-corrections")
	corrections.Use(middleware.AuthMiddleware())
	{
		corrections.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.Idempotency(rdb),
			handler.Request,
		)
		corrections.GET("/mine", handler.GetOwn)
		corrections.GET("", middleware.RoleMiddleware("ADMIN"), handler.GetAll)
		corrections.POST("/:id/decision", middleware.RoleMiddleware("ADMIN"), handler.Decide)
	}
}
