package leave

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/team", handler.TeamLeaves)
		leaves.GET("/:id", handler.GetByID)
		leaves.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.PATCH("/:id", middleware.RateLimitByUser(1, 5), handler.Update)
		leaves.POST("/:id/decision", middleware.RateLimitByUser(1, 5), handler.Decide)
		leaves.POST("/:id/hide", handler.Hide)
		leaves.DELETE("/:id", handler.Delete)
	}
}
