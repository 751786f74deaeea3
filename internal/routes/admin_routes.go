package routes

import (
	"github.com/gin-gonic/gin"

	"atuna_estate/internal/controllers"
	"atuna_estate/internal/middleware"
	"atuna_estate/internal/models"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithAnyRole(models.RoleAdmin, models.RoleSubAdmin))
	{
		admin.POST("/users", controllers.CreateUser)
		admin.DELETE("/users/:id/purge", controllers.PurgeUser)
		admin.GET("/analytics", controllers.ListUserAnalytics)
		admin.POST("/payments/:id/settle", controllers.SettlePayment)
	}
}
