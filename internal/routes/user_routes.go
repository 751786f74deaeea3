package routes

import (
	"github.com/gin-gonic/gin"

	"atuna_estate/internal/controllers"
	"atuna_estate/internal/middleware"
)

func UserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("/me", controllers.Me)
		users.GET("/me/balance", controllers.GetBalance)
		users.GET("", controllers.ListUsers)
		users.GET("/:id", controllers.GetUser)
		users.PATCH("/:id", controllers.UpdateUser)
		users.DELETE("/:id", controllers.DeleteUser)
		users.GET("/:id/balance", controllers.GetBalance)
		users.GET("/:id/analytics", controllers.GetUserAnalytics)
	}
}
