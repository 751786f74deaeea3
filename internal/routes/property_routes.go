package routes

import (
	"github.com/gin-gonic/gin"

	"atuna_estate/internal/controllers"
	"atuna_estate/internal/middleware"
)

func PropertyRoutes(r *gin.Engine) {
	properties := r.Group("/properties")
	properties.Use(middleware.RequireAuth())
	{
		properties.POST("", controllers.CreateProperty)
		properties.GET("", controllers.ListProperties)
		properties.GET("/:id", controllers.GetProperty)
		properties.PATCH("/:id", controllers.UpdateProperty)
		properties.DELETE("/:id", controllers.DeleteProperty)
		properties.POST("/:id/generate-description", controllers.GenerateDescription)
		properties.GET("/:id/ar-view", controllers.ARView)
	}
}
