package routes

import (
	"github.com/gin-gonic/gin"

	"atuna_estate/internal/controllers"
	"atuna_estate/internal/middleware"
)

func ContractRoutes(r *gin.Engine) {
	contracts := r.Group("/contracts")
	contracts.Use(middleware.RequireAuth())
	{
		contracts.POST("", controllers.CreateContract)
		contracts.GET("", controllers.ListContracts)
		contracts.GET("/:id", controllers.GetContract)
		contracts.PATCH("/:id", controllers.UpdateContract)
		contracts.DELETE("/:id", controllers.DeleteContract)
		contracts.POST("/:id/analyze", controllers.AnalyzeContract)
	}
}
