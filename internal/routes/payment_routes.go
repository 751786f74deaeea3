package routes

import (
	"github.com/gin-gonic/gin"

	"atuna_estate/internal/controllers"
	"atuna_estate/internal/middleware"
)

func PaymentRoutes(r *gin.Engine) {
	payments := r.Group("/payments")
	payments.Use(middleware.RequireAuth())
	{
		payments.POST("", controllers.CreatePayment)
		payments.GET("", controllers.ListPayments)
		payments.GET("/:id", controllers.GetPayment)
	}
}
