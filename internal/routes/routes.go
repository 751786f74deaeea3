package routes

import (
	"github.com/gin-gonic/gin"

	"atuna_estate/internal/logger"
)

// SetupRouter assembles the full API surface. The caller decides how to
// serve it.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(logger.RequestLogger())
	r.Use(gin.Recovery())

	AuthRoutes(r)
	UserRoutes(r)
	PropertyRoutes(r)
	ContractRoutes(r)
	PaymentRoutes(r)
	ChatRoutes(r)
	AdminRoutes(r)

	return r
}
