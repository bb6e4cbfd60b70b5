package routes

import (
	"github.com/gin-gonic/gin"

	"freshsales/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	opportunityHandler *handlers.OpportunityHandler,
	leadHandler *handlers.LeadHandler,
	customerHandler *handlers.CustomerHandler,
) *gin.Engine {

	opportunities := r.Group("/opportunities")
	{
		opportunities.POST("/", opportunityHandler.Create)
		opportunities.GET("/", opportunityHandler.List)
		opportunities.GET("/forecast", opportunityHandler.Forecast)
		opportunities.GET("/stage/:stage", opportunityHandler.ListByStage)
		opportunities.GET("/:id", opportunityHandler.GetByID)
		opportunities.PUT("/:id", opportunityHandler.Update)
		opportunities.PUT("/:id/stage", opportunityHandler.ChangeStage)
		opportunities.DELETE("/:id", opportunityHandler.Delete)
	}

	leads := r.Group("/leads")
	{
		leads.POST("/", leadHandler.Create)
		leads.GET("/", leadHandler.List)
		leads.GET("/:id", leadHandler.GetByID)
		leads.PUT("/:id", leadHandler.Update)
	}

	customers := r.Group("/customers")
	{
		customers.GET("/", customerHandler.List)
		customers.GET("/:id", customerHandler.GetByID)
	}

	return r
}
