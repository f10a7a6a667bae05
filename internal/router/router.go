package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"matterdesk/internal/handler"
	"matterdesk/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health   *handler.HealthHandler
	Contract *handler.ContractHandler
	Matter   *handler.MatterHandler
	Lawyer   *handler.LawyerHandler
	Stats    *handler.StatsHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Contract extraction
	contracts := v1.Group("/contracts")
	contracts.GET("/default", h.Contract.GetDefault)
	contracts.GET("/extract", h.Contract.ExtractDefault)
	contracts.POST("/extract-text", h.Contract.ExtractText)
	contracts.POST("/extract-file", h.Contract.ExtractFile)

	extractions := v1.Group("/extractions")
	extractions.GET("", h.Contract.ListExtractions)
	extractions.GET("/:id", h.Contract.GetExtraction)
	extractions.DELETE("/:id", h.Contract.DeleteExtraction)
	extractions.GET("/:id/export", h.Contract.ExportExtraction)
	extractions.POST("/:id/ask", h.Contract.Ask)

	// Legal matters
	matters := v1.Group("/matters")
	matters.POST("", h.Matter.Create)
	matters.GET("", h.Matter.List)
	matters.GET("/total", h.Matter.Total)
	matters.GET("/export", h.Matter.ExportCSV)
	matters.GET("/by-lawyer/:lawyerId", h.Matter.ListByLawyer)
	matters.POST("/from-extraction/:id", h.Matter.CreateFromExtraction)
	matters.GET("/:id", h.Matter.GetByID)
	matters.PUT("/:id", h.Matter.Update)
	matters.DELETE("/:id", h.Matter.Delete)
	matters.PUT("/:id/lawyer", h.Matter.AssignLawyer)
	matters.DELETE("/:id/lawyer", h.Matter.UnassignLawyer)

	// Lawyers
	lawyers := v1.Group("/lawyers")
	lawyers.POST("", h.Lawyer.Create)
	lawyers.GET("", h.Lawyer.List)
	lawyers.GET("/:id", h.Lawyer.GetByID)
	lawyers.PUT("/:id", h.Lawyer.Update)
	lawyers.DELETE("/:id", h.Lawyer.Delete)
	lawyers.GET("/:id/matters", h.Lawyer.Matters)
	lawyers.POST("/:id/matters", h.Lawyer.AssignMatters)

	// Dashboard
	v1.GET("/stats", h.Stats.GetStats)

	return r
}
