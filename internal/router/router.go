package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sndbilling/internal/handler"
	"sndbilling/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	invoiceH *handler.InvoiceHandler,
	statementH *handler.StatementHandler,
	healthH *handler.HealthHandler,
	log zerolog.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))

	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	rentals := v1.Group("/rentals")
	rentals.POST("/:id/invoices", invoiceH.Generate)
	rentals.GET("/:id/invoices", invoiceH.List)
	rentals.DELETE("/:id/invoices/:invoice_id", invoiceH.Cancel)
	rentals.GET("/:id/statement", statementH.Download)

	customers := v1.Group("/customers")
	customers.GET("/:id/invoices", invoiceH.ListByCustomer)

	return r
}
