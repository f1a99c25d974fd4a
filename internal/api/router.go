package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bookstore-ledger/internal/api/handler"
	"github.com/bookstore-ledger/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	bookHandler *handler.BookHandler,
	reportHandler *handler.ReportHandler,
	coverHandler *handler.CoverHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Catalog and ledger operations
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.Register)
			books.GET("", bookHandler.List)
			books.GET("/:isbn", bookHandler.GetByISBN)
			books.DELETE("/:isbn", bookHandler.Delete)
			books.POST("/:isbn/restocks", bookHandler.Restock)
			books.POST("/:isbn/sales", bookHandler.Sell)
			books.GET("/:isbn/transactions", bookHandler.History)
			books.GET("/:isbn/restocks/count", bookHandler.RestockCount)
			books.GET("/:isbn/cover", coverHandler.Get)
		}

		// Extremal queries and cash balance
		reports := v1.Group("/reports")
		{
			reports.GET("/most-expensive", reportHandler.MostExpensive)
			reports.GET("/least-expensive", reportHandler.LeastExpensive)
			reports.GET("/best-seller", reportHandler.BestSeller)
		}

		v1.GET("/cashbox", reportHandler.Balance)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
