package handler

import (
	"log/slog"

	"github.com/bookstore-ledger/internal/store"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles HTTP requests for the extremal queries and the cash balance
type ReportHandler struct {
	store  store.Service
	logger *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, storeService store.Service) *ReportHandler {
	return &ReportHandler{
		store:  storeService,
		logger: logger,
	}
}

// MostExpensive returns the book with the highest sale price, 404 when the
// catalog is empty
func (h *ReportHandler) MostExpensive(c *gin.Context) {
	b, err := h.store.MostExpensive(c.Request.Context())
	if err != nil {
		h.logger.Error("Most expensive query failed", "error", err)
		RespondInternalError(c)
		return
	}
	if b == nil {
		RespondNotFound(c, "Catalog is empty")
		return
	}

	RespondOK(c, mapBookToResponse(b))
}

// LeastExpensive returns the book with the lowest sale price, 404 when the
// catalog is empty
func (h *ReportHandler) LeastExpensive(c *gin.Context) {
	b, err := h.store.LeastExpensive(c.Request.Context())
	if err != nil {
		h.logger.Error("Least expensive query failed", "error", err)
		RespondInternalError(c)
		return
	}
	if b == nil {
		RespondNotFound(c, "Catalog is empty")
		return
	}

	RespondOK(c, mapBookToResponse(b))
}

// BestSeller returns the book with the largest total sold quantity, 404 when
// no sale has been recorded yet
func (h *ReportHandler) BestSeller(c *gin.Context) {
	result, err := h.store.BestSeller(c.Request.Context())
	if err != nil {
		h.logger.Error("Best seller query failed", "error", err)
		RespondInternalError(c)
		return
	}
	if result == nil {
		RespondNotFound(c, "No sales recorded yet")
		return
	}

	RespondOK(c, BestSellerResponse{
		Book:      mapBookToResponse(&result.Book),
		TotalSold: result.TotalSold,
	})
}

// Balance returns the current cash balance
func (h *ReportHandler) Balance(c *gin.Context) {
	RespondOK(c, BalanceResponse{Balance: h.store.Balance().StringFixed(2)})
}
