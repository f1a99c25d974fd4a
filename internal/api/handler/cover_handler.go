package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bookstore-ledger/internal/covers"
	"github.com/bookstore-ledger/internal/store"
	"github.com/gin-gonic/gin"
)

// CoverHandler serves book cover images fetched from the cover service
type CoverHandler struct {
	store   store.Service
	fetcher covers.Fetcher
	logger  *slog.Logger
}

// NewCoverHandler creates a new cover handler
func NewCoverHandler(logger *slog.Logger, storeService store.Service, fetcher covers.Fetcher) *CoverHandler {
	return &CoverHandler{
		store:   storeService,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Get streams the cover image for a registered book. Unknown ISBNs and books
// without a cover both yield 404.
func (h *CoverHandler) Get(c *gin.Context) {
	isbn := c.Param("isbn")

	if _, err := h.store.FindByISBN(c.Request.Context(), isbn); err != nil {
		RespondNotFound(c, err.Error())
		return
	}

	data, err := h.fetcher.Fetch(c.Request.Context(), isbn)
	if err != nil {
		if errors.Is(err, covers.ErrCoverNotFound) {
			RespondNotFound(c, "No cover available for "+isbn)
			return
		}
		h.logger.Error("Cover fetch failed", "isbn", isbn, "error", err)
		RespondInternalError(c)
		return
	}

	c.Data(http.StatusOK, "image/jpeg", data)
}
