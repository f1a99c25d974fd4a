package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/bookstore-ledger/internal/domain/book"
	"github.com/bookstore-ledger/internal/domain/ledger"
	"github.com/bookstore-ledger/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BookHandler handles HTTP requests for catalog and ledger operations
type BookHandler struct {
	store  store.Service
	logger *slog.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(logger *slog.Logger, storeService store.Service) *BookHandler {
	return &BookHandler{
		store:  storeService,
		logger: logger,
	}
}

// Register handles registration of a new book, optionally funding its
// initial stock from the cash box
func (h *BookHandler) Register(c *gin.Context) {
	var req RegisterBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	purchasePrice, err := decimal.NewFromString(req.PurchasePrice)
	if err != nil {
		RespondBadRequest(c, "Invalid purchase_price: "+err.Error())
		return
	}
	salePrice, err := decimal.NewFromString(req.SalePrice)
	if err != nil {
		RespondBadRequest(c, "Invalid sale_price: "+err.Error())
		return
	}

	message, err := h.store.Register(c.Request.Context(), req.ISBN, req.Title, purchasePrice, salePrice, req.Quantity)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	RespondCreated(c, OutcomeResponse{Message: message, Balance: h.store.Balance().StringFixed(2)})
}

// Delete removes a book and its transaction history
func (h *BookHandler) Delete(c *gin.Context) {
	message, err := h.store.Delete(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	RespondOK(c, OutcomeResponse{Message: message, Balance: h.store.Balance().StringFixed(2)})
}

// Restock increases a book's stock, paying out of the cash box
func (h *BookHandler) Restock(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	message, err := h.store.Restock(c.Request.Context(), c.Param("isbn"), req.Quantity)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	RespondOK(c, OutcomeResponse{Message: message, Balance: h.store.Balance().StringFixed(2)})
}

// Sell decreases a book's stock, crediting the cash box
func (h *BookHandler) Sell(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	message, err := h.store.Sell(c.Request.Context(), c.Param("isbn"), req.Quantity)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	RespondOK(c, OutcomeResponse{Message: message, Balance: h.store.Balance().StringFixed(2)})
}

// GetByISBN retrieves a book, returning 404 if unknown
func (h *BookHandler) GetByISBN(c *gin.Context) {
	b, err := h.store.FindByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	RespondOK(c, mapBookToResponse(b))
}

// List returns the catalog ordered by title. With a title query parameter it
// returns the books whose title contains the fragment instead.
func (h *BookHandler) List(c *gin.Context) {
	var (
		books []*book.Book
		err   error
	)

	if title, ok := c.GetQuery("title"); ok {
		books, err = h.store.SearchByTitle(c.Request.Context(), title)
	} else {
		books, err = h.store.Catalog(c.Request.Context())
	}
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	responses := make([]BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, mapBookToResponse(b))
	}

	RespondOK(c, responses)
}

// History returns a book's transactions, newest first
func (h *BookHandler) History(c *gin.Context) {
	entries, err := h.store.History(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapEntryToResponse(entry))
	}

	RespondOK(c, responses)
}

// RestockCount returns the number of restock transactions for a book
func (h *BookHandler) RestockCount(c *gin.Context) {
	isbn := c.Param("isbn")
	count, err := h.store.RestockCount(c.Request.Context(), isbn)
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	RespondOK(c, RestockCountResponse{ISBN: isbn, Count: count})
}

// respondStoreError maps store errors to HTTP responses. Precondition errors
// become 4xx responses; anything else is a persistence failure.
func (h *BookHandler) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, book.ErrBookNotFound{}):
		RespondNotFound(c, err.Error())
	case errors.Is(err, book.ErrDuplicateISBN{}):
		RespondConflict(c, err.Error())
	case errors.Is(err, store.ErrInvalidQuantity):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, store.ErrInsufficientFunds) || errors.Is(err, store.ErrInsufficientStock):
		RespondUnprocessable(c, err.Error())
	default:
		h.logger.Error("Store operation failed", "error", err)
		RespondInternalError(c)
	}
}

// mapBookToResponse maps a book entity to a book response DTO
func mapBookToResponse(b *book.Book) BookResponse {
	return BookResponse{
		ISBN:          b.ISBN,
		Title:         b.Title,
		PurchasePrice: b.PurchasePrice.StringFixed(2),
		SalePrice:     b.SalePrice.StringFixed(2),
		Quantity:      b.Quantity,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

// mapEntryToResponse maps a ledger entry to an entry response DTO
func mapEntryToResponse(entry *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:         entry.ID,
		BookISBN:   entry.BookISBN,
		Kind:       string(entry.Kind),
		Quantity:   entry.Quantity,
		OccurredAt: entry.OccurredAt.Format(time.RFC3339),
	}
}
