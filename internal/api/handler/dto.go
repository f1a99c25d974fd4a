package handler

// RegisterBookRequest represents a request to register a new book. Prices are
// decimal strings so no precision is lost in transit.
type RegisterBookRequest struct {
	ISBN          string `json:"isbn" binding:"required"`
	Title         string `json:"title" binding:"required"`
	PurchasePrice string `json:"purchase_price" binding:"required"`
	SalePrice     string `json:"sale_price" binding:"required"`
	Quantity      int    `json:"quantity" binding:"min=0"`
}

// MovementRequest represents a restock or sale request
type MovementRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// BookResponse represents a book in API responses
type BookResponse struct {
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	PurchasePrice string `json:"purchase_price"`
	SalePrice     string `json:"sale_price"`
	Quantity      int    `json:"quantity"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// BestSellerResponse represents the best-seller report entry
type BestSellerResponse struct {
	Book      BookResponse `json:"book"`
	TotalSold int64        `json:"total_sold"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID         int64  `json:"id"`
	BookISBN   string `json:"book_isbn"`
	Kind       string `json:"kind"`
	Quantity   int    `json:"quantity"`
	OccurredAt string `json:"occurred_at"`
}

// OutcomeResponse reports the result of a mutating operation
type OutcomeResponse struct {
	Message string `json:"message"`
	Balance string `json:"balance"`
}

// BalanceResponse reports the current cash balance
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// RestockCountResponse reports the number of restock transactions for a book
type RestockCountResponse struct {
	ISBN  string `json:"isbn"`
	Count int64  `json:"count"`
}
