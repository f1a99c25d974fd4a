package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookstore-ledger/internal/domain/book"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReportHandler_MostExpensive(t *testing.T) {
	logger := testHandlerLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := NewReportHandler(logger, mockService)

		mockService.On("MostExpensive", mock.Anything).
			Return(newTestBook("111", "Book A", 5), nil)

		router := setupTestRouter()
		router.GET("/reports/most-expensive", handler.MostExpensive)

		req, _ := http.NewRequest(http.MethodGet, "/reports/most-expensive", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeData[BookResponse](t, rr.Body.Bytes())
		assert.Equal(t, "111", resp.ISBN)
		mockService.AssertExpectations(t)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := NewReportHandler(logger, mockService)

		mockService.On("MostExpensive", mock.Anything).Return(nil, nil)

		router := setupTestRouter()
		router.GET("/reports/most-expensive", handler.MostExpensive)

		req, _ := http.NewRequest(http.MethodGet, "/reports/most-expensive", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := NewReportHandler(logger, mockService)

		mockService.On("MostExpensive", mock.Anything).Return(nil, errors.New("db down"))

		router := setupTestRouter()
		router.GET("/reports/most-expensive", handler.MostExpensive)

		req, _ := http.NewRequest(http.MethodGet, "/reports/most-expensive", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestReportHandler_LeastExpensive(t *testing.T) {
	logger := testHandlerLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := NewReportHandler(logger, mockService)

		mockService.On("LeastExpensive", mock.Anything).
			Return(newTestBook("222", "Book B", 2), nil)

		router := setupTestRouter()
		router.GET("/reports/least-expensive", handler.LeastExpensive)

		req, _ := http.NewRequest(http.MethodGet, "/reports/least-expensive", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeData[BookResponse](t, rr.Body.Bytes())
		assert.Equal(t, "222", resp.ISBN)
		mockService.AssertExpectations(t)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := NewReportHandler(logger, mockService)

		mockService.On("LeastExpensive", mock.Anything).Return(nil, nil)

		router := setupTestRouter()
		router.GET("/reports/least-expensive", handler.LeastExpensive)

		req, _ := http.NewRequest(http.MethodGet, "/reports/least-expensive", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestReportHandler_BestSeller(t *testing.T) {
	logger := testHandlerLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := NewReportHandler(logger, mockService)

		mockService.On("BestSeller", mock.Anything).
			Return(&book.BestSeller{Book: *newTestBook("111", "Book A", 5), TotalSold: 42}, nil)

		router := setupTestRouter()
		router.GET("/reports/best-seller", handler.BestSeller)

		req, _ := http.NewRequest(http.MethodGet, "/reports/best-seller", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeData[BestSellerResponse](t, rr.Body.Bytes())
		assert.Equal(t, "111", resp.Book.ISBN)
		assert.Equal(t, int64(42), resp.TotalSold)
		mockService.AssertExpectations(t)
	})

	t.Run("NoSalesYet", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := NewReportHandler(logger, mockService)

		mockService.On("BestSeller", mock.Anything).Return(nil, nil)

		router := setupTestRouter()
		router.GET("/reports/best-seller", handler.BestSeller)

		req, _ := http.NewRequest(http.MethodGet, "/reports/best-seller", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestReportHandler_Balance(t *testing.T) {
	logger := testHandlerLogger()
	mockService := new(MockStoreService)
	handler := NewReportHandler(logger, mockService)

	mockService.On("Balance").Return(decimal.RequireFromString("999500.00"))

	router := setupTestRouter()
	router.GET("/cashbox", handler.Balance)

	req, _ := http.NewRequest(http.MethodGet, "/cashbox", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeData[BalanceResponse](t, rr.Body.Bytes())
	assert.Equal(t, "999500.00", resp.Balance)
	mockService.AssertExpectations(t)
}
