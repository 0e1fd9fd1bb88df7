package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubCartService struct {
	addToCart func(ctx context.Context, userEmail string, productID uint, quantity int) (*model.CartItemView, error)
	getCart   func(ctx context.Context, userEmail string) (*model.CartView, error)
}

func (s *stubCartService) AddToCart(ctx context.Context, userEmail string, productID uint, quantity int) (*model.CartItemView, error) {
	return s.addToCart(ctx, userEmail, productID, quantity)
}

func (s *stubCartService) GetCart(ctx context.Context, userEmail string) (*model.CartView, error) {
	return s.getCart(ctx, userEmail)
}

func TestAddToCartHandler(t *testing.T) {
	cartService := &stubCartService{
		addToCart: func(ctx context.Context, userEmail string, productID uint, quantity int) (*model.CartItemView, error) {
			require.Equal(t, "test@example.com", userEmail)
			require.Equal(t, uint(1), productID)
			require.Equal(t, 2, quantity)
			return &model.CartItemView{
				ProductID:  1,
				Quantity:   2,
				LineAmount: decimal.RequireFromString("200.00"),
			}, nil
		},
	}
	h := NewCartHandler(cartService)

	body := `{"product_id":1,"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req = withAuthPayload(req, "test@example.com")
	rec := httptest.NewRecorder()

	h.AddToCart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAddToCartHandlerInvalidQuantity(t *testing.T) {
	h := NewCartHandler(&stubCartService{})

	body := `{"product_id":1,"quantity":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req = withAuthPayload(req, "test@example.com")
	rec := httptest.NewRecorder()

	h.AddToCart(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCartHandlerInsufficientStock(t *testing.T) {
	cartService := &stubCartService{
		addToCart: func(ctx context.Context, userEmail string, productID uint, quantity int) (*model.CartItemView, error) {
			return nil, &service.InsufficientStockError{
				ProductID:   1,
				ProductName: "Laptop",
				Available:   5,
				Requested:   6,
			}
		},
	}
	h := NewCartHandler(cartService)

	body := `{"product_id":1,"quantity":6}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req = withAuthPayload(req, "test@example.com")
	rec := httptest.NewRecorder()

	h.AddToCart(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetCartHandlerUnauthorized(t *testing.T) {
	h := NewCartHandler(&stubCartService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()

	h.GetCart(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
