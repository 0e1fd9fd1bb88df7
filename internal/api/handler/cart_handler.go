package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/ecommerce/internal/api"
	"github.com/RoyceAzure/lab/ecommerce/internal/api/dto"
	"github.com/RoyceAzure/lab/ecommerce/internal/service"
	"github.com/RoyceAzure/lab/ecommerce/internal/util"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// AddToCart 加入購物車，同商品重複加入會累加數量
// POST /api/v1/cart/items
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		api.ErrorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.cartService.AddToCart(r.Context(), payload.UPN, req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, item)
}

// GetCart 查詢購物車內容
// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		api.ErrorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), payload.UPN)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, cart)
}
